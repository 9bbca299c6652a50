package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/carbocation/genetmap"
	"github.com/carbocation/genetmap/mapthin"
)

type chromResult struct {
	chromosome string
	outPath    string
	result     mapthin.Result
	err        error
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", "\\t":
		return '\t', nil
	case "space":
		return ' ', nil
	case "comma":
		return ',', nil
	}

	runes := []rune(s)
	if len(runes) != 1 {
		return 0, &genetmap.ConfigurationError{Option: "delim", Reason: fmt.Sprintf("%q does not name a single delimiter character", s)}
	}

	return runes[0], nil
}

// thinChromosome thins one chromosome and writes the retained records to
// <outPrefix><chromosome>.txt. The output is buffered in memory first so
// that a failed run leaves no file behind.
func thinChromosome(chromosome string, seq genetmap.Sequence, layout genetmap.Layout, tolerance float64, outPrefix string) chromResult {
	out := chromResult{chromosome: chromosome}

	thinned, result, err := mapthin.Thin(seq, tolerance)
	if err != nil {
		out.err = fmt.Errorf("%s: %w", chromosome, err)
		return out
	}
	out.result = result

	var buf bytes.Buffer
	if err := genetmap.Write(&buf, layout, thinned); err != nil {
		out.err = fmt.Errorf("%s: %w", chromosome, err)
		return out
	}

	out.outPath = outPrefix + chromosome + ".txt"
	if err := os.WriteFile(out.outPath, buf.Bytes(), 0644); err != nil {
		os.Remove(out.outPath)
		out.err = fmt.Errorf("%s: %w", chromosome, err)
		return out
	}

	return out
}
