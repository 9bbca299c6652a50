package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/carbocation/genetmap"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
)

type chromSummary struct {
	Chromosome     string  `csv:"chromosome"`
	Original       int     `csv:"original_records"`
	Thinned        int     `csv:"thinned_records"`
	Violations     int     `csv:"violations"`
	Subset         bool    `csv:"ordered_subset"`
	EndpointsKept  bool    `csv:"endpoints_kept"`
	MaxResidual    float64 `csv:"max_residual_cm"`
	MeanResidual   float64 `csv:"mean_residual_cm"`
	MedianResidual float64 `csv:"median_residual_cm"`

	residuals []float64
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

// checkChromosome reloads one chromosome's thinned output and scores it
// against the dense original.
func checkChromosome(chromosome string, orig genetmap.Sequence, thinnedPath string, layout genetmap.Layout, delimiter rune, tolerance float64) (chromSummary, error) {
	out := chromSummary{Chromosome: chromosome, Original: len(orig)}

	rdr, err := genetmap.OpenMapFile(thinnedPath, client, &layout, delimiter)
	if err != nil {
		return out, err
	}
	defer rdr.Close()

	tm, err := genetmap.Read(rdr, layout, chromosome)
	if err != nil {
		return out, fmt.Errorf("%s: %w", thinnedPath, err)
	}
	thinned := tm.Sequences[chromosome]
	out.Thinned = len(thinned)

	if orig.SexSpecific() != thinned.SexSpecific() {
		return out, fmt.Errorf("%s: the original and thinned maps disagree on carrying a second genetic coordinate", thinnedPath)
	}

	out.Subset = isOrderedSubset(orig, thinned)
	out.EndpointsKept = thinned[0].Position == orig[0].Position &&
		thinned[len(thinned)-1].Position == orig[len(orig)-1].Position

	out.residuals = make([]float64, 0, len(orig))
	for _, rec := range orig {
		e := math.Abs(thinned.At(rec.Position) - rec.CM)
		if rec.CM2.Valid {
			if e2 := math.Abs(thinned.At2(rec.Position) - rec.CM2.Float64); e2 > e {
				e = e2
			}
		}

		out.residuals = append(out.residuals, e)
		if e > tolerance {
			out.Violations++
		}
	}

	data := stats.LoadRawData(out.residuals)
	if out.MaxResidual, err = data.Max(); err != nil {
		return out, err
	}
	if out.MeanResidual, err = data.Mean(); err != nil {
		return out, err
	}
	if out.MedianResidual, err = data.Median(); err != nil {
		return out, err
	}

	return out, nil
}

// isOrderedSubset walks both sequences by physical position, confirming that
// every thinned record appears in the original in the same order.
func isOrderedSubset(orig, thinned genetmap.Sequence) bool {
	j := 0
	for _, rec := range thinned {
		for j < len(orig) && orig[j].Position != rec.Position {
			j++
		}
		if j == len(orig) {
			return false
		}
		j++
	}

	return true
}

func writeReport(path string, rows []chromSummary) error {
	// Tell gocsv to use tab as the delimiter
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = '\t'
		return gocsv.NewSafeCSVWriter(w)
	})

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}
