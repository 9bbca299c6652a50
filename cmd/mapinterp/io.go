package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/genetmap"
)

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

// processSites streams the positions table through to w, filling in the
// genetic position of each site by interpolating over seq. Positions outside
// the map's domain take the boundary value.
func processSites(f io.Reader, w io.Writer, seq genetmap.Sequence, posCol, cmCol int, hasHeader bool, delim rune) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	join := string(delim)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), 1024*1024)

	line := 0
	sawHeader := false
	for scanner.Scan() {
		line++
		text := scanner.Text()

		if text == "" || strings.HasPrefix(text, "#") {
			fmt.Fprintln(bw, text)
			continue
		}

		var fields []string
		if delim == ' ' {
			fields = strings.Fields(text)
		} else {
			fields = strings.Split(text, join)
		}

		if hasHeader && !sawHeader {
			sawHeader = true
			if cmCol < 0 {
				fields = append(fields, "CM")
			}
			fmt.Fprintln(bw, strings.Join(fields, join))
			continue
		}

		if posCol >= len(fields) {
			return &genetmap.MalformedInputError{Line: line, Reason: fmt.Sprintf("expected at least %d columns, found %d", posCol+1, len(fields))}
		}

		pos, err := strconv.Atoi(fields[posCol])
		if err != nil {
			return &genetmap.MalformedInputError{Line: line, Reason: fmt.Sprintf("physical position %q is not an integer", fields[posCol])}
		}

		value := fmt.Sprintf("%.6f", seq.At(pos))
		switch {
		case cmCol < 0:
			fields = append(fields, value)
		case cmCol < len(fields):
			fields[cmCol] = value
		default:
			return &genetmap.MalformedInputError{Line: line, Reason: fmt.Sprintf("column %d to fill is beyond the %d columns present", cmCol, len(fields))}
		}

		fmt.Fprintln(bw, strings.Join(fields, join))
	}

	return scanner.Err()
}
