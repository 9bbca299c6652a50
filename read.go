package genetmap

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

// chromState tracks per-chromosome ordering checks while a file streams in.
type chromState struct {
	line     int
	position int
	cm       float64
	cm2      float64
	warned   bool
}

// Read consumes a genetic map table and groups its records by chromosome,
// preserving the order in which chromosomes first appear. Lines starting with
// the layout's comment rune are skipped; when the layout declares a header,
// the first non-comment line is discarded. If chromosome is non-empty and the
// layout has a chromosome column, only matching rows are kept; if the layout
// has no chromosome column, chromosome names every row and must be non-empty.
//
// Physical positions must strictly increase within each chromosome; a
// duplicate or out-of-order position is a MalformedInputError naming the
// offending line. A decreasing genetic position is logged once per chromosome
// but does not fail the read.
func Read(r io.Reader, layout Layout, chromosome string) (*Map, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	if layout.ColChromosome < 0 && chromosome == "" {
		return nil, &ConfigurationError{Option: "chromosome", Reason: "the chosen layout has no chromosome column, so a chromosome name must be supplied"}
	}

	m := NewMap()
	states := make(map[string]*chromState)

	var err error
	if layout.Delimiter == ' ' {
		err = readFields(r, layout, chromosome, m, states)
	} else {
		err = readDelimited(r, layout, chromosome, m, states)
	}
	if err != nil {
		return nil, err
	}

	if m.Len() == 0 {
		if chromosome != "" {
			return nil, &MalformedInputError{Reason: fmt.Sprintf("no records found for chromosome %s", chromosome)}
		}
		return nil, &MalformedInputError{Reason: "no records found"}
	}

	return m, nil
}

// readFields handles whitespace-delimited tables, where any run of spaces or
// tabs separates columns.
func readFields(r io.Reader, layout Layout, chromosome string, m *Map, states map[string]*chromState) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), 1024*1024)

	line := 0
	sawHeader := false
	for scanner.Scan() {
		line++

		text := scanner.Text()
		if strings.HasPrefix(text, string(layout.Comment)) {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		if layout.HasHeader && !sawHeader {
			sawHeader = true
			continue
		}

		if err := consumeRow(fields, line, layout, chromosome, m, states); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// readDelimited handles single-rune-delimited tables via encoding/csv, which
// also yields accurate line numbers when comment lines are interleaved.
func readDelimited(r io.Reader, layout Layout, chromosome string, m *Map, states map[string]*chromState) error {
	rdr := csv.NewReader(r)
	rdr.Comma = layout.Delimiter
	rdr.Comment = layout.Comment
	rdr.FieldsPerRecord = -1

	sawHeader := false
	for {
		fields, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return pfx.Err(err)
		}

		if layout.HasHeader && !sawHeader {
			sawHeader = true
			continue
		}

		line, _ := rdr.FieldPos(0)
		if err := consumeRow(fields, line, layout, chromosome, m, states); err != nil {
			return err
		}
	}

	return nil
}

// consumeRow parses one data row, enforces per-chromosome ordering, and
// appends the record.
func consumeRow(fields []string, line int, layout Layout, chromosome string, m *Map, states map[string]*chromState) error {
	if len(fields) < layout.width() {
		return &MalformedInputError{Line: line, Reason: fmt.Sprintf("expected at least %d columns, found %d", layout.width(), len(fields))}
	}

	chrom := chromosome
	if layout.ColChromosome >= 0 {
		chrom = fields[layout.ColChromosome]
		if chromosome != "" && chrom != chromosome {
			return nil
		}
	}

	position, err := strconv.Atoi(fields[layout.ColPosition])
	if err != nil {
		return &MalformedInputError{Line: line, Reason: fmt.Sprintf("physical position %q is not an integer", fields[layout.ColPosition])}
	}

	cm, err := strconv.ParseFloat(fields[layout.ColCM], 64)
	if err != nil {
		return &MalformedInputError{Line: line, Reason: fmt.Sprintf("genetic position %q is not numeric", fields[layout.ColCM])}
	}

	rec := Record{Chromosome: chrom, Position: position, CM: cm}

	if layout.ColCM2 >= 0 {
		cm2, err := strconv.ParseFloat(fields[layout.ColCM2], 64)
		if err != nil {
			return &MalformedInputError{Line: line, Reason: fmt.Sprintf("second genetic position %q is not numeric", fields[layout.ColCM2])}
		}
		rec.CM2 = null.FloatFrom(cm2)
	}

	state, seen := states[chrom]
	if !seen {
		state = &chromState{}
		states[chrom] = state
	} else {
		if position == state.position {
			return &MalformedInputError{Line: line, Reason: fmt.Sprintf("duplicate physical position %d on chromosome %s (first seen at line %d)", position, chrom, state.line)}
		}
		if position < state.position {
			return &MalformedInputError{Line: line, Reason: fmt.Sprintf("physical position %d on chromosome %s is below the preceding position %d", position, chrom, state.position)}
		}
		if !state.warned && (rec.CM < state.cm || (rec.CM2.Valid && rec.CM2.Float64 < state.cm2)) {
			log.Printf("Warning: genetic position decreases at line %d on chromosome %s; keeping the record as given", line, chrom)
			state.warned = true
		}
	}
	state.line = line
	state.position = position
	state.cm = cm
	state.cm2 = rec.CM2.Float64

	m.Append(rec)

	return nil
}
