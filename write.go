package genetmap

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// Write renders one chromosome's records in the layout's column convention.
// Columns the data model does not populate (such as the HAPMAP rate column)
// are emitted as NA. When the layout declares a header, a header row is
// written first, so the output can be re-read with the same layout.
func Write(w io.Writer, layout Layout, seq Sequence) error {
	if err := layout.Validate(); err != nil {
		return err
	}
	if layout.ColCM2 >= 0 && !seq.SexSpecific() {
		return &ConfigurationError{Option: "layout", Reason: "layout has a second genetic position column but the records carry only one genetic position"}
	}

	delim := string(layout.Delimiter)
	bw := bufio.NewWriter(w)

	if layout.HasHeader {
		if _, err := bw.WriteString(strings.Join(layout.headerNames(), delim) + "\n"); err != nil {
			return pfx.Err(err)
		}
	}

	cols := make([]string, layout.width())
	for _, rec := range seq {
		for i := range cols {
			cols[i] = "NA"
		}
		if layout.ColChromosome >= 0 {
			cols[layout.ColChromosome] = rec.Chromosome
		}
		cols[layout.ColPosition] = strconv.Itoa(rec.Position)
		cols[layout.ColCM] = strconv.FormatFloat(rec.CM, 'g', -1, 64)
		if layout.ColCM2 >= 0 {
			cols[layout.ColCM2] = strconv.FormatFloat(rec.CM2.Float64, 'g', -1, 64)
		}

		if _, err := bw.WriteString(strings.Join(cols, delim) + "\n"); err != nil {
			return pfx.Err(err)
		}
	}

	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// headerNames yields one name per output column. The layout's declared names
// are used when they still line up with the column assignments; otherwise
// role names are synthesized, which happens when CLI overrides reshape a
// named layout.
func (l Layout) headerNames() []string {
	if len(l.HeaderNames) == l.width() {
		return l.HeaderNames
	}

	names := make([]string, l.width())
	for i := range names {
		names[i] = "NA"
	}
	if l.ColChromosome >= 0 {
		names[l.ColChromosome] = "Chrom"
	}
	names[l.ColPosition] = "Position"
	names[l.ColCM] = "Map(cM)"
	if l.ColCM2 >= 0 {
		names[l.ColCM] = "Map.male(cM)"
		names[l.ColCM2] = "Map.female(cM)"
	}

	return names
}
