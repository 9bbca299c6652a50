package genetmap

import (
	"fmt"

	"gopkg.in/guregu/null.v3"
)

// Record is one row of a genetic map: a physical base-pair coordinate and
// the genetic position in centimorgans at that coordinate. CM2 holds the
// second sex's genetic position and is only valid for sex-specific maps.
type Record struct {
	Chromosome string
	Position   int
	CM         float64
	CM2        null.Float
}

// Sequence is the ordered map of a single chromosome, sorted by strictly
// increasing Position.
type Sequence []Record

// SexSpecific reports whether the sequence carries a second genetic
// coordinate. It inspects the first record; Validate guarantees that
// CM2 presence is uniform across the sequence.
func (s Sequence) SexSpecific() bool {
	if len(s) == 0 {
		return false
	}

	return s[0].CM2.Valid
}

// Validate confirms the structural invariants that the thinning and
// interpolation routines rely upon: at least two records, strictly
// increasing physical positions, and uniform presence of the second
// genetic coordinate.
func (s Sequence) Validate() error {
	if len(s) < 2 {
		return &MalformedInputError{Reason: fmt.Sprintf("a map needs at least 2 records to interpolate, got %d", len(s))}
	}

	sexSpecific := s[0].CM2.Valid
	for i := 1; i < len(s); i++ {
		if s[i].Position <= s[i-1].Position {
			return &MalformedInputError{Reason: fmt.Sprintf("physical positions must be strictly increasing, but position %d follows %d", s[i].Position, s[i-1].Position)}
		}
		if s[i].CM2.Valid != sexSpecific {
			return &MalformedInputError{Reason: fmt.Sprintf("the second genetic coordinate is present on some records but absent at position %d or before it", s[i].Position)}
		}
	}

	return nil
}

// Map holds the sequences of a genetic map keyed by chromosome.
// Chromosomes preserves the order in which each chromosome first appeared
// in the source so that multi-chromosome output is deterministic.
type Map struct {
	Chromosomes []string
	Sequences   map[string]Sequence
}

// NewMap returns an empty Map ready to be appended to.
func NewMap() *Map {
	return &Map{Sequences: make(map[string]Sequence)}
}

// Append adds a record to its chromosome's sequence, registering the
// chromosome on first sight.
func (m *Map) Append(rec Record) {
	if _, seen := m.Sequences[rec.Chromosome]; !seen {
		m.Chromosomes = append(m.Chromosomes, rec.Chromosome)
	}

	m.Sequences[rec.Chromosome] = append(m.Sequences[rec.Chromosome], rec)
}

// Len is the total number of records across all chromosomes.
func (m *Map) Len() int {
	n := 0
	for _, seq := range m.Sequences {
		n += len(seq)
	}

	return n
}
