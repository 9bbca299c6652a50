package genetmap

import (
	"fmt"
	"sort"
	"strings"
)

// Layout maps the columns of a genetic map file. Column indices are
// 0-based. ColChromosome may be -1 for single-chromosome files that carry
// no chromosome column, and ColCM2 is -1 except for sex-specific maps.
//
// A Delimiter of ' ' means any-whitespace splitting on read, which is how
// most space-aligned genetic maps are distributed.
type Layout struct {
	Delimiter     rune
	Comment       rune
	HasHeader     bool
	ColChromosome int
	ColPosition   int
	ColCM         int
	ColCM2        int

	// HeaderNames, when its length matches the written column count,
	// supplies the column names for the synthesized output header.
	HeaderNames []string
}

var Layouts = map[string]Layout{
	// Chromosome, position, rate, cumulative map distance. The common
	// deCODE/HapMap distribution format.
	"HAPMAP": {
		Delimiter:     '\t',
		Comment:       '#',
		HasHeader:     true,
		ColChromosome: 0,
		ColPosition:   1,
		ColCM:         3,
		ColCM2:        -1,
		HeaderNames:   []string{"Chrom", "Position", "Rate(cM/Mb)", "Map(cM)"},
	},
	// PLINK .map column order: chromosome, variant ID, cM, position.
	"PLINK": {
		Delimiter:     ' ',
		Comment:       '#',
		HasHeader:     false,
		ColChromosome: 0,
		ColPosition:   3,
		ColCM:         2,
		ColCM2:        -1,
	},
	// SHAPEIT genetic_map files: position, rate, cumulative cM, and no
	// chromosome column (one file per chromosome).
	"SHAPEIT": {
		Delimiter:     ' ',
		Comment:       '#',
		HasHeader:     true,
		ColChromosome: -1,
		ColPosition:   0,
		ColCM:         2,
		ColCM2:        -1,
		HeaderNames:   []string{"position", "COMBINED_rate(cM/Mb)", "Genetic_Map(cM)"},
	},
	// Sex-specific maps in the Bherer et al. style: one male and one
	// female cumulative distance per site.
	"SEXSPEC": {
		Delimiter:     '\t',
		Comment:       '#',
		HasHeader:     true,
		ColChromosome: 0,
		ColPosition:   1,
		ColCM:         2,
		ColCM2:        3,
		HeaderNames:   []string{"chr", "pos", "male_cM", "female_cM"},
	},
}

// NewLayout looks up a named layout from the registry.
func NewLayout(name string) (Layout, error) {
	l, exists := Layouts[name]
	if !exists {
		return Layout{}, &ConfigurationError{Option: "layout", Reason: fmt.Sprintf("%s is not a known layout; valid names include: %s", name, LayoutNames())}
	}

	return l, nil
}

// LayoutNames lists the registered layout names for help text.
func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for name := range Layouts {
		names = append(names, name)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

// Validate rejects layouts whose column assignments cannot describe a
// readable file.
func (l Layout) Validate() error {
	if l.ColPosition < 0 {
		return &ConfigurationError{Option: "physical position column", Reason: "a non-negative 0-based column index is required"}
	}
	if l.ColCM < 0 {
		return &ConfigurationError{Option: "genetic position column", Reason: "a non-negative 0-based column index is required"}
	}

	roles := []struct {
		col  int
		role string
	}{
		{l.ColPosition, "physical position"},
		{l.ColChromosome, "chromosome"},
		{l.ColCM, "genetic position"},
		{l.ColCM2, "second genetic position"},
	}

	assigned := make(map[int]string)
	for _, r := range roles {
		if r.col < 0 {
			continue
		}
		if other, taken := assigned[r.col]; taken {
			return &ConfigurationError{Option: r.role + " column", Reason: fmt.Sprintf("column %d is already assigned to the %s", r.col, other)}
		}
		assigned[r.col] = r.role
	}

	return nil
}

// width is the number of columns a row in this layout occupies.
func (l Layout) width() int {
	max := l.ColPosition
	for _, col := range []int{l.ColChromosome, l.ColCM, l.ColCM2} {
		if col > max {
			max = col
		}
	}

	return max + 1
}
