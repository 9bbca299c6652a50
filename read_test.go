package genetmap

import (
	"errors"
	"strings"
	"testing"
)

const hapmapInput = `# genetic map, build 37
Chrom	Position	Rate(cM/Mb)	Map(cM)
chr1	100	1.0	0.1
chr1	200	1.0	0.2
chr2	50	0.5	0.05
chr2	150	0.5	0.15
`

func TestReadHapmap(t *testing.T) {
	m, err := Read(strings.NewReader(hapmapInput), Layouts["HAPMAP"], "")
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Chromosomes) != 2 || m.Chromosomes[0] != "chr1" || m.Chromosomes[1] != "chr2" {
		t.Fatalf("Chromosome order mismatch: %v", m.Chromosomes)
	}
	if m.Len() != 4 {
		t.Fatalf("Expected 4 records, got %d", m.Len())
	}

	seq := m.Sequences["chr1"]
	if len(seq) != 2 || seq[0].Position != 100 || seq[0].CM != 0.1 || seq[1].Position != 200 || seq[1].CM != 0.2 {
		t.Fatalf("chr1 records mismatch: %+v", seq)
	}
	if seq.SexSpecific() {
		t.Fatal("A sex-averaged map must not report itself sex-specific")
	}
}

func TestReadChromosomeFilter(t *testing.T) {
	m, err := Read(strings.NewReader(hapmapInput), Layouts["HAPMAP"], "chr2")
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Chromosomes) != 1 || m.Chromosomes[0] != "chr2" {
		t.Fatalf("Expected only chr2, got %v", m.Chromosomes)
	}
	if m.Len() != 2 {
		t.Fatalf("Expected 2 records, got %d", m.Len())
	}
}

func TestReadMissingChromosome(t *testing.T) {
	_, err := Read(strings.NewReader(hapmapInput), Layouts["HAPMAP"], "chr9")

	var malformed *MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected a MalformedInputError for an absent chromosome, got %v", err)
	}
}

func TestReadNoHeader(t *testing.T) {
	layout := Layouts["HAPMAP"]
	layout.HasHeader = false

	input := "chr1\t100\tNA\t0.1\nchr1\t200\tNA\t0.2\n"
	m, err := Read(strings.NewReader(input), layout, "")
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 2 {
		t.Fatalf("Expected 2 records, got %d", m.Len())
	}
}

func TestReadWhitespaceSplitting(t *testing.T) {
	// PLINK-style rows, with uneven spacing and a tab thrown in.
	input := "1 rs1  0 100\n1\trs2 0.5  200\n"

	m, err := Read(strings.NewReader(input), Layouts["PLINK"], "")
	if err != nil {
		t.Fatal(err)
	}

	seq := m.Sequences["1"]
	if len(seq) != 2 || seq[0].Position != 100 || seq[0].CM != 0 || seq[1].Position != 200 || seq[1].CM != 0.5 {
		t.Fatalf("Whitespace-split records mismatch: %+v", seq)
	}
}

func TestReadNoChromosomeColumn(t *testing.T) {
	input := "position COMBINED_rate(cM/Mb) Genetic_Map(cM)\n100 1.0 0.1\n200 1.0 0.2\n"

	// Without a chromosome name the layout is unusable.
	var confErr *ConfigurationError
	if _, err := Read(strings.NewReader(input), Layouts["SHAPEIT"], ""); !errors.As(err, &confErr) {
		t.Fatalf("Expected a ConfigurationError without a chromosome name, got %v", err)
	}

	m, err := Read(strings.NewReader(input), Layouts["SHAPEIT"], "chr7")
	if err != nil {
		t.Fatal(err)
	}
	seq := m.Sequences["chr7"]
	if len(seq) != 2 || seq[0].Chromosome != "chr7" || seq[1].Position != 200 {
		t.Fatalf("chr7 records mismatch: %+v", seq)
	}
}

func TestReadSexSpecific(t *testing.T) {
	input := "chr\tpos\tmale_cM\tfemale_cM\nchrX\t10\t0.1\t0.2\nchrX\t20\t0.3\t0.4\n"

	m, err := Read(strings.NewReader(input), Layouts["SEXSPEC"], "")
	if err != nil {
		t.Fatal(err)
	}

	seq := m.Sequences["chrX"]
	if !seq.SexSpecific() {
		t.Fatal("Expected a sex-specific sequence")
	}
	if seq[0].CM != 0.1 || seq[0].CM2.Float64 != 0.2 || seq[1].CM != 0.3 || seq[1].CM2.Float64 != 0.4 {
		t.Fatalf("Sex-specific records mismatch: %+v", seq)
	}
}

func TestReadMalformedLines(t *testing.T) {
	for _, v := range []struct {
		input    string
		wantLine int
	}{
		// Non-numeric genetic position on line 4.
		{"# comment\nChrom\tPosition\tRate\tMap(cM)\nchr1\t100\tNA\t0.1\nchr1\t200\tNA\tbogus\n", 4},
		// Non-integer physical position on line 3.
		{"# comment\nChrom\tPosition\tRate\tMap(cM)\nchr1\tabc\tNA\t0.1\n", 3},
		// Too few columns on line 2.
		{"Chrom\tPosition\tRate\tMap(cM)\nchr1\t100\n", 2},
		// Duplicate position on line 4.
		{"# comment\nChrom\tPosition\tRate\tMap(cM)\nchr1\t100\tNA\t0.1\nchr1\t100\tNA\t0.2\n", 4},
		// Decreasing position on line 4.
		{"# comment\nChrom\tPosition\tRate\tMap(cM)\nchr1\t100\tNA\t0.1\nchr1\t90\tNA\t0.2\n", 4},
	} {
		_, err := Read(strings.NewReader(v.input), Layouts["HAPMAP"], "")

		var malformed *MalformedInputError
		if !errors.As(err, &malformed) {
			t.Fatalf("Expected a MalformedInputError for input %q, got %v", v.input, err)
		}
		if malformed.Line != v.wantLine {
			t.Fatalf("Expected the error to name line %d, got %d (%v)", v.wantLine, malformed.Line, malformed)
		}
	}
}

func TestReadEmptyInput(t *testing.T) {
	var malformed *MalformedInputError
	if _, err := Read(strings.NewReader(""), Layouts["HAPMAP"], ""); !errors.As(err, &malformed) {
		t.Fatalf("Expected a MalformedInputError for empty input, got %v", err)
	}
}

func TestMapAppendPreservesOrder(t *testing.T) {
	m := NewMap()
	m.Append(Record{Chromosome: "2", Position: 10})
	m.Append(Record{Chromosome: "1", Position: 10})
	m.Append(Record{Chromosome: "2", Position: 20})

	if len(m.Chromosomes) != 2 || m.Chromosomes[0] != "2" || m.Chromosomes[1] != "1" {
		t.Fatalf("Expected first-seen chromosome order, got %v", m.Chromosomes)
	}
	if m.Len() != 3 || len(m.Sequences["2"]) != 2 {
		t.Fatalf("Record grouping mismatch: %+v", m.Sequences)
	}
}
