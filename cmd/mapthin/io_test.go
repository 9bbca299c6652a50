package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/genetmap"
)

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		input string
		want  rune
	}{
		{"tab", '\t'},
		{"\\t", '\t'},
		{"space", ' '},
		{"comma", ','},
		{"|", '|'},
		{";", ';'},
	}

	for _, test := range tests {
		got, err := parseDelimiter(test.input)
		if err != nil {
			t.Fatalf("parseDelimiter(%q) failed: %v", test.input, err)
		}
		if got != test.want {
			t.Fatalf("parseDelimiter(%q) = %q, expected %q", test.input, got, test.want)
		}
	}

	if _, err := parseDelimiter("ab"); err == nil {
		t.Fatal("Expected parseDelimiter to reject a multi-character delimiter")
	}
}

func TestThinChromosome(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "thin_")

	seq := genetmap.Sequence{
		{Chromosome: "chr1", Position: 0, CM: 0},
		{Chromosome: "chr1", Position: 10, CM: 1},
		{Chromosome: "chr1", Position: 20, CM: 2},
		{Chromosome: "chr1", Position: 30, CM: 3},
	}

	res := thinChromosome("chr1", seq, genetmap.Layouts["HAPMAP"], 0.01, prefix)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if res.result.Kept != 2 {
		t.Fatalf("Expected 2 retained records on a collinear map, got %d", res.result.Kept)
	}

	raw, err := os.ReadFile(prefix + "chr1.txt")
	if err != nil {
		t.Fatal(err)
	}

	want := "Chrom\tPosition\tRate(cM/Mb)\tMap(cM)\nchr1\t0\tNA\t0\nchr1\t30\tNA\t3\n"
	if string(raw) != want {
		t.Fatalf("Output mismatch:\n%q\nExpected:\n%q", string(raw), want)
	}
}

func TestThinChromosomeError(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "thin_")

	seq := genetmap.Sequence{
		{Chromosome: "chrE", Position: 0, CM: 0},
	}

	res := thinChromosome("chrE", seq, genetmap.Layouts["HAPMAP"], 0.01, prefix)
	if res.err == nil {
		t.Fatal("Expected an error when thinning a single-record chromosome")
	}
	if _, err := os.Stat(prefix + "chrE.txt"); !os.IsNotExist(err) {
		t.Fatalf("Expected no output file after a failed run, stat returned %v", err)
	}
}
