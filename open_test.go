package genetmap

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMapFileGzippedComma(t *testing.T) {
	content := "Chrom,Position,Rate(cM/Mb),Map(cM)\n" +
		"chr1,100,NA,0.1\n" +
		"chr1,200,NA,0.25\n" +
		"chr1,300,NA,0.5\n"

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "map.csv.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	layout := Layouts["HAPMAP"]
	rc, err := OpenMapFile(path, nil, &layout, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	if layout.Delimiter != ',' {
		t.Fatalf("Expected the comma delimiter to be detected, got %q", layout.Delimiter)
	}

	m, err := Read(rc, layout, "")
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 3 {
		t.Fatalf("Expected 3 records, read %d", m.Len())
	}
	if got := m.Sequences["chr1"][1]; got.Position != 200 || got.CM != 0.25 {
		t.Fatalf("Unexpected second record %+v", got)
	}
}

func TestOpenMapFileForcedDelimiter(t *testing.T) {
	content := "chr1 rs1 0.1 100\nchr1 rs2 0.25 200\n"

	path := filepath.Join(t.TempDir(), "plink.map")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	layout := Layouts["PLINK"]
	rc, err := OpenMapFile(path, nil, &layout, ' ')
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	m, err := Read(rc, layout, "")
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 2 {
		t.Fatalf("Expected 2 records, read %d", m.Len())
	}
}

func TestOpenFileMissing(t *testing.T) {
	if _, err := OpenFile(filepath.Join(t.TempDir(), "absent.txt"), nil); err == nil {
		t.Fatal("Expected an error opening a missing file")
	}
}
