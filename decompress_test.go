package genetmap

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"io"
	"testing"
)

const decompressPayload = "chr1\t100\tNA\t0.1\nchr1\t200\tNA\t0.2\n"

func readAll(t *testing.T, raw []byte) string {
	r, err := MaybeDecompress(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}

	return string(out)
}

func TestDecompressPassthrough(t *testing.T) {
	if got := readAll(t, []byte(decompressPayload)); got != decompressPayload {
		t.Fatalf("Plain bytes were altered: %q", got)
	}
}

func TestDecompressGzip(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(decompressPayload)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if got := readAll(t, buf.Bytes()); got != decompressPayload {
		t.Fatalf("Gzip round trip mismatch: %q", got)
	}
}

func TestDecompressZlib(t *testing.T) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write([]byte(decompressPayload)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if got := readAll(t, buf.Bytes()); got != decompressPayload {
		t.Fatalf("Zlib round trip mismatch: %q", got)
	}
}

func TestDecompressZipFirstEntry(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("genetic_map_chr1.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(decompressPayload)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if got := readAll(t, buf.Bytes()); got != decompressPayload {
		t.Fatalf("Zip first-entry read mismatch: %q", got)
	}
}

func TestDecompressShortInput(t *testing.T) {
	// Shorter than any signature; must pass through untouched.
	if got := readAll(t, []byte("x\n")); got != "x\n" {
		t.Fatalf("Short input was altered: %q", got)
	}
}
