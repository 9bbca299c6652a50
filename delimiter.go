package genetmap

import (
	"bytes"
	"io"

	"github.com/carbocation/pfx"
	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter samples the head of r and returns the single most likely
// rune delimiting its values, falling back to fallback when nothing stands
// out (as with whitespace-split tables, which the detector does not model).
// The sampled bytes are stitched back onto the returned reader, so the table
// can be consumed from the start without seeking.
func DetermineDelimiter(r io.Reader, fallback rune) (rune, io.Reader, error) {
	sample := make([]byte, 32*1024)
	n, err := io.ReadFull(r, sample)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, nil, pfx.Err(err)
	}
	sample = sample[:n]

	restored := io.MultiReader(bytes.NewReader(sample), r)

	d := detector.New()
	delimiters := d.DetectDelimiter(bytes.NewReader(sample), '"')
	if len(delimiters) > 0 {
		return rune(delimiters[0][0]), restored, nil
	}

	return fallback, restored, nil
}
