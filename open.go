package genetmap

import (
	"io"

	"cloud.google.com/go/storage"
)

// readCloser binds a wrapped reader to the closer of its underlying file.
type readCloser struct {
	io.Reader
	io.Closer
}

// OpenFile opens path for streaming reads, fetching gs:// paths from Google
// Storage and transparently decompressing recognized compression formats.
func OpenFile(path string, client *storage.Client) (io.ReadCloser, error) {
	f, err := MaybeOpenFromGoogleStorage(path, client)
	if err != nil {
		return nil, err
	}

	r, err := MaybeDecompress(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &readCloser{r, f}, nil
}

// OpenMapFile is OpenFile plus delimiter handling for a genetic map table:
// a nonzero delimiter is used as given, and zero means sniff the stream with
// the layout's own delimiter as the fallback. The layout is updated in place
// with the delimiter that will be used.
func OpenMapFile(path string, client *storage.Client, layout *Layout, delimiter rune) (io.ReadCloser, error) {
	rc, err := OpenFile(path, client)
	if err != nil {
		return nil, err
	}

	if delimiter != 0 {
		layout.Delimiter = delimiter
		return rc, nil
	}

	d, restored, err := DetermineDelimiter(rc, layout.Delimiter)
	if err != nil {
		rc.Close()
		return nil, err
	}
	layout.Delimiter = d

	return &readCloser{restored, rc}, nil
}
