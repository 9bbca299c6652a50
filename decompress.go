package genetmap

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type compression byte

const (
	compressionNone compression = iota
	compressionGzip
	compressionZip
	compressionXZ
	compressionZlib
	compressionBZip2
)

// Byte code signatures from https://stackoverflow.com/a/19127748/199475
var compressionSigs = []struct {
	kind compression
	sig  []byte
}{
	{compressionGzip, []byte{0x1f, 0x8b, 0x08}},
	{compressionZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{compressionXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{compressionBZip2, []byte{0x42, 0x5a, 0x68}},
}

func detectCompression(buff []byte) compression {
Outer:
	for _, s := range compressionSigs {
		if len(buff) < len(s.sig) {
			continue Outer
		}
		for position := range s.sig {
			if buff[position] != s.sig[position] {
				continue Outer
			}
		}
		return s.kind
	}

	// zlib has no magic number, only a 2-byte header whose big-endian value
	// is a multiple of 31.
	if len(buff) >= 2 && buff[0] == 0x78 && (uint(buff[0])<<8|uint(buff[1]))%31 == 0 {
		return compressionZlib
	}

	return compressionNone
}

// MaybeDecompress sniffs the leading bytes of r and, if it recognizes gzip,
// zip, xz, zlib, or bzip2 framing, interposes the matching decompressor.
// Detection peeks through a buffered reader rather than seeking, so
// non-seekable sources such as object store streams work. For zip archives,
// the first entry is read.
func MaybeDecompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buff, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, pfx.Err(err)
	}

	switch detectCompression(buff) {
	case compressionGzip:
		return gzip.NewReader(br)
	case compressionZip:
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, pfx.Err(err)
		}
		return zr, nil
	case compressionXZ:
		return xz.NewReader(br, 0)
	case compressionZlib:
		return zlib.NewReader(br)
	case compressionBZip2:
		return bzip2.NewReader(br), nil
	}

	return br, nil
}
