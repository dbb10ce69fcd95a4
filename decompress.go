// Package xrdplot holds shared file-handling glue for the XRD plotting
// tools: transparent decompression of instrument exports, delimiter
// sniffing for CSV-like scan files, and user-path expansion.
package xrdplot

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// ExportEncoding identifies the compression wrapper (if any) around an
// instrument export file.
type ExportEncoding byte

const (
	EncodingInvalid ExportEncoding = iota
	EncodingPlain
	EncodingGzip
	EncodingZip
	EncodingXZ
	EncodingZlib
	EncodingBZip2
)

// Magic bytes from https://stackoverflow.com/a/19127748/199475
var encodingSigs = map[ExportEncoding][]byte{
	EncodingGzip:  {0x1f, 0x8b, 0x08},
	EncodingZip:   {0x50, 0x4b, 0x03, 0x04},
	EncodingXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	EncodingZlib:  {0x1f, 0x9d},
	EncodingBZip2: {0x42, 0x5a, 0x68},
}

// DetectEncoding sniffs the compression wrapper of a stream by comparing its
// leading bytes against known signatures. Diffractometer software frequently
// gzips large scan exports; everything unrecognized is assumed plain text.
func DetectEncoding(r io.Reader) (ExportEncoding, error) {
	buff := make([]byte, 6)
	if _, err := r.Read(buff); err != nil {
		return EncodingInvalid, err
	}

Outer:
	for enc, sig := range encodingSigs {
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return enc, nil
	}

	return EncodingPlain, nil
}

// MaybeDecompress wraps f in the appropriate decompressing reader based on
// the detected encoding, or returns f itself for plain files. Zip input is
// read as a stream; only the first archived file is surfaced, which matches
// how the instruments emit single-scan zips.
func MaybeDecompress(f *os.File) (io.ReadCloser, error) {
	enc, err := DetectEncoding(f)
	if err != nil {
		return nil, err
	}
	// Reset your original reader before the decompressors consume it
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	switch enc {
	case EncodingGzip:
		return gzip.NewReader(f)
	case EncodingZip:
		zr := zipstream.NewReader(f)
		if _, err := zr.Next(); err != nil {
			return nil, err
		}
		return &readCloserFaker{zr}, nil
	case EncodingBZip2:
		return &readCloserFaker{bzip2.NewReader(f)}, nil
	case EncodingXZ:
		reader, err := xz.NewReader(f, 0)
		if err != nil {
			return nil, err
		}
		return &readCloserFaker{reader}, nil
	case EncodingZlib:
		return zlib.NewReader(f)
	}

	return f, nil
}

// readCloserFaker "upgrades" readers that don't need to be closed
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}
