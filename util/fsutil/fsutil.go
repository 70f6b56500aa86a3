// Package fsutil opens harness files that may be stored gzip-compressed.
package fsutil

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// GzipSuffix marks a compressed variant of a file.
const GzipSuffix = ".gz"

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	err := g.Reader.Close()
	if cerr := g.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func openGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "%s", path)
	}
	return &gzipFile{Reader: zr, f: f}, nil
}

// Open opens path for reading. A path ending in GzipSuffix is decompressed.
// When path does not exist but path+GzipSuffix does, the compressed
// variant is opened instead. A missing file yields an error satisfying
// os.IsNotExist on the plain path.
func Open(path string) (io.ReadCloser, error) {
	if strings.HasSuffix(path, GzipSuffix) {
		return openGzip(path)
	}
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	rc, gzErr := openGzip(path + GzipSuffix)
	if gzErr == nil {
		return rc, nil
	}
	if os.IsNotExist(gzErr) {
		return nil, err
	}
	return nil, gzErr
}

// ReadFile reads the whole file found by Open. The boolean reports whether
// a file existed; a missing file is not an error.
func ReadFile(path string) ([]byte, bool, error) {
	rc, err := Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, true, errors.Wrapf(err, "reading %s", path)
	}
	return b, true, nil
}
