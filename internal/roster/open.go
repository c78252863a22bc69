package roster

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// decompress wraps r with the decoder the file extension of name calls for.
// Plain files pass through untouched.
func decompress(r io.Reader, name string) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return zr.IOReadCloser(), nil
	case ".gz":
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return gr, nil
	}
	return io.NopCloser(r), nil
}

// Open reads a stat sheet from disk, transparently decompressing .zst and .gz
// files.
func Open(path string, opts ...ReaderOption) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stat sheet: %w", err)
	}
	defer f.Close()

	dr, err := decompress(f, path)
	if err != nil {
		return nil, err
	}
	defer dr.Close()

	return ReadCSV(dr, opts...)
}
