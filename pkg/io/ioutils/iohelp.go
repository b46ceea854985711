package ioutils

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
)

// Stdio is the path that selects stdin or stdout.
const Stdio = "-"

// OpenMaybeCompressed opens a file path or stdin ("-" or "") for reading.
// Gzip input is detected by the .gz extension or the gzip magic bytes and is
// decompressed transparently.
func OpenMaybeCompressed(path string) (io.ReadCloser, error) {
	if path == Stdio || path == "" {
		return wrapReader(bufio.NewReader(os.Stdin), func() error { return nil })
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := wrapReader(bufio.NewReader(f), f.Close)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return rc, nil
}

func wrapReader(br *bufio.Reader, closeFn func() error) (io.ReadCloser, error) {
	if !IsGzip(br) {
		return readCloser{Reader: br, closeFn: closeFn}, nil
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, err
	}
	return readCloser{Reader: zr, closeFn: func() error {
		_ = zr.Close()
		return closeFn()
	}}, nil
}

// IsGzip peeks at the gzip magic number without consuming input.
func IsGzip(br *bufio.Reader) bool {
	b, err := br.Peek(2)
	return err == nil && b[0] == 0x1f && b[1] == 0x8b
}

// CreateMaybeCompressed creates a file (or stdout for "-" or "") and returns
// a buffered writer. Paths ending in .gz are gzip compressed. Close flushes.
func CreateMaybeCompressed(path string) (io.WriteCloser, error) {
	if path == Stdio || path == "" {
		bw := bufio.NewWriter(os.Stdout)
		return writeCloser{Writer: bw, closeFn: bw.Flush}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	bw := bufio.NewWriter(f)
	if filepath.Ext(path) != ".gz" {
		return writeCloser{Writer: bw, closeFn: func() error {
			if err := bw.Flush(); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		}}, nil
	}
	zw := gzip.NewWriter(bw)
	return writeCloser{Writer: zw, closeFn: func() error {
		if err := zw.Close(); err != nil {
			_ = f.Close()
			return err
		}
		if err := bw.Flush(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}}, nil
}

type readCloser struct {
	io.Reader
	closeFn func() error
}

func (r readCloser) Close() error { return r.closeFn() }

type writeCloser struct {
	io.Writer
	closeFn func() error
}

func (w writeCloser) Close() error { return w.closeFn() }
