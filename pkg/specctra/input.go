package specctra

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Open opens a DSN file for reading. Files starting with the gzip magic
// bytes are decompressed on the fly.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	br := bufio.NewReader(f)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !bytes.Equal(head, gzipMagic) {
		return &input{Reader: br, file: f}, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open gzip stream in %s: %w", path, err)
	}
	return &input{Reader: zr, file: f, zr: zr}, nil
}

type input struct {
	io.Reader
	file *os.File
	zr   *gzip.Reader
}

func (in *input) Close() error {
	if in.zr != nil {
		if err := in.zr.Close(); err != nil {
			in.file.Close()
			return err
		}
	}
	return in.file.Close()
}
