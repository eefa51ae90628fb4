package fs

import (
	"fmt"
	"io"
	"os"
)

// File is the read side of a file being classified.
type File interface {
	io.ReadCloser
	io.ReaderAt
	Stat() (os.FileInfo, error)
}

// Open opens path for reading.
func Open(path string) (File, error) {
	return os.Open(path)
}

// ReadHeader reads up to n bytes from the start of r.
// Short files return what they have without error.
func ReadHeader(r io.ReaderAt, n int64) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid header size: %d", n)
	}

	buf := make([]byte, n)
	read, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:read], nil
}
