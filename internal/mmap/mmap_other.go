//go:build !unix

package mmap

import (
	"io"
	"os"
)

// MmapFile holds the content of a whole file. Platforms without mmap read it in memory.
type MmapFile struct {
	Data []byte
	File *os.File
}

func Open(path string) (*MmapFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &MmapFile{Data: data, File: f}, nil
}

func (m *MmapFile) Close() error {
	m.Data = nil
	return m.File.Close()
}
