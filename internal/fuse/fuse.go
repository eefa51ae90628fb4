//go:build linux

// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package fuse

import (
	"context"
	"io"
	"os"
	"sort"
	"syscall"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
)

// RecoverFS is a read-only, flat filesystem listing files under their recovered names.
type RecoverFS struct {
	entries map[string]FileEntry
}

func NewRecoverFS(entries []FileEntry) *RecoverFS {
	m := make(map[string]FileEntry, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}
	return &RecoverFS{entries: m}
}

func (rfs *RecoverFS) Root() (fs.Node, error) {
	return &Dir{fs: rfs}, nil
}

// Dir implements both fs.Node and fs.HandleReadDirAller
type Dir struct {
	fs *RecoverFS
}

func (*Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = rootInode
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if e, ok := d.fs.entries[name]; ok {
		return &File{entry: e}, nil
	}
	return nil, fuse.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	dirEntries := make([]fuse.Dirent, 0, len(d.fs.entries))
	for _, e := range d.fs.entries {
		dirEntries = append(dirEntries, fuse.Dirent{
			Inode: e.Inode,
			Name:  e.Name,
			Type:  fuse.DT_File,
		})
	}
	sort.Slice(dirEntries, func(i, j int) bool {
		return dirEntries[i].Name < dirEntries[j].Name
	})
	return dirEntries, nil
}

// File implements fs.Node and fs.NodeOpener
type File struct {
	entry FileEntry
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = f.entry.Inode
	a.Mode = 0444
	a.Size = f.entry.Size

	if finfo, err := os.Stat(f.entry.Path); err == nil {
		a.Mtime = finfo.ModTime()
	}
	return nil
}

func (f *File) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fs.Handle, error) {
	if !req.Flags.IsReadOnly() {
		return nil, fuse.Errno(syscall.EACCES)
	}

	fh, err := os.Open(f.entry.Path)
	if err != nil {
		return nil, err
	}
	return &FileHandle{f: fh, size: f.entry.Size}, nil
}

// FileHandle implements fs.HandleReader and fs.HandleReleaser
type FileHandle struct {
	f    *os.File
	size uint64
}

func (h *FileHandle) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	size := int(req.Size)
	offset := req.Offset

	if offset >= int64(h.size) {
		resp.Data = []byte{}
		return nil
	}

	// clamp reads past EOF
	if offset+int64(size) > int64(h.size) {
		size = int(int64(h.size) - offset)
	}

	buf := make([]byte, size)
	n, err := h.f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return err
	}

	resp.Data = buf[:n]
	return nil
}

func (h *FileHandle) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	return h.f.Close()
}
