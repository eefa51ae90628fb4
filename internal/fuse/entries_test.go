package fuse

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/ostafen/reext/internal/format"
	"github.com/stretchr/testify/require"
)

type fakeDetector map[string]format.Extension

func (d fakeDetector) Detect(path string) (format.Extension, int64, int64, error) {
	ext, ok := d[path]
	if !ok {
		return format.Unknown, 0, 0, errors.New("not found")
	}
	return ext, int64(len(path)), 0, nil
}

func TestBuildEntries(t *testing.T) {
	d := fakeDetector{
		"/d/a":       "jpg",
		"/d/b":       format.Unknown,
		"/d/sub/a":   "jpg",
		"/d/a.jpg":   format.Unknown,
		"/d/sub/c.x": "pdf",
	}

	files := []string{"/d/a", "/d/b", "/d/missing", "/d/sub/a", "/d/a.jpg", "/d/sub/c.x"}
	entries := BuildEntries(files, d, slog.New(slog.DiscardHandler))

	require.Equal(t, []FileEntry{
		{Name: "a.jpg", Path: "/d/a", Size: 4, Inode: 2},
		{Name: "b", Path: "/d/b", Size: 4, Inode: 3},
		{Name: "c.x.pdf", Path: "/d/sub/c.x", Size: 10, Inode: 4},
	}, entries)
}

func TestBuildEntries_Empty(t *testing.T) {
	require.Empty(t, BuildEntries(nil, fakeDetector{}, slog.New(slog.DiscardHandler)))
}
