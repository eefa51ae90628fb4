package fuse

import (
	"log/slog"
	"path/filepath"

	"github.com/ostafen/reext/internal/format"
)

// FileEntry is a file exposed by the mounted filesystem.
type FileEntry struct {
	Name string // name in the mounted directory
	Path  string // file on disk backing the entry
	Size  uint64
	Inode uint64
}

// rootInode is the inode of the mounted directory. Entries are numbered after it.
const rootInode = 1

// FileDetector classifies the file at path, returning its extension and size.
type FileDetector interface {
	Detect(path string) (format.Extension, int64, int64, error)
}

// BuildEntries names each file after its base name plus the detected
// extension, or its base name alone when the content is unknown. Files which
// cannot be read are left out. When two files map to the same name, the first
// one wins.
func BuildEntries(files []string, d FileDetector, logger *slog.Logger) []FileEntry {
	entries := make([]FileEntry, 0, len(files))
	seen := make(map[string]string, len(files))

	for _, path := range files {
		ext, size, _, err := d.Detect(path)
		if err != nil {
			logger.Error("unable to classify file", "path", path, "err", err)
			continue
		}

		name := filepath.Base(path)
		if ext.Known() {
			name += "." + string(ext)
		}

		if prev, ok := seen[name]; ok {
			logger.Warn("name already in use, skipping file", "name", name, "path", path, "used_by", prev)
			continue
		}
		seen[name] = path

		entries = append(entries, FileEntry{
			Name:  name,
			Path:  path,
			Size:  uint64(size),
			Inode: rootInode + uint64(len(entries)) + 1,
		})
	}
	return entries
}
