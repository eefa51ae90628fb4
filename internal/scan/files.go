package scan

import (
	"context"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Filter selects files by base name. A name is accepted when it matches one of
// the include patterns, or when there are none, and matches no exclude pattern.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

func NewFilter(include, exclude []string) (*Filter, error) {
	inc, err := compileGlobs(include)
	if err != nil {
		return nil, err
	}

	exc, err := compileGlobs(exclude)
	if err != nil {
		return nil, err
	}
	return &Filter{include: inc, exclude: exc}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func (f *Filter) Match(name string) bool {
	for _, g := range f.exclude {
		if g.Match(name) {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// ListFiles returns the regular files of dir accepted by filter, in lexical
// order. Subdirectories are visited only when recursive is set. Symbolic links
// and other special files are never returned. Unreadable subdirectories are
// logged and skipped.
func ListFiles(ctx context.Context, dir string, recursive bool, filter *Filter, logger *slog.Logger) ([]string, error) {
	finfo, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !finfo.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == dir {
				return err
			}
			logger.Warn("unable to read directory", "path", path, "err", err)
			return nil
		}

		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			logger.Debug("skipping non regular file", "path", path)
			return nil
		}

		if filter != nil && !filter.Match(d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}
