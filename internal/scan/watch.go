package scan

import (
	"context"
	"errors"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Watcher recovers the extension of files as they are created or written
// in a directory.
type Watcher struct {
	rec      *Recoverer
	dir      string
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	onResult func(Result)

	// produced holds the paths created by our own renames, which must not be processed again.
	produced *lru.Cache[string, struct{}]
}

// NewWatcher starts watching dir, and its subdirectories if the recoverer is
// recursive. Events are only handled once Run is called.
func NewWatcher(rec *Recoverer, dir string, cacheSize int, onResult func(Result)) (*Watcher, error) {
	produced, err := lru.New[string, struct{}](cacheSize)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		rec:      rec,
		dir:      dir,
		watcher:  fw,
		logger:   rec.logger,
		onResult: onResult,
		produced: produced,
	}

	if err := w.addDir(dir); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addDir(dir string) error {
	if !w.rec.opts.Recursive {
		return w.watcher.Add(dir)
	}

	return filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// Run handles events until ctx is cancelled. It always closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				w.handle(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "dir", w.dir, "err", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handle(path string) {
	if w.produced.Contains(path) {
		return
	}

	finfo, err := os.Lstat(path)
	if errors.Is(err, os.ErrNotExist) {
		// already renamed or removed
		return
	}
	if err != nil {
		w.logger.Error("unable to stat file", "path", path, "err", err)
		return
	}

	if finfo.IsDir() {
		if w.rec.opts.Recursive {
			if err := w.addDir(path); err != nil {
				w.logger.Error("unable to watch directory", "path", path, "err", err)
			}
		}
		return
	}

	if !finfo.Mode().IsRegular() || !w.rec.filter.Match(finfo.Name()) {
		return
	}

	res := w.rec.Process(path)
	switch res.Status {
	case StatusRenamed:
		w.produced.Add(res.NewPath, struct{}{})
	case StatusDryRun:
		w.produced.Add(res.Path, struct{}{})
	}

	if w.onResult != nil {
		w.onResult(res)
	}
}
