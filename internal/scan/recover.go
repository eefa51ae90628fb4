package scan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ostafen/reext/internal/format"
	"github.com/ostafen/reext/internal/fs"
	"github.com/ostafen/reext/internal/mmap"
	osutils "github.com/ostafen/reext/pkg/util/os"
	"golang.org/x/sync/errgroup"
)

// Status is the outcome of processing a single file.
type Status int

const (
	StatusRenamed Status = iota
	StatusDryRun
	StatusUnknown
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRenamed:
		return "renamed"
	case StatusDryRun:
		return "dry-run"
	case StatusUnknown:
		return "unknown"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result describes what happened to a file.
type Result struct {
	Path    string
	NewPath string // set for StatusRenamed and StatusDryRun
	Ext     format.Extension
	Size    int64 // size of the file
	Read    int64 // bytes read to classify it
	Status  Status
	Err     error
}

// Summary aggregates the results of a run. Dry run results count as recovered.
type Summary struct {
	Files     int
	Recovered int
	Unknown   int
	Skipped   int
	Failed    int
	BytesRead int64

	// ReportErrors counts renamed files which could not be added to the
	// report, and so cannot be restored from it.
	ReportErrors int
}

func (s *Summary) Add(res Result) {
	s.Files++
	s.BytesRead += res.Read

	switch res.Status {
	case StatusRenamed, StatusDryRun:
		s.Recovered++
	case StatusUnknown:
		s.Unknown++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// RecoverOptions controls how files are selected, classified and renamed.
type RecoverOptions struct {
	Recursive    bool
	Include      []string
	Exclude      []string
	FileExt      []string
	Extended     bool
	ReadSize     uint64 // 0 reads whole files
	Workers      int
	DryRun       bool
	SkipMatching bool
}

// Recoverer appends the detected extension to the name of files.
// It is safe for concurrent use.
type Recoverer struct {
	opts     RecoverOptions
	detector *Detector
	filter   *Filter
	logger   *slog.Logger
}

func NewRecoverer(opts RecoverOptions, logger *slog.Logger) (*Recoverer, error) {
	detector, err := NewDetector(opts.FileExt, opts.Extended)
	if err != nil {
		return nil, err
	}

	filter, err := NewFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	return &Recoverer{
		opts:     opts,
		detector: detector,
		filter:   filter,
		logger:   logger,
	}, nil
}

func (r *Recoverer) Detector() *Detector { return r.detector }

func (r *Recoverer) Filter() *Filter { return r.filter }

// ListFiles returns the files of dir the recoverer would process.
func (r *Recoverer) ListFiles(ctx context.Context, dir string) ([]string, error) {
	return ListFiles(ctx, dir, r.opts.Recursive, r.filter, r.logger)
}

// Detect classifies the file at path without renaming it.
// It returns the detected extension, the file size and the number of bytes read.
func (r *Recoverer) Detect(path string) (format.Extension, int64, int64, error) {
	finfo, err := os.Stat(path)
	if err != nil {
		return format.Unknown, 0, 0, err
	}
	if !finfo.Mode().IsRegular() {
		return format.Unknown, finfo.Size(), 0, fmt.Errorf("%s is not a regular file", path)
	}

	if r.opts.ReadSize == 0 {
		return r.detectWhole(path)
	}

	f, err := fs.Open(path)
	if err != nil {
		return format.Unknown, 0, 0, err
	}
	defer f.Close()

	// never allocate more than the file can hold
	n := finfo.Size()
	if r.opts.ReadSize < uint64(n) {
		n = int64(r.opts.ReadSize)
	}

	hdr, err := fs.ReadHeader(f, n)
	if err != nil {
		return format.Unknown, finfo.Size(), 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return r.detector.Detect(hdr), finfo.Size(), int64(len(hdr)), nil
}

// detectWhole classifies the entire content of path, mapped in memory.
func (r *Recoverer) detectWhole(path string) (format.Extension, int64, int64, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return format.Unknown, 0, 0, err
	}
	defer m.Close()

	size := int64(len(m.Data))
	return r.detector.Detect(m.Data), size, size, nil
}

// Process classifies the file at path and, if its content is recognised,
// renames it to path + "." + ext. Renames never overwrite existing files.
// Failures are reported in the result, never as a panic or abort.
func (r *Recoverer) Process(path string) Result {
	res := Result{Path: path}

	ext, size, read, err := r.Detect(path)
	res.Ext, res.Size, res.Read = ext, size, read
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		r.logger.Error("unable to classify file", "path", path, "err", err)
		return res
	}

	if !ext.Known() {
		res.Status = StatusUnknown
		r.logger.Debug("unknown file type", "path", path, "read", read)
		return res
	}

	if r.opts.SkipMatching {
		if _, cur := osutils.SplitExt(path); strings.EqualFold(cur, string(ext)) {
			res.Status = StatusSkipped
			r.logger.Debug("extension already matches", "path", path, "ext", ext)
			return res
		}
	}

	res.NewPath = path + "." + string(ext)
	if r.opts.DryRun {
		res.Status = StatusDryRun
		r.logger.Info("would rename file", "path", path, "new_path", res.NewPath, "ext", ext)
		return res
	}

	if err := fs.RenameNoReplace(path, res.NewPath); err != nil {
		res.Status, res.Err = StatusFailed, err
		r.logger.Error("unable to rename file", "path", path, "new_path", res.NewPath, "err", err)
		return res
	}

	res.Status = StatusRenamed
	r.logger.Info("renamed file", "path", path, "new_path", res.NewPath, "ext", ext)
	return res
}

// ProcessFiles processes files with a pool of workers and calls onResult,
// possibly concurrently, for each processed file. It stops early only if ctx is
// cancelled, in which case the summary covers the files processed so far.
func (r *Recoverer) ProcessFiles(ctx context.Context, files []string, onResult func(Result)) (Summary, error) {
	var (
		mtx     sync.Mutex
		summary Summary
	)

	g := new(errgroup.Group)
	g.SetLimit(r.opts.Workers)

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			res := r.Process(path)

			mtx.Lock()
			summary.Add(res)
			mtx.Unlock()

			if onResult != nil {
				onResult(res)
			}
			return nil
		})
	}
	_ = g.Wait()

	return summary, ctx.Err()
}

// Run lists the files of dir and processes them.
func (r *Recoverer) Run(ctx context.Context, dir string, onResult func(Result)) (Summary, error) {
	files, err := r.ListFiles(ctx, dir)
	if err != nil {
		return Summary{}, err
	}
	return r.ProcessFiles(ctx, files, onResult)
}
