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
package scan

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ostafen/reext/internal/logger"
	"github.com/ostafen/reext/pkg/pbar"
	fmtutil "github.com/ostafen/reext/pkg/util/format"
)

type Options struct {
	RecoverOptions

	ReportFile string
	LogDir     string
	DisableLog bool
	LogLevel   logger.Level

	// Progress receives the progress bar. Nil disables it.
	Progress io.Writer
}

// Recover restores the extension of the files in dir, printing progress and
// a final summary to console. Per file failures are logged and counted,
// only setup errors and cancellation of ctx are returned.
func Recover(ctx context.Context, dir string, opts Options, console *logger.Logger) (*Summary, error) {
	log, logFilePath, closeLog, err := SessionLogger(opts.LogDir, opts.DisableLog, opts.LogLevel)
	if err != nil {
		return nil, err
	}
	defer closeLog()

	rec, err := NewRecoverer(opts.RecoverOptions, log)
	if err != nil {
		return nil, err
	}

	console.Info("Starting recovery operation...")
	console.Infof("Source: \t%s", absPath(dir))
	console.Infof("File Types: \t%s", strings.Join(rec.Detector().Extensions(), ","))
	if opts.DryRun {
		console.Warn("Dry run: no file will be renamed")
	}

	outLog := "disabled"
	if !opts.DisableLog {
		outLog = logFilePath
	}
	console.Infof("Output Log: \t%s", outLog)

	files, err := rec.ListFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	console.Infof("Checking %d files against %d signatures...", len(files), rec.Detector().Signatures())

	var report *reportWriter
	if opts.ReportFile != "" && !opts.DryRun {
		report, err = createReport(opts.ReportFile, dir, opts.Recursive)
		if err != nil {
			return nil, err
		}
		defer report.Close()
	}

	var bar *pbar.ProgressBarState
	if opts.Progress != nil {
		bar = pbar.NewProgressBarState(opts.Progress, len(files))
	}

	var reportErrors atomic.Int64

	start := time.Now()
	summary, err := rec.ProcessFiles(ctx, files, func(res Result) {
		if bar != nil {
			bar.Add(res.Size, res.Status == StatusRenamed || res.Status == StatusDryRun)
		}

		if report != nil && res.Status == StatusRenamed {
			if err := report.Add(res); err != nil {
				reportErrors.Add(1)
				log.Error("unable to write report entry", "path", res.NewPath, "original", res.Path, "err", err)
			}
		}
	})
	summary.ReportErrors = int(reportErrors.Load())
	if bar != nil {
		bar.Finish()
	}

	if err != nil {
		console.Warnf("Recovery interrupted: %s", err)
	} else {
		console.Info("Recovery completed!")
	}
	console.Infof("Files checked: \t%d", summary.Files)
	console.Infof("Recovered: \t%d", summary.Recovered)
	console.Infof("Unknown: \t%d", summary.Unknown)
	if summary.Skipped > 0 {
		console.Infof("Skipped: \t%d", summary.Skipped)
	}
	if summary.Failed > 0 {
		console.Warnf("Failed: \t%d", summary.Failed)
	}
	if summary.ReportErrors > 0 {
		console.Warnf("Not in report: \t%d (renamed, but cannot be restored from the report)", summary.ReportErrors)
	}
	console.Infof("Data read: \t%s", fmtutil.FormatBytes(summary.BytesRead))
	console.Infof("Duration: \t%s", FormatDurationHMS(time.Since(start)))

	if report != nil {
		console.Infof("Report saved to: \t%s", absPath(opts.ReportFile))
	}
	if !opts.DisableLog {
		console.Infof("Detailed log: \t%s", logFilePath)
	}
	return &summary, err
}

func absPath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

// GenSessionID creates a unique name for a recovery session.
// The format is "YYYYMMDD_HHMMSS".
func GenSessionID() string {
	return time.Now().Format("20060102_150405")
}

// FormatDurationHMS formats a time.Duration into HH:MM:SS string.
// Durations shorter than a second are printed in seconds.
func FormatDurationHMS(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	totalSeconds := int64(d.Seconds())

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// setupLogger initializes a new slog.Logger that writes to a specified file or discards output.
// - logFilePath: The full path to the log file. If empty, logs will be discarded (file logging disabled).
// - minLevel: The minimum log level to write.
// It returns the logger instance and the *os.File, which will be nil if logging to file is disabled.
// The returned *os.File (if not nil) should be closed by the caller.
func setupLogger(logFilePath string, minLevel slog.Level) (*slog.Logger, *os.File, error) {
	var writer io.Writer
	var file *os.File

	if logFilePath == "" {
		writer = io.Discard
	} else {
		logDir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %q: %w", logDir, err)
		}

		f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
		}
		writer = f
		file = f
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level:     minLevel,
		AddSource: true,
	})
	return slog.New(handler), file, nil
}

// SessionLogger opens the session log in logDir, or discards logs if disabled.
// The returned close function must be called once done.
func SessionLogger(logDir string, disabled bool, level logger.Level) (*slog.Logger, string, func() error, error) {
	var path string
	if !disabled {
		path = absPath(filepath.Join(logDir, GenSessionID()) + ".log")
	}

	log, f, err := setupLogger(path, level.Slog())
	if err != nil {
		return nil, "", nil, err
	}

	closeFn := func() error { return nil }
	if f != nil {
		closeFn = f.Close
	}
	return log, path, closeFn, nil
}
