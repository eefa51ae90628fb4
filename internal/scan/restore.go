package scan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ostafen/reext/internal/fs"
	"github.com/ostafen/reext/pkg/dfxml"
)

var ErrDigestMismatch = errors.New("content digest mismatch")

// RestoreSummary counts the outcome of a restore.
type RestoreSummary struct {
	Restored int
	Failed   int
}

// ReadReport reads the file objects recorded in the report at path.
func ReadReport(path string) ([]dfxml.FileObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	objs, err := dfxml.ReadFileObjects(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to parse report %q: %w", path, err)
	}
	return objs, nil
}

// Restore renames every file recorded in objs back to its original name,
// provided its content is unchanged since the report was written.
// Failures are logged and counted. onResult, if not nil, is called for every object.
func Restore(ctx context.Context, objs []dfxml.FileObject, logger *slog.Logger, onResult func(dfxml.FileObject, error)) (RestoreSummary, error) {
	var summary RestoreSummary

	for _, obj := range objs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		err := restoreFile(obj)
		if err != nil {
			summary.Failed++
			logger.Error("unable to restore file", "path", obj.Filename, "original", obj.OriginalFilename, "err", err)
		} else {
			summary.Restored++
			logger.Info("restored file", "path", obj.Filename, "original", obj.OriginalFilename)
		}

		if onResult != nil {
			onResult(obj, err)
		}
	}
	return summary, nil
}

func restoreFile(obj dfxml.FileObject) error {
	if obj.Filename == "" || obj.OriginalFilename == "" {
		return fmt.Errorf("incomplete report entry")
	}

	if obj.HashDigest.Type != dfxml.HashTypeXXH64 {
		return fmt.Errorf("unsupported digest type %q", obj.HashDigest.Type)
	}

	digest, err := HashFile(obj.Filename)
	if err != nil {
		return err
	}
	if digest != obj.HashDigest.Value {
		return fmt.Errorf("%s: %w", obj.Filename, ErrDigestMismatch)
	}
	return fs.RenameNoReplace(obj.Filename, obj.OriginalFilename)
}
