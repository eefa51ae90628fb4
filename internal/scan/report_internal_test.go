package scan

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/reext/internal/logger"
	"github.com/stretchr/testify/require"
)

func TestRecover_CountsReportErrors(t *testing.T) {
	t.Cleanup(func() { hashFile = HashFile })
	hashFile = func(path string) (string, error) {
		if filepath.Base(path) == "a.jpg" {
			return "", errors.New("read error")
		}
		return HashFile(path)
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte{0xFF, 0xD8, 0xFF, 0xE0}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), []byte("%PDF-1.7\n"), 0644))

	report := filepath.Join(t.TempDir(), "report.xml")

	var console bytes.Buffer
	summary, err := Recover(context.Background(), dir, Options{
		RecoverOptions: RecoverOptions{ReadSize: 1024, Workers: 2},
		ReportFile:     report,
		DisableLog:     true,
	}, logger.New(&console, logger.InfoLevel))
	require.NoError(t, err)

	require.Equal(t, 2, summary.Recovered)
	require.Equal(t, 1, summary.ReportErrors)
	require.Contains(t, console.String(), "Not in report:")

	// the file is renamed all the same, but only b can be restored
	require.FileExists(t, filepath.Join(dir, "a.jpg"))

	objs, err := ReadReport(report)
	require.NoError(t, err)
	require.Len(t, objs, 1)
	require.Equal(t, filepath.Join(dir, "b.pdf"), objs[0].Filename)
}
