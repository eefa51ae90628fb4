package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/ostafen/reext/internal/config"
	"github.com/ostafen/reext/internal/scan"
	fmtutil "github.com/ostafen/reext/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineDetectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect <path>...",
		Short: "Print the detected extension of files without renaming them",
		Long: `The 'detect' command classifies the given files, or the files of the given directories,
and prints a table with the extension detected for each of them. No file is modified.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunDetect,
	}

	config.RegisterScanFlags(cmd.Flags())
	return cmd
}

func RunDetect(cmd *cobra.Command, args []string) error {
	cfg, console, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rec, err := scan.NewRecoverer(recoverOptions(cfg), slog.New(slog.DiscardHandler))
	if err != nil {
		return err
	}

	var files []string
	for _, path := range args {
		finfo, err := os.Stat(path)
		if err != nil {
			return err
		}

		if !finfo.IsDir() {
			files = append(files, path)
			continue
		}

		dirFiles, err := rec.ListFiles(cmd.Context(), path)
		if err != nil {
			return err
		}
		files = append(files, dirFiles...)
	}

	failed := writeDetections(os.Stdout, rec, files, func(path string, err error) {
		console.Errorf("unable to classify %s: %s", path, err)
	})
	if failed > 0 {
		return fmt.Errorf("%d files could not be classified", failed)
	}
	return nil
}

func writeDetections(out io.Writer, rec *scan.Recoverer, files []string, onError func(string, error)) int {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tEXT\tSIZE")

	failed := 0
	for _, path := range files {
		ext, size, _, err := rec.Detect(path)
		if err != nil {
			failed++
			onError(path, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", path, ext, fmtutil.FormatBytes(size))
	}
	_ = w.Flush()

	return failed
}
