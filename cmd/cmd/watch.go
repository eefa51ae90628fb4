package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ostafen/reext/internal/config"
	"github.com/ostafen/reext/internal/logger"
	"github.com/ostafen/reext/internal/scan"
	"github.com/spf13/cobra"
)

func DefineWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Restore the extension of files as they appear in a directory",
		Long: `The 'watch' command monitors a directory and renames new or modified files whose content matches a known signature.
Files still unrecognised are checked again when written. Stop it with Ctrl+C.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunWatch,
	}

	config.RegisterScanFlags(cmd.Flags())
	config.RegisterLogFlags(cmd.Flags())
	cmd.Flags().Bool(config.KeyDryRun, false, "detect extensions without renaming files")
	cmd.Flags().Bool(config.KeySkipMatching, false, "leave files which already carry the detected extension")
	cmd.Flags().Int(config.KeyCacheSize, config.DefaultCacheSize, "number of renamed paths remembered to avoid processing them twice")
	return cmd
}

func RunWatch(cmd *cobra.Command, args []string) error {
	cfg, console, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, logFilePath, closeLog, err := scan.SessionLogger(cfg.LogDir, cfg.DisableLog, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer closeLog()

	rec, err := scan.NewRecoverer(recoverOptions(cfg), log)
	if err != nil {
		return err
	}

	w, err := scan.NewWatcher(rec, args[0], cfg.CacheSize, func(res scan.Result) {
		switch res.Status {
		case scan.StatusRenamed:
			console.Infof("%s -> %s", res.Path, res.NewPath)
		case scan.StatusDryRun:
			console.Infof("%s would be renamed to %s", res.Path, res.NewPath)
		case scan.StatusFailed:
			console.Errorf("unable to process %s: %s", res.Path, res.Err)
		default:
			console.Debugf("%s: %s", res.Path, res.Status)
		}
	})
	if err != nil {
		return err
	}

	console.Infof("Watching %s for new files...", args[0])
	if logFilePath != "" {
		console.Infof("Detailed log: \t%s", logFilePath)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil {
		return err
	}
	console.Info("Stopped watching.")
	return nil
}
