package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ostafen/reext/internal/config"
	"github.com/ostafen/reext/internal/logger"
	"github.com/ostafen/reext/internal/scan"
	"github.com/ostafen/reext/pkg/dfxml"
	"github.com/spf13/cobra"
)

func DefineRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <report_file>",
		Short: "Undo the renames recorded in a recovery report",
		Long: `The 'restore' command reads a report written by 'recover --report' and renames every recorded file back to its original name.
A file is restored only if its content digest still matches the one in the report and its original name is free.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunRestore,
	}

	config.RegisterLogFlags(cmd.Flags())
	return cmd
}

func RunRestore(cmd *cobra.Command, args []string) error {
	cfg, console, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	objs, err := scan.ReadReport(args[0])
	if err != nil {
		return err
	}

	log, logFilePath, closeLog, err := scan.SessionLogger(cfg.LogDir, cfg.DisableLog, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer closeLog()

	console.Infof("Restoring %d files from %s", len(objs), args[0])

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := scan.Restore(ctx, objs, log, func(obj dfxml.FileObject, err error) {
		if err != nil {
			console.Errorf("unable to restore %s: %s", obj.Filename, err)
			return
		}
		console.Debugf("restored %s -> %s", obj.Filename, obj.OriginalFilename)
	})
	if err != nil {
		return err
	}

	console.Infof("Restored: \t%d", summary.Restored)
	if summary.Failed > 0 {
		console.Warnf("Failed: \t%d", summary.Failed)
	}
	if logFilePath != "" {
		console.Infof("Detailed log: \t%s", logFilePath)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files could not be restored", summary.Failed, len(objs))
	}
	return nil
}
