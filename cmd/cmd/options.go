package cmd

import (
	"os"

	"github.com/ostafen/reext/internal/config"
	"github.com/ostafen/reext/internal/logger"
	"github.com/ostafen/reext/internal/scan"
	"github.com/spf13/cobra"
)

func loadConfig(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel)), nil
}

func recoverOptions(cfg *config.Config) scan.RecoverOptions {
	return scan.RecoverOptions{
		Recursive:    cfg.Recursive,
		Include:      cfg.Include,
		Exclude:      cfg.Exclude,
		FileExt:      cfg.FileExt,
		Extended:     cfg.Extended,
		ReadSize:     cfg.ReadSize,
		Workers:      cfg.Workers,
		DryRun:       cfg.DryRun,
		SkipMatching: cfg.SkipMatching,
	}
}
