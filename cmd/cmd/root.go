package cmd

import (
	"github.com/ostafen/reext/internal/config"
	"github.com/ostafen/reext/internal/env"
	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd := &cobra.Command{
		Use:     env.AppName,
		Short:   env.AppName + " - restore file extensions from file content",
		Version: env.Version,
	}
	config.RegisterRootFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		DefineRecoverCommand(),
		DefineDetectCommand(),
		DefineFormatsCommand(),
		DefineRestoreCommand(),
		DefineWatchCommand(),
		DefineMountCommand(),
	)
	return rootCmd.Execute()
}
