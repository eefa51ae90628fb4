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
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ostafen/reext/internal/config"
	"github.com/ostafen/reext/internal/logger"
	"github.com/ostafen/reext/internal/scan"
	"github.com/spf13/cobra"
)

func DefineRecoverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover <dir>",
		Short: "Restore the extension of the files in a directory",
		Long: `The 'recover' command inspects the leading bytes of every file in a directory and,
when the content matches a known file signature, renames the file by appending the detected extension.
Files whose content is not recognised are left untouched, and existing files are never overwritten.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunRecover,
	}

	config.RegisterScanFlags(cmd.Flags())
	config.RegisterRecoverFlags(cmd.Flags())
	config.RegisterLogFlags(cmd.Flags())
	return cmd
}

func RunRecover(cmd *cobra.Command, args []string) error {
	cfg, console, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := scan.Options{
		RecoverOptions: recoverOptions(cfg),
		ReportFile:     cfg.ReportFile,
		LogDir:         cfg.LogDir,
		DisableLog:     cfg.DisableLog,
		LogLevel:       logger.ParseLevel(cfg.LogLevel),
	}
	if !cfg.NoProgress {
		opts.Progress = os.Stdout
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := scan.Recover(ctx, args[0], opts, console)
	if err != nil {
		return err
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files could not be processed", summary.Failed, summary.Files)
	}
	if summary.ReportErrors > 0 {
		return fmt.Errorf("%d renamed files are missing from the report", summary.ReportErrors)
	}
	return nil
}
