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
	"path/filepath"

	"github.com/ostafen/reext/internal/config"
	"github.com/ostafen/reext/internal/fuse"
	"github.com/ostafen/reext/internal/logger"
	"github.com/ostafen/reext/internal/scan"
	"github.com/spf13/cobra"
)

func DefineMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount <dir>",
		Short: "Mount a read-only view of a directory with recovered file names",
		Long: `The 'mount' command exposes the files of a directory through a read-only FUSE filesystem,
where every file is listed under its name plus the extension detected from its content.
Files on disk are not modified. Only supported on Linux.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunMount,
	}

	config.RegisterScanFlags(cmd.Flags())
	config.RegisterLogFlags(cmd.Flags())
	cmd.Flags().StringP(config.KeyMountpoint, "m", "", "Path to the directory where the filesystem will be mounted. If not specified, a default will be generated.")
	return cmd
}

func RunMount(cmd *cobra.Command, args []string) error {
	cfg, console, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, _, closeLog, err := scan.SessionLogger(cfg.LogDir, cfg.DisableLog, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer closeLog()

	rec, err := scan.NewRecoverer(recoverOptions(cfg), log)
	if err != nil {
		return err
	}

	files, err := rec.ListFiles(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	mountpoint := cfg.Mountpoint
	if mountpoint == "" {
		mountpoint = getMountpoint(args[0])
	}

	console.Infof("Classifying %d files...", len(files))
	entries := fuse.BuildEntries(files, rec, log)

	return fuse.Mount(mountpoint, entries, console)
}

// getMountpoint derives a mountpoint in the working directory from the name of dir.
func getMountpoint(dir string) string {
	name := filepath.Base(filepath.Clean(dir))
	if name == "." || name == string(filepath.Separator) {
		name = "root"
	}
	return name + "_recovered"
}
