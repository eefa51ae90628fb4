//go:build !linux

package fuse

import (
	"fmt"

	"github.com/ostafen/reext/internal/logger"
)

func Mount(mountpoint string, entries []FileEntry, log *logger.Logger) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
