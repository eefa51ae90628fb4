//go:build linux

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
package fuse

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
	"github.com/ostafen/reext/internal/logger"
	osutils "github.com/ostafen/reext/pkg/util/os"
)

const maxUnmountRetries = 3

// Mount serves entries read-only at mountpoint until a termination signal is received.
// The mountpoint is created if missing, and removed on exit in that case.
func Mount(mountpoint string, entries []FileEntry, log *logger.Logger) error {
	created, err := osutils.EnsureDir(mountpoint, true)
	if err != nil {
		return err
	}
	if created {
		defer os.Remove(mountpoint)
	}

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("reext"),
		fuse.Subtype("reextfs"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return fmt.Errorf("failed to mount %s: %w", mountpoint, err)
	}
	defer c.Close()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- fusefs.New(c, nil).Serve(NewRecoverFS(entries))
	}()

	log.Infof("Mounted %d files at %s", len(entries), mountpoint)
	return waitForUmount(mountpoint, serveErr, log)
}

func waitForUmount(mountpoint string, serveErr <-chan error, log *logger.Logger) error {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)

	log.Info("Waiting for termination signal...")

	unmountAttempts := 0
	for {
		select {
		case err := <-serveErr:
			// unmounted externally, e.g. with fusermount -u
			return err
		case sig := <-sigc:
			log.Infof("Signal received: %v.", sig)

			log.Infof("Attempting unmount of %s (attempt %d/%d)...", mountpoint, unmountAttempts+1, maxUnmountRetries)
			err := fuse.Unmount(mountpoint)
			if err == nil {
				log.Info("Unmounted successfully, exiting.")
				return nil
			}

			unmountAttempts++
			if unmountAttempts >= maxUnmountRetries {
				return fmt.Errorf("unable to unmount %s after %d attempts: %w", mountpoint, maxUnmountRetries, err)
			}
			log.Warnf("Unmount failed: %v. Remaining retries: %d. Waiting for another signal to retry...", err, maxUnmountRetries-unmountAttempts)
		}
	}
}
