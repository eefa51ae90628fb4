//go:build linux

package sysinfo

import (
	"os"

	"golang.org/x/sys/unix"
)

func platformInfo() (string, string, error) {
	release := "unknown"
	if f, err := os.Open("/etc/os-release"); err == nil {
		defer f.Close()
		if r := ParseOSRelease(f); r != "" {
			release = r
		}
	}

	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return release, "unknown", nil
	}
	return release, unix.ByteSliceToString(uts.Release[:]), nil
}
