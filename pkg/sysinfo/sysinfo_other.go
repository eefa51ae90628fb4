//go:build !linux

package sysinfo

import (
	"bufio"
	"bytes"
	"os/exec"
	"runtime"
	"strings"
)

func platformInfo() (string, string, error) {
	switch runtime.GOOS {
	case "darwin":
		out, err := exec.Command("sw_vers").Output()
		if err != nil {
			return "macOS", "unknown", nil
		}

		var name, version string
		sc := bufio.NewScanner(bytes.NewReader(out))
		for sc.Scan() {
			key, value, _ := strings.Cut(sc.Text(), ":")
			switch key {
			case "ProductName":
				name = strings.TrimSpace(value)
			case "ProductVersion":
				version = strings.TrimSpace(value)
			}
		}
		return name, version, nil
	case "windows":
		out, err := exec.Command("cmd", "/c", "ver").Output()
		if err != nil {
			return "Windows", "unknown", nil
		}
		return "Windows", strings.TrimSpace(string(out)), nil
	}
	return "unknown", "unknown", nil
}
