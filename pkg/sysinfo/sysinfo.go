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
package sysinfo

import (
	"bufio"
	"io"
	"runtime"
	"strings"
)

// SysUnknown is a pre-defined SysInfo struct representing unknown system information.
var SysUnknown = SysInfo{
	Name:    runtime.GOOS,
	Release: "unknown",
	Version: "unknown",
}

// SysInfo holds the basic operating system details.
type SysInfo struct {
	Name    string // runtime.GOOS
	Release string // distribution or product name and version, e.g. "Ubuntu 24.04 LTS"
	Version string // kernel or build version
}

// Stat gathers operating system information.
func Stat() (*SysInfo, error) {
	release, version, err := platformInfo()
	if err != nil {
		return nil, err
	}
	return &SysInfo{
		Name:    runtime.GOOS,
		Release: release,
		Version: version,
	}, nil
}

// ParseOSRelease extracts a human readable release from an os-release(5) file.
// PRETTY_NAME is preferred, otherwise NAME and VERSION are joined.
func ParseOSRelease(r io.Reader) string {
	fields := make(map[string]string)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[key] = unquote(value)
	}

	if pretty := fields["PRETTY_NAME"]; pretty != "" {
		return pretty
	}
	return strings.TrimSpace(fields["NAME"] + " " + fields["VERSION"])
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
