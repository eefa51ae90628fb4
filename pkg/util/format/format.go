package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	_  = iota // ignore first value
	KB = 1 << (10 * iota)
	MB
	GB
	TB
)

// FormatBytes formats a byte count into a human-readable string,
// avoiding .00 for whole numbers.
func FormatBytes(b int64) string {
	val := float64(b)
	var unit string

	switch {
	case b >= TB:
		val /= float64(TB)
		unit = "TB"
	case b >= GB:
		val /= float64(GB)
		unit = "GB"
	case b >= MB:
		val /= float64(MB)
		unit = "MB"
	case b >= KB:
		val /= float64(KB)
		unit = "KB"
	default:
		return fmt.Sprintf("%dB", b)
	}

	if val == float64(int(val)) {
		return fmt.Sprintf("%.0f%s", val, unit)
	}
	return fmt.Sprintf("%.2f%s", val, unit)
}

var units = []struct {
	suffix string
	mul    uint64
}{
	// longest suffixes first, so that "KB" is not parsed as "B"
	{"TB", TB},
	{"GB", GB},
	{"MB", MB},
	{"KB", KB},
	{"T", TB},
	{"G", GB},
	{"M", MB},
	{"K", KB},
	{"B", 1},
}

// ParseBytes parses sizes such as "512", "8KB", "1.5MB" or "4 GB".
// Units are powers of 1024 and case-insensitive.
func ParseBytes(s string) (uint64, error) {
	str := strings.ToUpper(strings.TrimSpace(s))
	if str == "" {
		return 0, fmt.Errorf("invalid size: empty string")
	}

	mul := uint64(1)
	for _, u := range units {
		if strings.HasSuffix(str, u.suffix) {
			mul = u.mul
			str = strings.TrimSpace(strings.TrimSuffix(str, u.suffix))
			break
		}
	}

	if n, err := strconv.ParseUint(str, 10, 64); err == nil {
		if n > math.MaxUint64/mul {
			return 0, fmt.Errorf("size %q overflows uint64", s)
		}
		return n * mul, nil
	}

	f, err := strconv.ParseFloat(str, 64)
	if err != nil || f < 0 || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	// float64(math.MaxUint64) rounds up to 2^64, which is already out of range
	v := f * float64(mul)
	if v >= float64(math.MaxUint64) {
		return 0, fmt.Errorf("size %q overflows uint64", s)
	}
	return uint64(v), nil
}
