package format_test

import (
	"testing"

	"github.com/ostafen/reext/pkg/util/format"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "0B", format.FormatBytes(0))
	require.Equal(t, "1023B", format.FormatBytes(1023))
	require.Equal(t, "1KB", format.FormatBytes(1024))
	require.Equal(t, "1.50KB", format.FormatBytes(1536))
	require.Equal(t, "4MB", format.FormatBytes(4*format.MB))
	require.Equal(t, "2TB", format.FormatBytes(2*format.TB))
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		in  string
		out uint64
	}{
		{"0", 0},
		{"512", 512},
		{"512B", 512},
		{"8KB", 8 * 1024},
		{"8kb", 8 * 1024},
		{"8K", 8 * 1024},
		{"4MB", 4 * 1024 * 1024},
		{" 4 GB ", 4 * 1024 * 1024 * 1024},
		{"1.5MB", 1536 * 1024},
		{"1TB", 1 << 40},
	}

	for _, tc := range tests {
		n, err := format.ParseBytes(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.out, n, tc.in)
	}

	for _, in := range []string{"", "KB", "abc", "-1", "1.2.3MB", "12XB", "NaN", "+Inf"} {
		_, err := format.ParseBytes(in)
		require.Error(t, err, in)
	}
}

func TestParseBytes_Overflow(t *testing.T) {
	n, err := format.ParseBytes("16777215TB")
	require.NoError(t, err)
	require.Equal(t, uint64(16777215)<<40, n)

	for _, in := range []string{"16777216TB", "20000000TB", "18446744073709551616", "1e30", "1.5e10TB"} {
		_, err := format.ParseBytes(in)
		require.Error(t, err, in)
	}
}

func TestParseBytes_RoundTrip(t *testing.T) {
	for _, n := range []int64{1, 1024, 3 * format.MB, 5 * format.GB} {
		v, err := format.ParseBytes(format.FormatBytes(n))
		require.NoError(t, err)
		require.Equal(t, uint64(n), v)
	}
}
