package format_test

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/ostafen/reext/internal/format"
	"github.com/stretchr/testify/require"
)

// samples holds, for every supported format, minimal buffers
// recognised as that format.
var samples = []struct {
	ext  format.Extension
	data []byte
}{
	{"jpg", []byte{0xFF, 0xD8}},
	{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	{"pdf", []byte{0x25, 0x50, 0x44, 0x46}},
	{"gif", []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61}},
	{"gif", []byte{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}},
	{"mp3", []byte{0x49, 0x44, 0x33}},
	{"mp3", []byte{0xFF, 0xFB}},
	{"mp3", []byte{0xFF, 0xF3}},
	{"mp3", []byte{0xFF, 0xF2}},
	{"exe", []byte{0x4D, 0x5A}},
	{"zip", []byte{0x50, 0x4B, 0x03, 0x04}},
	{"rar", []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x01, 0x00}},
	{"wav", []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0x00, 0x00, 0x00, 0x57, 0x41, 0x56, 0x45}},
	{"ico", []byte{0x00, 0x00, 0x01, 0x00}},
	{"bmp", []byte{0x42, 0x4D}},
	{"tif", []byte{0x4D, 0x4D, 0x00, 0x2A}},
	{"tif", []byte{0x49, 0x49, 0x2A, 0x00}},
	{"elf", []byte{0x7F, 0x45, 0x4C, 0x46}},
	{"class", []byte{0xCA, 0xFE, 0xBA, 0xBE}},
	{"psd", []byte{0x38, 0x42, 0x50, 0x53}},
	{"iso", []byte{0x43, 0x44, 0x30, 0x30, 0x31}},
	{"midi", []byte{0x4D, 0x54, 0x68, 0x64}},
	{"7z", []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}},
	{"mkv", []byte{0x1A, 0x45, 0xDF, 0xA3}},
	{"xml", []byte{0x3C, 0x3F, 0x78, 0x6D, 0x6C, 0x20}},
	{"webp", []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0x00, 0x00, 0x00, 0x57, 0x45, 0x42, 0x50}},
	{"rtf", []byte{0x7B, 0x5C, 0x72, 0x74, 0x66, 0x31}},
	{"tar", []byte{0x75, 0x73, 0x74, 0x61, 0x72, 0x00, 0x30, 0x30}},
	{"tar", []byte{0x75, 0x73, 0x74, 0x61, 0x72, 0x20, 0x20, 0x00}},
	{"avi", []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0x00, 0x00, 0x00, 0x41, 0x56, 0x49, 0x20}},
}

func TestClassify_Samples(t *testing.T) {
	for _, s := range samples {
		t.Run(fmt.Sprintf("%s_%x", s.ext, s.data), func(t *testing.T) {
			require.Equal(t, s.ext, format.Classify(s.data))

			// trailing content never changes the result
			padded := append(bytes.Clone(s.data), bytes.Repeat([]byte{0xAB}, 64)...)
			require.Equal(t, s.ext, format.Classify(padded))
		})
	}
}

func TestClassify_EveryHeaderHasSample(t *testing.T) {
	covered := map[format.Extension]bool{}
	for _, s := range samples {
		covered[s.ext] = true
	}
	for _, hdr := range format.DefaultHeaders {
		require.True(t, covered[format.Extension(hdr.Ext)], "no sample for %s", hdr.Ext)
	}
}

func TestClassify_TruncatedSamples(t *testing.T) {
	for _, s := range samples {
		for n := 0; n < len(s.data); n++ {
			require.Equal(t, format.Unknown, format.Classify(s.data[:n]),
				"%s truncated to %d bytes", s.ext, n)
		}
	}
}

func TestClassify_ShortBuffers(t *testing.T) {
	// every rule needs at least two bytes
	for b := 0; b < 256; b++ {
		require.Equal(t, format.Unknown, format.Classify([]byte{byte(b)}))
	}
	require.Equal(t, format.Unknown, format.Classify(nil))
	require.Equal(t, format.Unknown, format.Classify([]byte{}))
}

func TestClassify_Riff(t *testing.T) {
	riff := func(tag string) []byte {
		return append([]byte{0x52, 0x49, 0x46, 0x46, 0x24, 0x08, 0x00, 0x00}, tag...)
	}

	require.Equal(t, format.Extension("wav"), format.Classify(riff("WAVE")))
	require.Equal(t, format.Extension("webp"), format.Classify(riff("WEBP")))
	require.Equal(t, format.Extension("avi"), format.Classify(riff("AVI ")))

	require.Equal(t, format.Unknown, format.Classify(riff("AVI")))
	require.Equal(t, format.Unknown, format.Classify(riff("RMID")))
	require.Equal(t, format.Unknown, format.Classify(riff("")))
}

func TestClassify_NearMisses(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"zeros", make([]byte, 16)},
		{"gif88a", []byte("GIF88a")},
		{"gif89b", []byte("GIF89b")},
		{"mp3 sync FFFA", []byte{0xFF, 0xFA, 0x00}},
		{"id", []byte("ID")},
		{"rar4", []byte("Rar!\x1a\x07\x00")},
		{"iso prefix", []byte("CD00")},
		{"xml without space", []byte("<?xml?>")},
		{"rtf version 2", []byte("{\\rtf2")},
		{"ustar at 0 with garbage", []byte("ustar\x00xx")},
		{"tiff mixed endian", []byte{0x4D, 0x4D, 0x2A, 0x00}},
		{"mz lowercase", []byte("mz")},
		{"plain text", []byte("hello, world")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, format.Unknown, format.Classify(tc.data))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	data := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
	first := format.Classify(data)
	for range 100 {
		require.Equal(t, first, format.Classify(data))
	}
}

func TestClassify_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan string, len(samples)*50)

	for i := range 50 {
		for _, s := range samples {
			wg.Add(1)
			go func(ext format.Extension, data []byte) {
				defer wg.Done()

				buf := append(bytes.Clone(data), byte(i))
				if got := format.Classify(buf); got != ext {
					errs <- fmt.Sprintf("expected %s, got %s", ext, got)
				}
			}(s.ext, s.data)
		}
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}

func TestExtension_String(t *testing.T) {
	require.Equal(t, "unknown", format.Unknown.String())
	require.False(t, format.Unknown.Known())
	require.Equal(t, "jpg", format.Extension("jpg").String())
	require.True(t, format.Extension("jpg").Known())
}
