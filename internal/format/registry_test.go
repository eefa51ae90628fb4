package format

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// classifyLinear tries every header in order, without the prefix index.
func classifyLinear(headers []FileHeader, data []byte) Extension {
	for _, hdr := range headers {
		if hdr.Match(data) {
			return Extension(hdr.Ext)
		}
	}
	return Unknown
}

// corpus returns random buffers, biased towards starting with a known signature.
func corpus(rng *rand.Rand, n int) [][]byte {
	bufs := make([][]byte, 0, n)
	for range n {
		buf := make([]byte, rng.Intn(24))
		rng.Read(buf)

		if rng.Intn(2) == 0 {
			hdr := DefaultHeaders[rng.Intn(len(DefaultHeaders))]
			sig := hdr.Signatures[rng.Intn(len(hdr.Signatures))]
			buf = append(bytes.Clone(sig), buf...)

			// give RIFF containers a chance to carry a valid form type
			if bytes.Equal(sig, riffSignature) && len(buf) >= 12 {
				copy(buf[8:], [][]byte{[]byte("WAVE"), []byte("WEBP"), []byte("AVI ")}[rng.Intn(3)])
			}
		}
		bufs = append(bufs, buf)
	}
	return bufs
}

func TestRegistry_MatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, buf := range corpus(rng, 20000) {
		require.Equal(t, classifyLinear(DefaultHeaders, buf), Classify(buf), "buffer %x", buf)
	}
}

func TestRegistry_DefaultHeadersAreDisjoint(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, buf := range corpus(rng, 5000) {
		matches := 0
		for _, hdr := range DefaultHeaders {
			if hdr.Match(buf) {
				matches++
			}
		}
		require.LessOrEqual(t, matches, 1, "buffer %x matches more than one header", buf)
	}
}

func TestRegistry_PermutationInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bufs := corpus(rng, 2000)

	expected := make([]Extension, len(bufs))
	for i, buf := range bufs {
		expected[i] = Classify(buf)
	}

	for range 20 {
		headers := append([]FileHeader(nil), DefaultHeaders...)
		rng.Shuffle(len(headers), func(i, j int) {
			headers[i], headers[j] = headers[j], headers[i]
		})

		r := NewFileRegistry(headers...)
		for i, buf := range bufs {
			require.Equal(t, expected[i], r.Classify(buf))
		}
	}
}

func TestRegistry_PriorityOrder(t *testing.T) {
	generic := FileHeader{Ext: "riff", Signatures: [][]byte{[]byte("RIFF")}}
	wave := FileHeader{Ext: "wav", Signatures: [][]byte{[]byte("RIFF")}, Check: riffType("WAVE")}

	data := []byte("RIFF\x00\x00\x00\x00WAVE")

	require.Equal(t, Extension("riff"), NewFileRegistry(generic, wave).Classify(data))
	require.Equal(t, Extension("wav"), NewFileRegistry(wave, generic).Classify(data))

	// a longer signature registered first still wins over a shorter one
	long := FileHeader{Ext: "long", Signatures: [][]byte{[]byte("ABCD")}}
	short := FileHeader{Ext: "short", Signatures: [][]byte{[]byte("AB")}}
	require.Equal(t, Extension("long"), NewFileRegistry(long, short).Classify([]byte("ABCDEF")))
	require.Equal(t, Extension("short"), NewFileRegistry(long, short).Classify([]byte("ABCX")))
	require.Equal(t, Extension("short"), NewFileRegistry(short, long).Classify([]byte("ABCDEF")))
}

func TestRegistry_UnanchoredHeader(t *testing.T) {
	text := FileHeader{
		Ext: "txt",
		Check: func(data []byte) bool {
			return len(data) > 0 && bytes.IndexFunc(data, func(r rune) bool { return r < 0x20 && r != '\n' }) < 0
		},
	}

	r := NewFileRegistry(append(append([]FileHeader(nil), DefaultHeaders...), text)...)
	require.Equal(t, Extension("txt"), r.Classify([]byte("plain text\n")))
	require.Equal(t, Extension("pdf"), r.Classify([]byte("%PDF-1.7")))
	require.Equal(t, Unknown, r.Classify([]byte{0x01, 0x02}))
	require.Equal(t, Unknown, r.Classify(nil))
}

func TestRegistry_Empty(t *testing.T) {
	r := NewFileRegistry()
	require.Equal(t, Unknown, r.Classify([]byte{0xFF, 0xD8}))
	require.Zero(t, r.Signatures())
}

func TestRegistry_Signatures(t *testing.T) {
	// RIFF is shared by three headers
	n := 0
	for _, hdr := range DefaultHeaders {
		n += len(hdr.Signatures)
	}
	require.Equal(t, n-2, defaultRegistry.Signatures())
}

func TestFileHeaders(t *testing.T) {
	all, err := FileHeaders()
	require.NoError(t, err)
	require.Len(t, all, len(DefaultHeaders))

	headers, err := FileHeaders("avi", ".PNG", " wav ")
	require.NoError(t, err)

	exts := make([]string, len(headers))
	for i, hdr := range headers {
		exts[i] = hdr.Ext
	}
	require.Equal(t, []string{"png", "wav", "avi"}, exts)

	r := NewFileRegistry(headers...)
	require.Equal(t, Unknown, r.Classify([]byte{0xFF, 0xD8}))
	require.Equal(t, Extension("png"), r.Classify([]byte("\x89PNG\r\n\x1a\n")))

	_, err = FileHeaders("png", "docx")
	require.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestRegistry_HeadersAreCopied(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF}

	all, err := FileHeaders()
	require.NoError(t, err)
	all[0].Ext = "x"
	require.Equal(t, "jpg", DefaultHeaders[0].Ext)
	require.Equal(t, Extension("jpg"), Classify(jpeg))

	headers := []FileHeader{{Ext: "jpg", Signatures: [][]byte{{0xFF, 0xD8}}}}
	r := NewFileRegistry(headers...)
	headers[0].Ext = "x"
	r.Headers()[0].Ext = "y"
	require.Equal(t, Extension("jpg"), r.Classify(jpeg))

	// the default registry keeps its own copy of the table
	saved := DefaultHeaders[0]
	t.Cleanup(func() { DefaultHeaders[0] = saved })
	DefaultHeaders[0].Ext = "x"
	require.Equal(t, Extension("jpg"), Classify(jpeg))
}

func TestFileHeader_MinLen(t *testing.T) {
	minLens := map[string]int{
		"jpg": 2, "png": 8, "pdf": 4, "gif": 6, "mp3": 2, "exe": 2, "zip": 4, "rar": 8,
		"wav": 4, "ico": 4, "bmp": 2, "tif": 4, "elf": 4, "class": 4, "psd": 4, "iso": 5,
		"midi": 4, "7z": 6, "mkv": 4, "xml": 6, "webp": 4, "rtf": 6, "tar": 8, "avi": 4,
	}

	for _, hdr := range DefaultHeaders {
		require.Equal(t, minLens[hdr.Ext], hdr.MinLen(), hdr.Ext)
	}
}
