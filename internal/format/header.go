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
package format

import "bytes"

// FileHeader describes how a file format is recognised from its leading bytes.
type FileHeader struct {
	Ext         string // File extension, e.g., "jpg", "wav"
	Description string
	// Signatures are the magic prefixes of the format. A buffer can only
	// match if one of them is a prefix of it.
	Signatures [][]byte
	// Check runs extra fixed-offset tests once a signature has matched.
	// It must not assume anything about the buffer length.
	Check func(data []byte) bool
}

// Match reports whether data is recognised by the header.
func (hdr *FileHeader) Match(data []byte) bool {
	if len(hdr.Signatures) > 0 && !hasAnyPrefix(data, hdr.Signatures) {
		return false
	}
	return hdr.Check == nil || hdr.Check(data)
}

// MinLen returns the number of bytes needed to recognise the shortest
// variant of the format.
func (hdr *FileHeader) MinLen() int {
	n := 0
	for i, sig := range hdr.Signatures {
		if i == 0 || len(sig) < n {
			n = len(sig)
		}
	}
	return n
}

func hasAnyPrefix(data []byte, sigs [][]byte) bool {
	for _, sig := range sigs {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// hasAt reports whether data contains sig starting at offset off.
func hasAt(data []byte, off int, sig []byte) bool {
	return len(data) >= off+len(sig) && bytes.Equal(data[off:off+len(sig)], sig)
}

// riffType returns a check matching RIFF containers whose form type,
// stored at offset 8, equals typ.
func riffType(typ string) func([]byte) bool {
	return func(data []byte) bool {
		return hasAt(data, 8, []byte(typ))
	}
}

var riffSignature = []byte("RIFF")

// DefaultHeaders lists the supported formats in priority order: the first
// header matching a buffer determines its extension.
var DefaultHeaders = []FileHeader{
	{
		Ext:         "jpg",
		Description: "JPEG image",
		Signatures:  [][]byte{{0xFF, 0xD8}},
	},
	{
		Ext:         "png",
		Description: "Portable Network Graphics",
		Signatures:  [][]byte{{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	},
	{
		Ext:         "pdf",
		Description: "PDF document",
		Signatures:  [][]byte{[]byte("%PDF")},
	},
	{
		Ext:         "gif",
		Description: "GIF image",
		Signatures: [][]byte{
			[]byte("GIF87a"),
			[]byte("GIF89a"),
		},
	},
	{
		Ext:         "mp3",
		Description: "MPEG-1 Audio Layer III",
		Signatures: [][]byte{
			[]byte("ID3"),
			{0xFF, 0xFB},
			{0xFF, 0xF3},
			{0xFF, 0xF2},
		},
	},
	{
		Ext:         "exe",
		Description: "DOS/Windows executable",
		Signatures:  [][]byte{[]byte("MZ")},
	},
	{
		Ext:         "zip",
		Description: "ZIP archive",
		Signatures:  [][]byte{{0x50, 0x4B, 0x03, 0x04}},
	},
	{
		Ext:         "rar",
		Description: "RAR archive (v5)",
		Signatures:  [][]byte{{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x01, 0x00}},
	},
	{
		Ext:         "wav",
		Description: "RIFF WAVE audio",
		Signatures:  [][]byte{riffSignature},
		Check:       riffType("WAVE"),
	},
	{
		Ext:         "ico",
		Description: "Windows icon",
		Signatures:  [][]byte{{0x00, 0x00, 0x01, 0x00}},
	},
	{
		Ext:         "bmp",
		Description: "Bitmap image",
		Signatures:  [][]byte{[]byte("BM")},
	},
	{
		Ext:         "tif",
		Description: "TIFF image",
		Signatures: [][]byte{
			{0x4D, 0x4D, 0x00, 0x2A}, // big endian
			{0x49, 0x49, 0x2A, 0x00}, // little endian
		},
	},
	{
		Ext:         "elf",
		Description: "ELF executable",
		Signatures:  [][]byte{{0x7F, 'E', 'L', 'F'}},
	},
	{
		Ext:         "class",
		Description: "Java class file",
		Signatures:  [][]byte{{0xCA, 0xFE, 0xBA, 0xBE}},
	},
	{
		Ext:         "psd",
		Description: "Adobe Photoshop document",
		Signatures:  [][]byte{[]byte("8BPS")},
	},
	{
		Ext:         "iso",
		Description: "ISO 9660 image",
		Signatures:  [][]byte{[]byte("CD001")},
	},
	{
		Ext:         "midi",
		Description: "MIDI audio",
		Signatures:  [][]byte{[]byte("MThd")},
	},
	{
		Ext:         "7z",
		Description: "7-Zip archive",
		Signatures:  [][]byte{{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}},
	},
	{
		Ext:         "mkv",
		Description: "Matroska video",
		Signatures:  [][]byte{{0x1A, 0x45, 0xDF, 0xA3}},
	},
	{
		Ext:         "xml",
		Description: "XML document",
		Signatures:  [][]byte{[]byte("<?xml ")},
	},
	{
		Ext:         "webp",
		Description: "WebP image",
		Signatures:  [][]byte{riffSignature},
		Check:       riffType("WEBP"),
	},
	{
		Ext:         "rtf",
		Description: "Rich Text Format",
		Signatures:  [][]byte{[]byte("{\\rtf1")},
	},
	{
		Ext:         "tar",
		Description: "Tar archive",
		Signatures: [][]byte{
			[]byte("ustar\x0000"), // POSIX
			[]byte("ustar  \x00"), // GNU
		},
	},
	{
		Ext:         "avi",
		Description: "RIFF AVI video",
		Signatures:  [][]byte{riffSignature},
		Check:       riffType("AVI "),
	},
}
