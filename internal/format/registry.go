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

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ostafen/reext/pkg/table"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// FileRegistry resolves a buffer to the first matching header, in the order
// the headers were registered.
type FileRegistry struct {
	headers []FileHeader

	// table maps each signature to the indexes of the headers using it.
	table *table.PrefixTable[[]int]

	// unanchored holds the indexes of headers without signatures,
	// which must be checked against every buffer.
	unanchored []int
}

func NewFileRegistry(headers ...FileHeader) *FileRegistry {
	r := &FileRegistry{
		headers: slices.Clone(headers),
		table:   table.New[[]int](),
	}

	for i, hdr := range headers {
		if len(hdr.Signatures) == 0 {
			r.unanchored = append(r.unanchored, i)
			continue
		}

		for _, sig := range hdr.Signatures {
			idxs, _ := r.table.Get(sig)
			if len(idxs) > 0 && idxs[len(idxs)-1] == i {
				continue
			}
			r.table.Insert(sig, append(idxs, i))
		}
	}
	return r
}

// Headers returns the registered headers in priority order.
func (r *FileRegistry) Headers() []FileHeader {
	return slices.Clone(r.headers)
}

// Signatures returns the number of distinct signatures indexed by the registry.
func (r *FileRegistry) Signatures() int {
	return r.table.Size()
}

// Classify returns the extension of the highest priority header matching data,
// or Unknown if none does.
//
// Only headers having a signature which is a prefix of data are evaluated,
// but the result is the same as trying every header in order.
func (r *FileRegistry) Classify(data []byte) Extension {
	best := len(r.headers)

	try := func(i int) {
		if i < best && r.headers[i].Match(data) {
			best = i
		}
	}

	for _, i := range r.unanchored {
		try(i)
	}

	if r.table.Size() > 0 {
		r.table.Walk(data, func(idxs []int) bool {
			for _, i := range idxs {
				try(i)
			}
			// the first header always wins, no need to look at longer prefixes
			return best == 0
		})
	}

	if best == len(r.headers) {
		return Unknown
	}
	return Extension(r.headers[best].Ext)
}

// FileHeaders returns the default headers for the given extensions,
// keeping their priority order. With no extensions, all the default
// headers are returned.
func FileHeaders(exts ...string) ([]FileHeader, error) {
	if len(exts) == 0 {
		return slices.Clone(DefaultHeaders), nil
	}

	wanted := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = normalizeExt(ext)
		if _, ok := findHeader(ext); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
		}
		wanted[ext] = true
	}

	headers := make([]FileHeader, 0, len(wanted))
	for _, hdr := range DefaultHeaders {
		if wanted[hdr.Ext] {
			headers = append(headers, hdr)
		}
	}
	return headers, nil
}

func findHeader(ext string) (FileHeader, bool) {
	for _, hdr := range DefaultHeaders {
		if hdr.Ext == ext {
			return hdr, true
		}
	}
	return FileHeader{}, false
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
