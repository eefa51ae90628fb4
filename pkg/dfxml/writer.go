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
package dfxml

import (
	"encoding/xml"
	"io"
	"sync"
)

// DFXMLWriter writes a DFXML document to an io.Writer.
// It is safe for concurrent use once the header is written.
type DFXMLWriter struct {
	mu  sync.Mutex
	w   io.Writer
	enc *xml.Encoder
}

// NewDFXMLWriter creates a DFXMLWriter indenting its output with two spaces.
func NewDFXMLWriter(w io.Writer) *DFXMLWriter {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	return &DFXMLWriter{
		w:   w,
		enc: enc,
	}
}

// WriteHeader writes the XML declaration, opens the root <dfxml> element and
// writes the metadata, creator and source elements.
func (w *DFXMLWriter) WriteHeader(hdr DFXMLHeader) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := io.WriteString(w.w, xml.Header); err != nil {
		return err
	}

	start := xml.StartElement{
		Name: xml.Name{Local: "dfxml"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmloutputversion"}, Value: hdr.XmlOutput},
		},
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}

	for _, elem := range []any{hdr.Metadata, hdr.Creator, hdr.Source} {
		if err := w.enc.Encode(elem); err != nil {
			return err
		}
	}
	return nil
}

// WriteFileObject encodes a FileObject as a <fileobject> element.
func (w *DFXMLWriter) WriteFileObject(obj FileObject) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.enc.Encode(obj)
}

// Close writes the closing </dfxml> tag and flushes the encoder.
func (w *DFXMLWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "dfxml"}}); err != nil {
		return err
	}
	return w.enc.Flush()
}
