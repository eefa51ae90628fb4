package scan

import (
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/ostafen/reext/internal/format"
)

// Detector classifies file headers with a signature registry and, optionally,
// with the broader matcher set of filetype for content the registry does not know.
type Detector struct {
	registry *format.FileRegistry
	extended bool

	// allowed restricts extended matches when an extension filter is set.
	allowed map[string]bool
}

// NewDetector builds a Detector recognising exts, or every supported
// format when exts is empty.
func NewDetector(exts []string, extended bool) (*Detector, error) {
	headers, err := format.FileHeaders(exts...)
	if err != nil {
		return nil, err
	}

	var allowed map[string]bool
	if len(exts) > 0 {
		allowed = make(map[string]bool, len(exts))
		for _, hdr := range headers {
			allowed[hdr.Ext] = true
		}
	}

	return &Detector{
		registry: format.NewFileRegistry(headers...),
		extended: extended,
		allowed:  allowed,
	}, nil
}

// Detect returns the extension of the content starting with data, or format.Unknown.
func (d *Detector) Detect(data []byte) format.Extension {
	if ext := d.registry.Classify(data); ext.Known() {
		return ext
	}

	if !d.extended {
		return format.Unknown
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == types.Unknown || kind.Extension == "" {
		return format.Unknown
	}

	ext := strings.ToLower(kind.Extension)
	if d.allowed != nil && !d.allowed[ext] {
		return format.Unknown
	}
	return format.Extension(ext)
}

// Extensions lists the extensions of the signature registry, in priority order.
func (d *Detector) Extensions() []string {
	headers := d.registry.Headers()

	exts := make([]string, len(headers))
	for i, hdr := range headers {
		exts[i] = hdr.Ext
	}
	return exts
}

func (d *Detector) Signatures() int {
	return d.registry.Signatures()
}
