package format

// Extension is a file extension, lowercase and without the leading dot.
type Extension string

// Unknown is returned when no header recognises the content.
const Unknown Extension = ""

// Known reports whether the extension identifies a format.
func (e Extension) Known() bool {
	return e != Unknown
}

func (e Extension) String() string {
	if e == Unknown {
		return "unknown"
	}
	return string(e)
}

var defaultRegistry = NewFileRegistry(DefaultHeaders...)

// Classify determines the extension of a file from its leading bytes using
// the default headers. It never fails: content which cannot be recognised,
// including an empty buffer, yields Unknown.
//
// Classify is safe for concurrent use.
func Classify(data []byte) Extension {
	return defaultRegistry.Classify(data)
}
