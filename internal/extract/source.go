package extract

// SourceKind identifies how a menu arrived.
type SourceKind string

const (
	SourcePDF   SourceKind = "pdf"
	SourceImage SourceKind = "image"
	SourceURL   SourceKind = "url"
	SourceText  SourceKind = "text"
)

// Source is the caller-supplied form of a menu. It is built per request and
// discarded once text extraction finishes; the raw bytes are never persisted.
type Source struct {
	Kind     SourceKind
	Data     []byte // file sources
	MimeType string
	FileName string
	URL      string
	Text     string
}

// ExtractedText is the plain-text result of resolving a Source.
type ExtractedText struct {
	Content          string
	OriginKind       SourceKind
	OriginDescriptor string // file name, URL, or "pasted text"
}
