package domain

import (
	"strings"
	"unicode/utf8"
)

// Format identifies how the raw bytes of an uploaded document were encoded
// before they were reduced to plain text.
type Format string

// Supported document formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// IsValid reports whether f is one of the supported formats.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatMarkdown, FormatHTML, FormatPDF:
		return true
	default:
		return false
	}
}

// Document is the plain text a deck is built from. Content is never modified
// after construction.
type Document struct {
	Name    string `json:"name,omitempty"`
	Format  Format `json:"format"`
	Content string `json:"content"`
}

// NewDocument creates a Document from already-decoded UTF-8 text.
// An empty format defaults to FormatText.
func NewDocument(name string, format Format, content string) (*Document, error) {
	if format == "" {
		format = FormatText
	}

	doc := &Document{
		Name:    name,
		Format:  format,
		Content: content,
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return doc, nil
}

// Validate checks the document's format and encoding. Empty content is
// allowed here; whether an empty document may be processed is decided by
// the caller.
func (d *Document) Validate() error {
	if !d.Format.IsValid() {
		return NewValidationError("format", "unsupported document format")
	}

	if !utf8.ValidString(d.Content) {
		return NewValidationError("content", "must be valid UTF-8")
	}

	return nil
}

// IsBlank reports whether the document has no non-whitespace content.
func (d *Document) IsBlank() bool {
	return strings.TrimSpace(d.Content) == ""
}

// Length returns the document length in characters (Unicode code points).
func (d *Document) Length() int {
	return utf8.RuneCountInString(d.Content)
}
