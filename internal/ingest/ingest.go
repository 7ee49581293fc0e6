package ingest

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/phrazzld/flashnotes/internal/domain"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DetectFormat guesses a document's format from its file name, falling back
// to the declared content type. Unknown inputs are treated as plain text.
func DetectFormat(filename, contentType string) domain.Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return domain.FormatMarkdown
	case ".html", ".htm":
		return domain.FormatHTML
	case ".pdf":
		return domain.FormatPDF
	case ".txt", ".text":
		return domain.FormatText
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return domain.FormatText
	}

	switch mediaType {
	case "text/markdown", "text/x-markdown":
		return domain.FormatMarkdown
	case "text/html", "application/xhtml+xml":
		return domain.FormatHTML
	case "application/pdf":
		return domain.FormatPDF
	default:
		return domain.FormatText
	}
}

// Load decodes raw file content of the given format into a Document.
func Load(name string, format domain.Format, raw []byte) (*domain.Document, error) {
	if format == "" {
		format = domain.FormatText
	}

	var (
		text string
		err  error
	)

	switch format {
	case domain.FormatText:
		text, err = DecodeText(raw)
	case domain.FormatMarkdown:
		text, err = DecodeMarkdown(raw)
	case domain.FormatHTML:
		text, err = DecodeHTML(name, raw)
	case domain.FormatPDF:
		text, err = DecodePDF(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return domain.NewDocument(name, format, text)
}

// DecodeText decodes raw bytes as UTF-8 text. A UTF-8 byte order mark is
// stripped and a UTF-16 byte order mark switches decoding to UTF-16.
func DecodeText(raw []byte) (string, error) {
	decoder := unicode.BOMOverride(encoding.Nop.NewDecoder())

	out, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	if !utf8.Valid(out) {
		return "", ErrInvalidEncoding
	}

	return string(out), nil
}
