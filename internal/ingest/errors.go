package ingest

import "errors"

// Error definitions for the ingest package.
var (
	// ErrUnsupportedFormat is returned when a file's format cannot be handled.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrInvalidEncoding is returned when text content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("document is not valid UTF-8 text")

	// ErrExtractionFailed is returned when text cannot be extracted from a
	// structured document (HTML, PDF).
	ErrExtractionFailed = errors.New("failed to extract text from document")
)
