package ingest

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
)

// DecodeHTML extracts the readable article text from an HTML page.
func DecodeHTML(name string, raw []byte) (string, error) {
	src, err := DecodeText(raw)
	if err != nil {
		return "", err
	}

	pageURL := &url.URL{Scheme: "file", Path: "/" + strings.TrimPrefix(name, "/")}

	article, err := readability.FromReader(bytes.NewReader([]byte(src)), pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	return strings.TrimSpace(article.TextContent), nil
}
