package domain

import (
	"errors"
	"testing"
)

func TestNewDocument(t *testing.T) {
	t.Parallel()

	doc, err := NewDocument("notes.txt", "", "Photosynthesis converts light.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if doc.Format != FormatText {
		t.Errorf("Expected default format %s, got %s", FormatText, doc.Format)
	}

	if doc.Name != "notes.txt" {
		t.Errorf("Expected name notes.txt, got %s", doc.Name)
	}

	// Invalid format
	_, err = NewDocument("notes.doc", Format("word"), "text")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for unsupported format, got %v", err)
	}

	// Invalid UTF-8
	_, err = NewDocument("bad.txt", FormatText, string([]byte{0xff, 0xfe, 0xfd}))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for invalid UTF-8, got %v", err)
	}
}

func TestDocumentIsBlank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		blank   bool
	}{
		{"", true},
		{"   \n\t", true},
		{" a ", false},
	}

	for _, tt := range tests {
		doc := Document{Format: FormatText, Content: tt.content}
		if got := doc.IsBlank(); got != tt.blank {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.content, got, tt.blank)
		}
	}
}

func TestDocumentLengthCountsCharacters(t *testing.T) {
	t.Parallel()

	doc := Document{Format: FormatText, Content: "héllo"}
	if got := doc.Length(); got != 5 {
		t.Errorf("Expected 5 characters, got %d", got)
	}
}
