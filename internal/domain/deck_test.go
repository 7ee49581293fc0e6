package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	doc := &Document{Name: "bio.txt", Format: FormatText, Content: "Cells divide."}
	cards := []Flashcard{
		{Question: "What is the main idea of the notes?", Answer: "Cells divide."},
		{Question: "What is key point 1 from the notes?", Answer: "Cells divide."},
	}

	deck, err := NewDeck(doc, "Cells divide.", 1, cards)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if deck.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if deck.Source != "bio.txt" {
		t.Errorf("Expected source bio.txt, got %s", deck.Source)
	}

	if deck.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}
}

func TestDeckValidate(t *testing.T) {
	t.Parallel()

	mainIdea := Flashcard{Question: "What is the main idea of the notes?", Answer: "x"}
	doc := &Document{Format: FormatText, Content: "x"}

	tests := []struct {
		name       string
		doc        *Document
		chunkCount int
		cards      []Flashcard
		wantErr    bool
	}{
		{"valid single card", doc, 1, []Flashcard{mainIdea}, false},
		{"nil document", nil, 1, []Flashcard{mainIdea}, true},
		{"no chunks", doc, 0, []Flashcard{mainIdea}, true},
		{"no cards", doc, 1, nil, true},
		{"too many cards", doc, 1, []Flashcard{mainIdea, mainIdea, mainIdea, mainIdea, mainIdea}, true},
		{"card without question", doc, 1, []Flashcard{{Answer: "x"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDeck(tt.doc, "x", tt.chunkCount, tt.cards)
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("Expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}
