package domain

import (
	"time"

	"github.com/google/uuid"
)

// Flashcard count bounds for a deck: one main-idea card plus at most three
// key-point cards.
const (
	MinFlashcards = 1
	MaxFlashcards = 4
)

// Deck is the outcome of processing one document: the summary produced by
// the model and the flashcards extracted from it.
type Deck struct {
	ID         uuid.UUID   `json:"id"`
	Source     string      `json:"source,omitempty"`
	Content    string      `json:"content"`
	Summary    string      `json:"summary"`
	ChunkCount int         `json:"chunk_count"`
	Flashcards []Flashcard `json:"flashcards"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewDeck creates a Deck for the given document, summary, and flashcards.
// It generates a new UUID and sets the creation timestamp.
// Returns an error if validation fails.
func NewDeck(doc *Document, summary string, chunkCount int, cards []Flashcard) (*Deck, error) {
	if doc == nil {
		return nil, NewValidationError("document", "cannot be nil")
	}

	deck := &Deck{
		ID:         uuid.New(),
		Source:     doc.Name,
		Content:    doc.Content,
		Summary:    summary,
		ChunkCount: chunkCount,
		Flashcards: cards,
		CreatedAt:  time.Now().UTC(),
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks the deck invariants.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty")
	}

	if d.ChunkCount < 1 {
		return NewValidationError("chunk_count", "must be at least 1")
	}

	if len(d.Flashcards) < MinFlashcards || len(d.Flashcards) > MaxFlashcards {
		return NewValidationError("flashcards", "must contain between 1 and 4 cards")
	}

	for _, card := range d.Flashcards {
		if err := card.Validate(); err != nil {
			return err
		}
	}

	return nil
}
