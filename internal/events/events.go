package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the notes service.
const (
	// TypeDeckCreated is emitted after a document is turned into a deck
	TypeDeckCreated = "deck.created"

	// TypeProcessingFailed is emitted when any pipeline stage fails
	TypeProcessingFailed = "processing.failed"
)

// ProcessingEvent is a single lifecycle event of the processing pipeline.
type ProcessingEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// DeckCreatedPayload is the payload of a TypeDeckCreated event.
type DeckCreatedPayload struct {
	DeckID         uuid.UUID `json:"deck_id"`
	Source         string    `json:"source,omitempty"`
	ChunkCount     int       `json:"chunk_count"`
	FlashcardCount int       `json:"flashcard_count"`
	DurationMS     int64     `json:"duration_ms"`
}

// ProcessingFailedPayload is the payload of a TypeProcessingFailed event.
type ProcessingFailedPayload struct {
	Source string `json:"source,omitempty"`
	Stage  string `json:"stage"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *ProcessingEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewProcessingEvent creates a new ProcessingEvent with the specified type and payload.
func NewProcessingEvent(eventType string, payload any) (*ProcessingEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &ProcessingEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *ProcessingEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *ProcessingEvent) error
}
