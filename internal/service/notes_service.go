package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/flashnotes/internal/chunk"
	"github.com/phrazzld/flashnotes/internal/domain"
	"github.com/phrazzld/flashnotes/internal/events"
	"github.com/phrazzld/flashnotes/internal/flashcard"
	"github.com/phrazzld/flashnotes/internal/generation"
)

// ChunkSummarizer summarizes the ordered chunks of one document into a
// single summary. *summarize.Summarizer implements it.
type ChunkSummarizer interface {
	Summarize(ctx context.Context, chunks []string) (string, error)
}

// NotesService turns documents into flashcard decks.
type NotesService interface {
	// Process runs the full pipeline on doc and returns the resulting deck.
	Process(ctx context.Context, doc *domain.Document) (*domain.Deck, error)

	// ExtractFlashcards builds flashcards from an existing summary without
	// calling the model.
	ExtractFlashcards(summary string) []domain.Flashcard
}

// notesServiceImpl implements the NotesService interface
type notesServiceImpl struct {
	summarizer     ChunkSummarizer
	maxChunkLength int
	eventEmitter   events.EventEmitter
	logger         *slog.Logger
}

// NewNotesService creates a new NotesService.
// It returns an error if any of the required dependencies are nil.
// A maxChunkLength below 1 selects chunk.DefaultMaxLength.
func NewNotesService(
	summarizer ChunkSummarizer,
	maxChunkLength int,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (NotesService, error) {
	if summarizer == nil {
		return nil, errors.New("summarizer cannot be nil")
	}
	if eventEmitter == nil {
		return nil, errors.New("eventEmitter cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if maxChunkLength < 1 {
		maxChunkLength = chunk.DefaultMaxLength
	}

	return &notesServiceImpl{
		summarizer:     summarizer,
		maxChunkLength: maxChunkLength,
		eventEmitter:   eventEmitter,
		logger:         logger.With("component", "notes_service"),
	}, nil
}

// Process implements NotesService.
func (s *notesServiceImpl) Process(ctx context.Context, doc *domain.Document) (*domain.Deck, error) {
	start := time.Now()

	deck, stage, err := s.process(ctx, doc)
	if err != nil {
		source := ""
		if doc != nil {
			source = doc.Name
		}
		s.logger.ErrorContext(ctx, "document processing failed",
			"stage", stage,
			"source", source,
			"error", err)
		s.emit(ctx, events.TypeProcessingFailed, events.ProcessingFailedPayload{
			Source: source,
			Stage:  stage,
		})
		return nil, NewProcessingError(stage, err)
	}

	duration := time.Since(start)
	s.logger.InfoContext(ctx, "document processed",
		"deck_id", deck.ID.String(),
		"source", deck.Source,
		"chunk_count", deck.ChunkCount,
		"flashcard_count", len(deck.Flashcards),
		"duration_ms", duration.Milliseconds())
	s.emit(ctx, events.TypeDeckCreated, events.DeckCreatedPayload{
		DeckID:         deck.ID,
		Source:         deck.Source,
		ChunkCount:     deck.ChunkCount,
		FlashcardCount: len(deck.Flashcards),
		DurationMS:     duration.Milliseconds(),
	})

	return deck, nil
}

// process runs the stages in order and reports the stage that failed.
func (s *notesServiceImpl) process(ctx context.Context, doc *domain.Document) (*domain.Deck, string, error) {
	if doc == nil {
		return nil, StageValidate, domain.NewValidationError("document", "cannot be nil")
	}
	if err := doc.Validate(); err != nil {
		return nil, StageValidate, err
	}
	if doc.IsBlank() {
		return nil, StageValidate, ErrEmptyDocument
	}

	chunks := chunk.Split(doc.Content, s.maxChunkLength)
	if len(chunks) == 0 {
		return nil, StageChunk, fmt.Errorf("document produced no chunks")
	}

	s.logger.DebugContext(ctx, "document chunked",
		"source", doc.Name,
		"characters", doc.Length(),
		"chunk_count", len(chunks),
		"max_chunk_length", s.maxChunkLength)

	summary, err := s.summarizer.Summarize(ctx, chunks)
	if err != nil {
		return nil, StageSummarize, err
	}
	if strings.TrimSpace(summary) == "" {
		return nil, StageSummarize, fmt.Errorf("%w: model returned a blank summary", generation.ErrInvalidResponse)
	}

	cards := flashcard.Extract(summary)
	if len(cards) < domain.MinFlashcards {
		return nil, StageExtract, fmt.Errorf("no flashcards extracted from summary")
	}

	deck, err := domain.NewDeck(doc, summary, len(chunks), cards)
	if err != nil {
		return nil, StageAssemble, err
	}

	return deck, "", nil
}

// ExtractFlashcards implements NotesService.
func (s *notesServiceImpl) ExtractFlashcards(summary string) []domain.Flashcard {
	return flashcard.Extract(summary)
}

// emit publishes an event; delivery failures are logged and otherwise ignored.
func (s *notesServiceImpl) emit(ctx context.Context, eventType string, payload any) {
	event, err := events.NewProcessingEvent(eventType, payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create event", "event_type", eventType, "error", err)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit event",
			"event_type", eventType,
			"event_id", event.ID,
			"error", err)
	}
}
