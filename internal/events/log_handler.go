package events

import (
	"context"
	"log/slog"
)

// LogHandler writes one structured log line per processing event.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler. A nil logger selects slog.Default.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogHandler{logger: logger.With("component", "processing_events")}
}

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *ProcessingEvent) error {
	switch event.Type {
	case TypeDeckCreated:
		var p DeckCreatedPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		h.logger.InfoContext(ctx, "deck created",
			slog.String("deck_id", p.DeckID.String()),
			slog.String("source", p.Source),
			slog.Int("chunk_count", p.ChunkCount),
			slog.Int("flashcard_count", p.FlashcardCount),
			slog.Int64("duration_ms", p.DurationMS))
	case TypeProcessingFailed:
		var p ProcessingFailedPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		h.logger.WarnContext(ctx, "processing failed",
			slog.String("source", p.Source),
			slog.String("stage", p.Stage))
	default:
		h.logger.DebugContext(ctx, "unhandled event", slog.String("event_type", event.Type))
	}
	return nil
}
