package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/phrazzld/flashnotes/internal/domain"
	"github.com/phrazzld/flashnotes/internal/ingest"
	"github.com/phrazzld/flashnotes/internal/redact"
	"github.com/phrazzld/flashnotes/internal/service"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	notes  service.NotesService
	logger *slog.Logger
}

// Flashcard is a flashcard as returned to MCP clients.
type Flashcard struct {
	Index    int    `json:"index"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DeckResult is the JSON body of a successful generate_flashcards call.
type DeckResult struct {
	ID         string      `json:"id"`
	Source     string      `json:"source,omitempty"`
	Summary    string      `json:"summary"`
	ChunkCount int         `json:"chunk_count"`
	Flashcards []Flashcard `json:"flashcards"`
}

// FlashcardsResult is the JSON body of a successful extract_flashcards call.
type FlashcardsResult struct {
	Flashcards []Flashcard `json:"flashcards"`
}

// NewHandlers creates the tool handlers.
func NewHandlers(notes service.NotesService, logger *slog.Logger) (*Handlers, error) {
	if notes == nil {
		return nil, errors.New("notes service cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Handlers{
		notes:  notes,
		logger: logger.With(slog.String("component", "mcp")),
	}, nil
}

// GenerateFlashcards handles the generate_flashcards tool
func (h *Handlers) GenerateFlashcards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	format := domain.Format(strings.ToLower(request.GetString("format", string(domain.FormatText))))
	if format == domain.FormatPDF {
		return mcp.NewToolResultError("pdf is not supported for inline text; use text, markdown or html"), nil
	}
	name := request.GetString("name", "")

	doc, err := ingest.Load(name, format, []byte(text))
	if err != nil {
		return h.toolError("failed to read notes", err), nil
	}

	deck, err := h.notes.Process(ctx, doc)
	if err != nil {
		return h.toolError("failed to generate flashcards", err), nil
	}

	h.logger.Debug("generated flashcards",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("flashcard_count", len(deck.Flashcards)))

	return jsonResult(DeckResult{
		ID:         deck.ID.String(),
		Source:     deck.Source,
		Summary:    deck.Summary,
		ChunkCount: deck.ChunkCount,
		Flashcards: toFlashcards(deck.Flashcards),
	}), nil
}

// ExtractFlashcards handles the extract_flashcards tool
func (h *Handlers) ExtractFlashcards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := request.RequireString("summary")
	if err != nil || strings.TrimSpace(summary) == "" {
		return mcp.NewToolResultError("summary argument is required and must be a non-empty string"), nil
	}

	cards := h.notes.ExtractFlashcards(summary)
	return jsonResult(FlashcardsResult{Flashcards: toFlashcards(cards)}), nil
}

// toolError logs err and reports it to the client as a tool error. The
// message is redacted because MCP clients often echo it to end users.
func (h *Handlers) toolError(message string, err error) *mcp.CallToolResult {
	h.logger.Warn(message, slog.String("error", redact.Error(err)))
	return mcp.NewToolResultError(fmt.Sprintf("%s: %s", message, redact.Error(err)))
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

func toFlashcards(cards []domain.Flashcard) []Flashcard {
	out := make([]Flashcard, 0, len(cards))
	for i, card := range cards {
		out = append(out, Flashcard{Index: i + 1, Question: card.Question, Answer: card.Answer})
	}
	return out
}
