package api

import (
	"time"

	"github.com/phrazzld/flashnotes/internal/domain"
	"github.com/phrazzld/flashnotes/internal/events"
	"github.com/phrazzld/flashnotes/internal/flashcard"
	"github.com/phrazzld/flashnotes/internal/generation"
)

// ProcessNotesRequest defines the JSON payload for POST /api/notes.
// Multipart uploads carry the same information in the "file" part.
type ProcessNotesRequest struct {
	Text   string `json:"text"`
	Format string `json:"format" validate:"omitempty,oneof=text markdown html"`
	Name   string `json:"name"   validate:"max=255"`
}

// ExtractFlashcardsRequest defines the payload for POST /api/flashcards.
type ExtractFlashcardsRequest struct {
	Summary string `json:"summary" validate:"required"`
}

// FlashcardResponse is a single flashcard as rendered to clients.
type FlashcardResponse struct {
	// Index is the card's 1-based position in the deck
	Index    int    `json:"index"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ColumnsResponse lays the flashcards out in two columns: even positions on
// the left and odd positions on the right.
type ColumnsResponse struct {
	Left  []FlashcardResponse `json:"left"`
	Right []FlashcardResponse `json:"right"`
}

// FlashcardsResponse is returned by POST /api/flashcards.
type FlashcardsResponse struct {
	Flashcards []FlashcardResponse `json:"flashcards"`
	Columns    ColumnsResponse     `json:"columns"`
}

// DeckResponse is returned by POST /api/notes.
type DeckResponse struct {
	ID         string              `json:"id"`
	Source     string              `json:"source,omitempty"`
	Content    string              `json:"content"`
	Summary    string              `json:"summary"`
	ChunkCount int                 `json:"chunk_count"`
	Flashcards []FlashcardResponse `json:"flashcards"`
	Columns    ColumnsResponse     `json:"columns"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ModelInfoResponse describes the configured summarization model.
type ModelInfoResponse struct {
	Provider  string `json:"provider"`
	ModelName string `json:"model_name"`
	Device    string `json:"device"`
	Loaded    bool   `json:"loaded"`
}

// StatsResponse reports processing counters since the server started.
type StatsResponse struct {
	DecksCreated      int64            `json:"decks_created"`
	ChunksSummarized  int64            `json:"chunks_summarized"`
	FlashcardsCreated int64            `json:"flashcards_created"`
	Failures          int64            `json:"failures"`
	FailuresByStage   map[string]int64 `json:"failures_by_stage"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func flashcardsToResponse(cards []domain.Flashcard) []FlashcardResponse {
	out := make([]FlashcardResponse, 0, len(cards))
	for i, card := range cards {
		out = append(out, FlashcardResponse{Index: i + 1, Question: card.Question, Answer: card.Answer})
	}
	return out
}

func columnsToResponse(cards []domain.Flashcard) ColumnsResponse {
	left, right := flashcard.Columns(cards)
	resp := ColumnsResponse{
		Left:  make([]FlashcardResponse, 0, len(left)),
		Right: make([]FlashcardResponse, 0, len(right)),
	}
	// Indexes refer to the card's position in the full deck.
	for i, card := range left {
		resp.Left = append(resp.Left, FlashcardResponse{Index: 2*i + 1, Question: card.Question, Answer: card.Answer})
	}
	for i, card := range right {
		resp.Right = append(resp.Right, FlashcardResponse{Index: 2*i + 2, Question: card.Question, Answer: card.Answer})
	}
	return resp
}

// NewDeckResponse renders a deck for clients.
func NewDeckResponse(deck *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:         deck.ID.String(),
		Source:     deck.Source,
		Content:    deck.Content,
		Summary:    deck.Summary,
		ChunkCount: deck.ChunkCount,
		Flashcards: flashcardsToResponse(deck.Flashcards),
		Columns:    columnsToResponse(deck.Flashcards),
		CreatedAt:  deck.CreatedAt,
	}
}

func modelInfoToResponse(info generation.Info) ModelInfoResponse {
	return ModelInfoResponse{
		Provider:  info.Provider,
		ModelName: info.ModelName,
		Device:    string(info.Device),
		Loaded:    info.Loaded,
	}
}

func statsToResponse(snap events.Snapshot) StatsResponse {
	return StatsResponse(snap)
}
