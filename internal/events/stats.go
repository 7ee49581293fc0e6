package events

import (
	"context"
	"fmt"
	"sync"
)

// Snapshot is a point-in-time copy of the processing counters.
type Snapshot struct {
	DecksCreated      int64            `json:"decks_created"`
	ChunksSummarized  int64            `json:"chunks_summarized"`
	FlashcardsCreated int64            `json:"flashcards_created"`
	Failures          int64            `json:"failures"`
	FailuresByStage   map[string]int64 `json:"failures_by_stage"`
}

// Stats aggregates processing events into counters.
type Stats struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewStats creates an empty Stats handler.
func NewStats() *Stats {
	return &Stats{snap: Snapshot{FailuresByStage: make(map[string]int64)}}
}

// HandleEvent implements EventHandler.
func (s *Stats) HandleEvent(_ context.Context, event *ProcessingEvent) error {
	switch event.Type {
	case TypeDeckCreated:
		var p DeckCreatedPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return fmt.Errorf("invalid %s payload: %w", event.Type, err)
		}
		s.mu.Lock()
		s.snap.DecksCreated++
		s.snap.ChunksSummarized += int64(p.ChunkCount)
		s.snap.FlashcardsCreated += int64(p.FlashcardCount)
		s.mu.Unlock()
	case TypeProcessingFailed:
		var p ProcessingFailedPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return fmt.Errorf("invalid %s payload: %w", event.Type, err)
		}
		s.mu.Lock()
		s.snap.Failures++
		s.snap.FailuresByStage[p.Stage]++
		s.mu.Unlock()
	}
	return nil
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snap
	snap.FailuresByStage = make(map[string]int64, len(s.snap.FailuresByStage))
	for k, v := range s.snap.FailuresByStage {
		snap.FailuresByStage[k] = v
	}
	return snap
}
