package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/flashnotes/internal/generation"
	"golang.org/x/sync/errgroup"
)

// Separator joins per-chunk summaries.
const Separator = " "

// Config holds the settings for a Summarizer.
type Config struct {
	// Bounds are passed unchanged to every model call
	Bounds generation.Bounds

	// Concurrency is the number of chunks summarized at the same time.
	// Values below 1 mean strictly sequential processing.
	Concurrency int
}

// Summarizer summarizes the chunks of a document with an injected model.
type Summarizer struct {
	model       generation.Model
	bounds      generation.Bounds
	concurrency int
	logger      *slog.Logger
}

// NewSummarizer creates a Summarizer. The model is typically a
// *generation.Handle so the underlying provider is loaded lazily.
func NewSummarizer(model generation.Model, cfg Config, logger *slog.Logger) (*Summarizer, error) {
	if model == nil {
		return nil, fmt.Errorf("model cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if err := cfg.Bounds.Validate(); err != nil {
		return nil, err
	}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Summarizer{
		model:       model,
		bounds:      cfg.Bounds,
		concurrency: concurrency,
		logger:      logger.With("component", "summarizer"),
	}, nil
}

// SummarizeChunk returns the summary of a single chunk. Blank chunks are
// never sent to the model and summarize to the empty string.
func (s *Summarizer) SummarizeChunk(ctx context.Context, chunk string) (string, error) {
	if strings.TrimSpace(chunk) == "" {
		return "", nil
	}
	return s.model.Summarize(ctx, chunk, s.bounds)
}

// Summarize summarizes every chunk and joins the non-empty results with a
// single space in chunk order. The first failure aborts the whole document.
func (s *Summarizer) Summarize(ctx context.Context, chunks []string) (string, error) {
	start := time.Now()

	summaries := make([]string, len(chunks))
	if s.concurrency == 1 || len(chunks) < 2 {
		for i, chunk := range chunks {
			out, err := s.SummarizeChunk(ctx, chunk)
			if err != nil {
				return "", fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
			}
			summaries[i] = out
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)
		for i, chunk := range chunks {
			g.Go(func() error {
				out, err := s.SummarizeChunk(gctx, chunk)
				if err != nil {
					return fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
				}
				summaries[i] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return "", err
		}
	}

	s.logger.DebugContext(ctx, "document summarized",
		"chunk_count", len(chunks),
		"concurrency", s.concurrency,
		"duration_ms", time.Since(start).Milliseconds())

	kept := summaries[:0]
	for _, summary := range summaries {
		if summary != "" {
			kept = append(kept, summary)
		}
	}
	return strings.Join(kept, Separator), nil
}
