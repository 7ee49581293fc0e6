package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashnotes/internal/config"
	"github.com/phrazzld/flashnotes/internal/events"
	"github.com/phrazzld/flashnotes/internal/generation"
	"github.com/phrazzld/flashnotes/internal/platform/provider"
	"github.com/phrazzld/flashnotes/internal/service"
	"github.com/phrazzld/flashnotes/internal/summarize"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	model  *generation.Handle

	// Event plumbing
	eventEmitter *events.InMemoryEventEmitter
	stats        *events.Stats

	// Service interfaces
	notesService service.NotesService
}

// newApplication wires the pipeline for cfg. The model handle is created
// here but the provider is only loaded on first use.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	handle, err := provider.NewHandle(cfg.LLM, logger, generation.DetectAccelerator)
	if err != nil {
		return nil, fmt.Errorf("failed to configure model: %w", err)
	}
	return newApplicationWithModel(cfg, logger, handle)
}

// newApplicationWithModel wires the pipeline around an existing handle.
func newApplicationWithModel(cfg *config.Config, logger *slog.Logger, handle *generation.Handle) (*application, error) {
	summarizer, err := summarize.NewSummarizer(handle, summarize.Config{
		Bounds:      provider.Bounds(cfg.LLM),
		Concurrency: cfg.Pipeline.Concurrency,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create summarizer: %w", err)
	}

	stats := events.NewStats()
	eventEmitter := events.NewInMemoryEventEmitter(logger)
	eventEmitter.RegisterHandler(stats, events.TypeDeckCreated, events.TypeProcessingFailed)
	eventEmitter.RegisterHandler(events.NewLogHandler(logger))

	notesService, err := service.NewNotesService(summarizer, cfg.Pipeline.MaxChunkLength, eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create notes service: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       logger,
		model:        handle,
		eventEmitter: eventEmitter,
		stats:        stats,
		notesService: notesService,
	}, nil
}

// preloadModel initializes the model now instead of on the first request.
func (app *application) preloadModel(ctx context.Context) error {
	if _, err := app.model.Get(ctx); err != nil {
		return fmt.Errorf("failed to preload model: %w", err)
	}
	return nil
}

// cleanup logs final processing counters. The application holds no
// connections that need closing.
func (app *application) cleanup() {
	snap := app.stats.Snapshot()
	app.logger.Info("processing totals",
		slog.Int64("decks_created", snap.DecksCreated),
		slog.Int64("chunks_summarized", snap.ChunksSummarized),
		slog.Int64("failures", snap.Failures))
}
