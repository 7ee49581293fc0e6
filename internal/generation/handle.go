package generation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Loader performs the expensive one-time initialization of a model
// (creating clients, loading templates, checking credentials).
type Loader func(ctx context.Context) (Model, error)

// Info describes a model handle.
type Info struct {
	Provider  string `json:"provider"`
	ModelName string `json:"model_name"`
	Device    Device `json:"device"`
	Loaded    bool   `json:"loaded"`
}

// Handle is a lazily initialized, process-wide model. The first successful
// Get runs the loader; every later call returns the same Model. A failed load
// is not cached, so a later request can try again.
//
// Handle itself implements Model, so it can be injected anywhere a Model is
// expected without forcing initialization at wiring time.
type Handle struct {
	mu     sync.Mutex
	model  Model
	loader Loader
	info   Info
	logger *slog.Logger
}

// NewHandle creates a handle for the named provider and model. device must
// already be resolved.
func NewHandle(provider, modelName string, device Device, loader Loader, logger *slog.Logger) *Handle {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handle{
		loader: loader,
		info: Info{
			Provider:  provider,
			ModelName: modelName,
			Device:    device,
		},
		logger: logger.With("component", "model_handle"),
	}
}

// Get returns the cached model, initializing it on first use.
func (h *Handle) Get(ctx context.Context) (Model, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.model != nil {
		return h.model, nil
	}

	if h.loader == nil {
		return nil, fmt.Errorf("%w: no loader configured", ErrModelUnavailable)
	}

	start := time.Now()
	h.logger.InfoContext(ctx, "loading summarization model",
		"provider", h.info.Provider,
		"model", h.info.ModelName,
		"device", h.info.Device)

	model, err := h.loader(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load summarization model",
			"provider", h.info.Provider,
			"error", err)
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	if model == nil {
		return nil, fmt.Errorf("%w: loader returned nil model", ErrModelUnavailable)
	}

	h.model = model
	h.info.Loaded = true
	h.logger.InfoContext(ctx, "summarization model loaded",
		"provider", h.info.Provider,
		"duration_ms", time.Since(start).Milliseconds())

	return h.model, nil
}

// Summarize implements Model by delegating to the cached model.
func (h *Handle) Summarize(ctx context.Context, text string, bounds Bounds) (string, error) {
	model, err := h.Get(ctx)
	if err != nil {
		return "", err
	}
	return model.Summarize(ctx, text, bounds)
}

// Info returns a snapshot of the handle's description.
func (h *Handle) Info() Info {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.info
}
