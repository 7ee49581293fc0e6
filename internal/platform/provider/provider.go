// Package provider builds the process-wide model handle for the configured
// summarization backend.
package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashnotes/internal/config"
	"github.com/phrazzld/flashnotes/internal/generation"
	"github.com/phrazzld/flashnotes/internal/platform/anthropic"
	"github.com/phrazzld/flashnotes/internal/platform/gemini"
	"github.com/phrazzld/flashnotes/internal/platform/huggingface"
	"github.com/phrazzld/flashnotes/internal/platform/openai"
)

// Supported provider names (llm.provider).
const (
	HuggingFace = "huggingface"
	Gemini      = "gemini"
	OpenAI      = "openai"
	Anthropic   = "anthropic"
)

// NewHandle resolves the compute device and returns a lazily initialized
// handle for cfg.Provider. No network or file access happens until the
// handle is first used.
func NewHandle(cfg config.LLMConfig, logger *slog.Logger, probe func() bool) (*generation.Handle, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pref, err := generation.ParseDevice(cfg.Device)
	if err != nil {
		return nil, err
	}
	device := generation.ResolveDevice(pref, probe)

	loader, err := newLoader(cfg, logger, device)
	if err != nil {
		return nil, err
	}

	logger.Info("model handle configured",
		"provider", cfg.Provider,
		"model", cfg.ModelName,
		"device_preference", string(pref),
		"device", string(device))

	return generation.NewHandle(cfg.Provider, cfg.ModelName, device, loader, logger), nil
}

// Bounds returns the decoding bounds configured in cfg.
func Bounds(cfg config.LLMConfig) generation.Bounds {
	return generation.Bounds{
		MaxLength: cfg.MaxLength,
		MinLength: cfg.MinLength,
		Sampling:  cfg.Sampling,
	}
}

// newLoader returns the initialization function of the named provider.
func newLoader(cfg config.LLMConfig, logger *slog.Logger, device generation.Device) (generation.Loader, error) {
	switch cfg.Provider {
	case HuggingFace, "":
		return func(ctx context.Context) (generation.Model, error) {
			return huggingface.NewSummarizer(logger, cfg, device)
		}, nil
	case Gemini:
		return func(ctx context.Context) (generation.Model, error) {
			return gemini.NewSummarizer(ctx, logger, cfg)
		}, nil
	case OpenAI:
		return func(ctx context.Context) (generation.Model, error) {
			return openai.NewSummarizer(logger, cfg)
		}, nil
	case Anthropic:
		return func(ctx context.Context) (generation.Model, error) {
			return anthropic.NewSummarizer(logger, cfg)
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}
