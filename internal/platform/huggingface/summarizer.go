package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/flashnotes/internal/config"
	"github.com/phrazzld/flashnotes/internal/generation"
)

// DefaultBaseURL is the inference endpoint used when none is configured.
// The model name is appended as a path.
const DefaultBaseURL = "https://router.huggingface.co/hf-inference/models"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 4 << 10

// Summarizer implements generation.Model using the Hugging Face inference API.
type Summarizer struct {
	logger   *slog.Logger
	client   *http.Client
	endpoint string
	apiKey   string
	useGPU   bool
	retry    generation.RetryPolicy
	timeout  time.Duration
}

// NewSummarizer creates a Summarizer for cfg.ModelName. The resolved device
// decides whether accelerator-backed inference is requested.
//
// Parameters:
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration with the model name, optional API key and base URL
//   - device: The resolved compute device
//
// Returns:
//   - A ready Summarizer or an error if the configuration is unusable
func NewSummarizer(logger *slog.Logger, cfg config.LLMConfig, device generation.Device) (*Summarizer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Summarizer{
		logger:   logger.With("component", "huggingface"),
		client:   &http.Client{},
		endpoint: strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(cfg.ModelName, "/"),
		apiKey:   cfg.APIKey,
		useGPU:   device == generation.DeviceAccelerator,
		retry: generation.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  time.Duration(cfg.RetryDelaySeconds) * time.Second,
		},
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// Summarize returns the model's summary of text within bounds.
func (s *Summarizer) Summarize(ctx context.Context, text string, bounds generation.Bounds) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", generation.ErrEmptyInput
	}

	body, err := json.Marshal(inferenceRequest{
		Inputs: text,
		Parameters: inferenceParameters{
			MaxLength: bounds.MaxLength,
			MinLength: bounds.MinLength,
			DoSample:  bounds.Sampling,
		},
		Options: inferenceOptions{
			WaitForModel: true,
			UseGPU:       s.useGPU,
			UseCache:     !bounds.Sampling,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode inference request: %w", err)
	}

	return generation.Retry(ctx, s.logger, s.retry, func(ctx context.Context) (string, error) {
		return s.call(ctx, body)
	})
}

// call performs one inference request.
func (s *Summarizer) call(ctx context.Context, body []byte) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to build request: %v", generation.ErrInvalidConfig, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	s.logger.DebugContext(ctx, "Making inference API call",
		"input_bytes", len(body),
		"use_gpu", s.useGPU)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", generation.ErrSummarizationFailed, ctx.Err())
		}
		return "", fmt.Errorf("%w: inference request failed: %v", generation.ErrTransientFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	var results []summaryResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", generation.ErrInvalidResponse, err)
	}

	if len(results) == 0 {
		return "", fmt.Errorf("%w: no summary in response", generation.ErrInvalidResponse)
	}

	summary := strings.TrimSpace(results[0].SummaryText)
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary in response", generation.ErrInvalidResponse)
	}

	return summary, nil
}

// statusError converts a non-2xx response into a classified error.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	msg := strings.TrimSpace(string(raw))
	var apiErr errorResponse
	if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
		msg = apiErr.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return generation.ClassifyStatus(resp.StatusCode, errors.New(msg))
}
