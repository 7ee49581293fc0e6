// Package openai implements generation.Model with OpenAI-compatible chat
// completion endpoints, prompting the chat model to act as an abstractive
// summarizer.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/phrazzld/flashnotes/internal/config"
	"github.com/phrazzld/flashnotes/internal/generation"
	openai "github.com/sashabaranov/go-openai"
)

// deterministicSeed is sent with every non-sampled request so repeated calls
// on the same chunk return the same summary where the backend supports it.
const deterministicSeed = 42

// Summarizer implements generation.Model using the chat completions API.
type Summarizer struct {
	logger         *slog.Logger
	client         *openai.Client
	model          string
	promptTemplate *template.Template
	retry          generation.RetryPolicy
	timeout        time.Duration
}

// NewSummarizer creates a Summarizer from cfg. A custom BaseURL points the
// client at any OpenAI-compatible server.
func NewSummarizer(logger *slog.Logger, cfg config.LLMConfig) (*Summarizer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := generation.LoadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	return &Summarizer{
		logger:         logger.With("component", "openai"),
		client:         openai.NewClientWithConfig(clientConfig),
		model:          cfg.ModelName,
		promptTemplate: promptTemplate,
		retry: generation.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  time.Duration(cfg.RetryDelaySeconds) * time.Second,
		},
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// Summarize returns the chat model's summary of text within bounds.
func (s *Summarizer) Summarize(ctx context.Context, text string, bounds generation.Bounds) (string, error) {
	prompt, err := generation.RenderPrompt(s.promptTemplate, text, bounds)
	if err != nil {
		return "", err
	}

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: bounds.MaxLength,
	}
	if !bounds.Sampling {
		// A zero temperature is dropped by omitempty.
		req.Temperature = math.SmallestNonzeroFloat32
		seed := deterministicSeed
		req.Seed = &seed
	}

	return generation.Retry(ctx, s.logger, s.retry, func(ctx context.Context) (string, error) {
		return s.call(ctx, req)
	})
}

// call performs one chat completion request.
func (s *Summarizer) call(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.DebugContext(ctx, "Making chat completion call", "model", s.model)

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyError(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no completion choices returned", generation.ErrInvalidResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return "", fmt.Errorf("%w: completion stopped by content filter", generation.ErrContentBlocked)
	}
	if choice.Message.Refusal != "" {
		return "", fmt.Errorf("%w: model refused: %s", generation.ErrContentBlocked, choice.Message.Refusal)
	}

	summary := strings.TrimSpace(choice.Message.Content)
	if summary == "" {
		return "", fmt.Errorf("%w: empty completion", generation.ErrInvalidResponse)
	}

	return summary, nil
}

// classifyError maps client errors to the generation error taxonomy.
func classifyError(ctx context.Context, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return generation.ClassifyStatus(apiErr.HTTPStatusCode, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return generation.ClassifyStatus(reqErr.HTTPStatusCode, err)
	}

	if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", generation.ErrSummarizationFailed, ctx.Err())
	}

	return fmt.Errorf("%w: chat completion failed: %v", generation.ErrTransientFailure, err)
}
