// Package anthropic implements generation.Model with Anthropic's Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/phrazzld/flashnotes/internal/config"
	"github.com/phrazzld/flashnotes/internal/generation"
)

// Summarizer implements generation.Model using Claude models.
type Summarizer struct {
	logger         *slog.Logger
	client         anthropicclient.Client
	model          string
	promptTemplate *template.Template
	retry          generation.RetryPolicy
	timeout        time.Duration
}

// NewSummarizer creates a Summarizer from cfg. Retries are handled by
// generation.Retry, so the SDK's own retries are disabled.
func NewSummarizer(logger *slog.Logger, cfg config.LLMConfig) (*Summarizer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: Anthropic API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := generation.LoadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(cfg.APIKey),
		anthropicoption.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}

	return &Summarizer{
		logger:         logger.With("component", "anthropic"),
		client:         anthropicclient.NewClient(opts...),
		model:          cfg.ModelName,
		promptTemplate: promptTemplate,
		retry: generation.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  time.Duration(cfg.RetryDelaySeconds) * time.Second,
		},
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// Summarize returns Claude's summary of text within bounds.
func (s *Summarizer) Summarize(ctx context.Context, text string, bounds generation.Bounds) (string, error) {
	prompt, err := generation.RenderPrompt(s.promptTemplate, text, bounds)
	if err != nil {
		return "", err
	}

	params := anthropicclient.MessageNewParams{
		Model:     anthropicclient.Model(s.model),
		MaxTokens: int64(bounds.MaxLength),
		Messages: []anthropicclient.MessageParam{
			anthropicclient.NewUserMessage(anthropicclient.NewTextBlock(prompt)),
		},
	}
	if !bounds.Sampling {
		params.Temperature = anthropicclient.Float(0)
	}

	return generation.Retry(ctx, s.logger, s.retry, func(ctx context.Context) (string, error) {
		return s.call(ctx, params)
	})
}

// call sends one Messages request.
func (s *Summarizer) call(ctx context.Context, params anthropicclient.MessageNewParams) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.DebugContext(ctx, "Making messages API call", "model", s.model)

	msg, err := s.client.Messages.New(ctx, params)
	if err != nil {
		return "", classifyError(ctx, err)
	}

	if msg.StopReason == anthropicclient.StopReasonRefusal {
		return "", fmt.Errorf("%w: model refused to summarize", generation.ErrContentBlocked)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	summary := strings.TrimSpace(text.String())
	if summary == "" {
		return "", fmt.Errorf("%w: response contains no text", generation.ErrInvalidResponse)
	}

	return summary, nil
}

// classifyError maps SDK errors to the generation error taxonomy.
func classifyError(ctx context.Context, err error) error {
	var apiErr *anthropicclient.Error
	if errors.As(err, &apiErr) {
		return generation.ClassifyStatus(apiErr.StatusCode, err)
	}

	if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", generation.ErrSummarizationFailed, ctx.Err())
	}

	return fmt.Errorf("%w: messages API call failed: %v", generation.ErrTransientFailure, err)
}
