package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/phrazzld/flashnotes/internal/config"
	"github.com/phrazzld/flashnotes/internal/generation"
	"google.golang.org/genai"
)

// Summarizer implements the generation.Model interface using Google's Gemini API.
type Summarizer struct {
	// logger is used for structured logging
	logger *slog.Logger

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string

	retry   generation.RetryPolicy
	timeout time.Duration
}

// NewSummarizer creates a new Summarizer with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and other settings
//
// Returns:
//   - A properly initialized Summarizer or an error if initialization fails
func NewSummarizer(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Summarizer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := generation.LoadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Summarizer{
		logger:         logger.With("component", "gemini"),
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
		retry: generation.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  time.Duration(cfg.RetryDelaySeconds) * time.Second,
		},
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// Summarize returns Gemini's summary of text within bounds.
func (s *Summarizer) Summarize(ctx context.Context, text string, bounds generation.Bounds) (string, error) {
	prompt, err := generation.RenderPrompt(s.promptTemplate, text, bounds)
	if err != nil {
		return "", err
	}

	s.logger.DebugContext(ctx, "Prompt generated successfully",
		"prompt_length", len(prompt),
		"template_name", s.promptTemplate.Name())

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0),
		MaxOutputTokens: int32(bounds.MaxLength),
	}
	if bounds.Sampling {
		genConfig.Temperature = nil
	}

	return generation.Retry(ctx, s.logger, s.retry, func(ctx context.Context) (string, error) {
		return s.call(ctx, prompt, genConfig)
	})
}

// call makes a single GenerateContent request.
func (s *Summarizer) call(ctx context.Context, prompt string, genConfig *genai.GenerateContentConfig) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.DebugContext(ctx, "Making Gemini API call", "model", s.model)

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", classifyError(ctx, err)
	}

	return responseText(resp)
}

// responseText extracts the summary from a response, mapping safety blocks
// and empty candidates to the generation errors.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		text.WriteString(part.Text)
	}

	summary := strings.TrimSpace(text.String())
	if summary == "" {
		return "", fmt.Errorf("%w: response contains no text", generation.ErrInvalidResponse)
	}

	return summary, nil
}

// classifyError maps a client error to the generation error taxonomy.
func classifyError(ctx context.Context, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return generation.ClassifyStatus(apiErr.Code, err)
	}

	if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", generation.ErrSummarizationFailed, ctx.Err())
	}

	// Network and timeout errors are worth another attempt.
	return fmt.Errorf("%w: gemini API call failed: %v", generation.ErrTransientFailure, err)
}
