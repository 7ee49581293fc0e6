package generation

import (
	"context"
	"fmt"
)

// Default decoding bounds, in the model's native unit (subword tokens).
const (
	DefaultMaxLength = 130
	DefaultMinLength = 30
)

// Bounds controls the length and decoding mode of a single summary.
type Bounds struct {
	// MaxLength is the upper bound on the summary length
	MaxLength int

	// MinLength is the lower bound on the summary length
	MinLength int

	// Sampling enables stochastic decoding. When false the provider must use
	// deterministic (greedy or beam) decoding.
	Sampling bool
}

// DefaultBounds returns the bounds used when none are configured.
func DefaultBounds() Bounds {
	return Bounds{
		MaxLength: DefaultMaxLength,
		MinLength: DefaultMinLength,
	}
}

// Validate checks that the bounds are usable.
func (b Bounds) Validate() error {
	if b.MaxLength <= 0 {
		return fmt.Errorf("%w: max length must be positive, got %d", ErrInvalidConfig, b.MaxLength)
	}
	if b.MinLength < 0 {
		return fmt.Errorf("%w: min length cannot be negative, got %d", ErrInvalidConfig, b.MinLength)
	}
	if b.MinLength > b.MaxLength {
		return fmt.Errorf("%w: min length %d exceeds max length %d",
			ErrInvalidConfig, b.MinLength, b.MaxLength)
	}
	return nil
}

// Model is the external summarization capability.
// This interface serves as a boundary between the application core and
// the pretrained model providers, following the hexagonal architecture pattern.
type Model interface {
	// Summarize returns exactly one summary string for the given text.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - text: The chunk of text to summarize
	//   - bounds: Length bounds and decoding mode
	//
	// Returns:
	//   - The summary text
	//   - An error if the model call fails (see errors.go for specific types)
	Summarize(ctx context.Context, text string, bounds Bounds) (string, error)
}

// ModelFunc adapts an ordinary function to the Model interface.
type ModelFunc func(ctx context.Context, text string, bounds Bounds) (string, error)

// Summarize calls f(ctx, text, bounds).
func (f ModelFunc) Summarize(ctx context.Context, text string, bounds Bounds) (string, error) {
	return f(ctx, text, bounds)
}
