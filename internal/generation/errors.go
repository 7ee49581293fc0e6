package generation

import "errors"

// Common errors returned by the generation package and its adapters.
var (
	// ErrSummarizationFailed is returned when summarization fails for any general reason
	ErrSummarizationFailed = errors.New("failed to summarize text")

	// ErrInvalidResponse is returned when the model response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from summarization model")

	// ErrContentBlocked is returned when the provider refuses the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during summarization")

	// ErrInvalidConfig is returned when the model configuration is invalid
	ErrInvalidConfig = errors.New("invalid model configuration")

	// ErrModelUnavailable is returned when the model handle cannot be initialized
	ErrModelUnavailable = errors.New("summarization model unavailable")

	// ErrEmptyInput is returned when an adapter is asked to summarize empty text
	ErrEmptyInput = errors.New("text to summarize cannot be empty")
)
