package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashnotes/internal/api/shared"
	"github.com/phrazzld/flashnotes/internal/domain"
	"github.com/phrazzld/flashnotes/internal/generation"
	"github.com/phrazzld/flashnotes/internal/ingest"
	"github.com/phrazzld/flashnotes/internal/service"
)

// ErrUploadTooLarge is returned when a request body exceeds the upload limit.
var ErrUploadTooLarge = errors.New("upload exceeds size limit")

// ErrMalformedRequest is returned when a request body cannot be parsed.
var ErrMalformedRequest = errors.New("malformed request")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	// Oversized uploads
	case errors.Is(err, ErrUploadTooLarge),
		errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge

	// Bad input
	case errors.Is(err, service.ErrEmptyDocument),
		errors.Is(err, generation.ErrEmptyInput),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, ingest.ErrInvalidEncoding),
		errors.Is(err, ingest.ErrUnsupportedFormat),
		errors.Is(err, ingest.ErrExtractionFailed),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, ErrMalformedRequest):
		return http.StatusBadRequest

	// Content the model refuses to process
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	// Upstream model failures
	case errors.Is(err, generation.ErrModelUnavailable),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrSummarizationFailed),
		errors.Is(err, generation.ErrInvalidConfig):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, ErrUploadTooLarge), errors.As(err, &maxBytesErr):
		return "The uploaded file is too large"

	case errors.Is(err, service.ErrEmptyDocument), errors.Is(err, generation.ErrEmptyInput):
		return "The document is empty. Please provide some notes to summarize"

	case errors.Is(err, ingest.ErrInvalidEncoding):
		return "The document must be UTF-8 encoded text"

	case errors.Is(err, ingest.ErrUnsupportedFormat):
		return "Unsupported document format"

	case errors.Is(err, ingest.ErrExtractionFailed):
		return "Could not read text from the document"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, ErrMalformedRequest):
		return "Invalid request format"

	case errors.Is(err, domain.ErrValidation):
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
		}
		return "Invalid document"

	case errors.Is(err, generation.ErrContentBlocked):
		return "The summarization model refused to process this content"

	case errors.Is(err, generation.ErrTransientFailure):
		return "The summarization model is temporarily unavailable. Please try again"

	case errors.Is(err, generation.ErrModelUnavailable),
		errors.Is(err, generation.ErrInvalidConfig):
		return "The summarization model is unavailable"

	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrSummarizationFailed):
		return "The summarization model failed to summarize the notes"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
