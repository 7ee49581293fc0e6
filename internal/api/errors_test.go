package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashnotes/internal/api/shared"
	"github.com/phrazzld/flashnotes/internal/domain"
	"github.com/phrazzld/flashnotes/internal/generation"
	"github.com/phrazzld/flashnotes/internal/ingest"
	"github.com/phrazzld/flashnotes/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty document", service.NewProcessingError(service.StageValidate, service.ErrEmptyDocument), http.StatusBadRequest},
		{"empty model input", fmt.Errorf("chunk 2 of 2: %w", generation.ErrEmptyInput), http.StatusBadRequest},
		{"domain validation", domain.NewValidationError("format", "unsupported document format"), http.StatusBadRequest},
		{"invalid encoding", fmt.Errorf("load: %w", ingest.ErrInvalidEncoding), http.StatusBadRequest},
		{"unsupported format", ingest.ErrUnsupportedFormat, http.StatusBadRequest},
		{"extraction failed", ingest.ErrExtractionFailed, http.StatusBadRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest},
		{"malformed request", ErrMalformedRequest, http.StatusBadRequest},
		{"upload too large", ErrUploadTooLarge, http.StatusRequestEntityTooLarge},
		{"max bytes error", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"content blocked", service.NewProcessingError(service.StageSummarize, generation.ErrContentBlocked), http.StatusUnprocessableEntity},
		{"model unavailable", generation.ErrModelUnavailable, http.StatusBadGateway},
		{"transient failure", generation.ErrTransientFailure, http.StatusBadGateway},
		{"invalid response", generation.ErrInvalidResponse, http.StatusBadGateway},
		{"summarization failed", service.NewProcessingError(service.StageSummarize, generation.ErrSummarizationFailed), http.StatusBadGateway},
		{"invalid config", generation.ErrInvalidConfig, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage_DoesNotLeakDetails(t *testing.T) {
	t.Parallel()

	secret := "sk-live-1234567890abcdef at /home/user/notes.txt"

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"unknown", errors.New(secret), "An unexpected error occurred"},
		{"model failure", fmt.Errorf("%w: %s", generation.ErrSummarizationFailed, secret), "The summarization model failed to summarize the notes"},
		{"transient", fmt.Errorf("%w: %s", generation.ErrTransientFailure, secret), "The summarization model is temporarily unavailable. Please try again"},
		{"bad config", fmt.Errorf("%w: %s", generation.ErrInvalidConfig, secret), "The summarization model is unavailable"},
		{"validation", domain.NewValidationError("content", "must be valid UTF-8"), "Invalid content: must be valid UTF-8"},
		{"empty model input", fmt.Errorf("chunk 2 of 2: %w", generation.ErrEmptyInput), "The document is empty. Please provide some notes to summarize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := GetSafeErrorMessage(tt.err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "sk-live")
			assert.NotContains(t, got, "/home/user")
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	v := validator.New()

	err := v.Struct(&ExtractFlashcardsRequest{})
	assert.Equal(t, "Invalid summary: required field", SanitizeValidationError(err))

	err = v.Struct(&ProcessNotesRequest{Format: "docx"})
	assert.Equal(t, "Invalid format: invalid value", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
