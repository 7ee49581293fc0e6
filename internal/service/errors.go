package service

import (
	"errors"
	"fmt"
)

// Pipeline stages reported in ProcessingError.
const (
	StageValidate  = "validate"
	StageChunk     = "chunk"
	StageSummarize = "summarize"
	StageExtract   = "extract"
	StageAssemble  = "assemble"
)

// ErrEmptyDocument is returned when a document has no non-whitespace
// content. It is reported before the model is touched.
// API layer should map this to HTTP 400 Bad Request.
var ErrEmptyDocument = errors.New("document is empty")

// ProcessingError wraps a failure of one pipeline stage.
type ProcessingError struct {
	// Stage is the pipeline stage that failed (one of the Stage* constants)
	Stage string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ProcessingError.
func (e *ProcessingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("processing failed at %s stage", e.Stage)
	}
	return fmt.Sprintf("processing failed at %s stage: %v", e.Stage, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError wraps err for stage. It returns nil for a nil error and
// leaves an existing ProcessingError untouched.
func NewProcessingError(stage string, err error) error {
	if err == nil {
		return nil
	}

	var procErr *ProcessingError
	if errors.As(err, &procErr) {
		return err
	}

	return &ProcessingError{Stage: stage, Err: err}
}
