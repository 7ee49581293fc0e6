package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/phrazzld/flashnotes/internal/generation"
)

// MockModel implements generation.Model for testing
type MockModel struct {
	// SummarizeFn allows test cases to mock the Summarize behavior
	SummarizeFn func(ctx context.Context, text string, bounds generation.Bounds) (string, error)

	// Default response values
	Summary string
	Err     error

	// Call tracking for verification
	SummarizeCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Summarize was called
		Count int

		// Texts contains all texts passed to Summarize calls
		Texts []string

		// Bounds contains all bounds passed to Summarize calls
		Bounds []generation.Bounds
	}
}

// Summarize implements the generation.Model interface
func (m *MockModel) Summarize(
	ctx context.Context,
	text string,
	bounds generation.Bounds,
) (string, error) {
	// Track call details for verification
	m.SummarizeCalls.mu.Lock()
	m.SummarizeCalls.Count++
	m.SummarizeCalls.Texts = append(m.SummarizeCalls.Texts, text)
	m.SummarizeCalls.Bounds = append(m.SummarizeCalls.Bounds, bounds)
	m.SummarizeCalls.mu.Unlock()

	// Use custom function if provided
	if m.SummarizeFn != nil {
		return m.SummarizeFn(ctx, text, bounds)
	}

	// Return default values
	return m.Summary, m.Err
}

// CallCount returns the number of Summarize calls so far
func (m *MockModel) CallCount() int {
	m.SummarizeCalls.mu.Lock()
	defer m.SummarizeCalls.mu.Unlock()
	return m.SummarizeCalls.Count
}

// NewMockModelWithSummary creates a MockModel that always returns the given summary
func NewMockModelWithSummary(summary string) *MockModel {
	return &MockModel{
		Summary: summary,
	}
}

// NewMockModelWithError creates a MockModel that returns the specified error
func NewMockModelWithError(err error) *MockModel {
	return &MockModel{
		Err: err,
	}
}

// NewUppercaseModel creates a deterministic MockModel whose summary of a
// chunk is the trimmed chunk in upper case. Useful for checking chunk order.
// Like the real adapters it rejects blank text with generation.ErrEmptyInput.
func NewUppercaseModel() *MockModel {
	return &MockModel{
		SummarizeFn: func(ctx context.Context, text string, bounds generation.Bounds) (string, error) {
			if strings.TrimSpace(text) == "" {
				return "", generation.ErrEmptyInput
			}
			return strings.ToUpper(strings.TrimSpace(text)), nil
		},
	}
}

// MockModelThatFails creates a MockModel that simulates a summarization failure
func MockModelThatFails() *MockModel {
	return &MockModel{
		Err: generation.ErrSummarizationFailed,
	}
}

// MockModelWithTransientFailure creates a MockModel that simulates a transient failure
func MockModelWithTransientFailure() *MockModel {
	return &MockModel{
		Err: generation.ErrTransientFailure,
	}
}

// MockModelWithContentBlocked creates a MockModel that simulates content being blocked
func MockModelWithContentBlocked() *MockModel {
	return &MockModel{
		Err: generation.ErrContentBlocked,
	}
}

// Reset resets the call tracking state
func (m *MockModel) Reset() {
	m.SummarizeCalls.mu.Lock()
	defer m.SummarizeCalls.mu.Unlock()

	m.SummarizeCalls.Count = 0
	m.SummarizeCalls.Texts = nil
	m.SummarizeCalls.Bounds = nil
}
