package mocks_test

import (
	"context"
	"testing"

	"github.com/phrazzld/flashnotes/internal/generation"
	"github.com/phrazzld/flashnotes/internal/mocks"
	"github.com/stretchr/testify/assert"
)

func TestMockModel(t *testing.T) {
	t.Parallel()

	t.Run("Default success case", func(t *testing.T) {
		t.Parallel()

		model := mocks.NewMockModelWithSummary("Short summary.")
		out, err := model.Summarize(context.Background(), "long notes", generation.DefaultBounds())

		assert.NoError(t, err, "Should not return an error")
		assert.Equal(t, "Short summary.", out)
		assert.Equal(t, 1, model.CallCount(), "Summarize should be called once")
		assert.Equal(t, "long notes", model.SummarizeCalls.Texts[0], "Should record correct text")
		assert.Equal(t, generation.DefaultBounds(), model.SummarizeCalls.Bounds[0], "Should record bounds")
	})

	t.Run("Error case", func(t *testing.T) {
		t.Parallel()

		model := mocks.MockModelThatFails()
		out, err := model.Summarize(context.Background(), "notes", generation.DefaultBounds())

		assert.ErrorIs(t, err, generation.ErrSummarizationFailed)
		assert.Empty(t, out)
	})

	t.Run("Uppercase model", func(t *testing.T) {
		t.Parallel()

		model := mocks.NewUppercaseModel()
		out, err := model.Summarize(context.Background(), " abc ", generation.DefaultBounds())

		assert.NoError(t, err)
		assert.Equal(t, "ABC", out)
	})

	t.Run("Reset", func(t *testing.T) {
		t.Parallel()

		model := mocks.MockModelWithContentBlocked()
		_, _ = model.Summarize(context.Background(), "x", generation.DefaultBounds())
		model.Reset()

		assert.Equal(t, 0, model.CallCount())
		assert.Empty(t, model.SummarizeCalls.Texts)
	})
}
