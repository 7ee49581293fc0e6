// Package mocks provides shared test doubles.
//
// MockModel stands in for a summarization provider. It records every call
// (text and bounds) and either returns a fixed summary or error, or runs a
// custom SummarizeFn:
//
//	model := mocks.NewUppercaseModel()
//	summarizer, _ := summarize.NewSummarizer(model, summarize.Config{Bounds: generation.DefaultBounds()}, logger)
//	...
//	assert.Equal(t, 2, model.CallCount())
//
// Constructors such as MockModelThatFails and MockModelWithContentBlocked
// return models preloaded with the generation sentinel errors.
package mocks
