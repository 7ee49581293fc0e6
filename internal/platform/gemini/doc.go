// Package gemini provides an implementation of the generation.Model interface
// that uses Google's Gemini API to summarize chunks of notes.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's summarization pipeline to Google's external
// Gemini AI service without exposing the details of the service to the core
// application.
//
// Key components:
//
// 1. Summarizer:
//   - Implements the generation.Model interface
//   - Renders the configured prompt template with the chunk and length bounds
//   - Uses temperature 0 unless sampling is enabled
//
// 2. Error Handling:
//   - Retries transient API errors with exponential backoff (generation.Retry)
//   - Maps safety blocks to generation.ErrContentBlocked
//   - Maps malformed or empty responses to generation.ErrInvalidResponse
//
// The package depends on the google.golang.org/genai client library for
// communicating with the Gemini API.
package gemini
