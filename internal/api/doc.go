// Package api is the HTTP surface of flashnotes. It decodes uploads and JSON
// requests into documents, hands them to the notes service, and renders
// decks, flashcards, model info, and processing stats as JSON. Errors are
// mapped to status codes and safe messages here; the raw error is only
// logged, redacted.
package api
