// Package service contains the application-level use cases. NotesService
// drives the processing pipeline for one request: it validates the document,
// splits it into chunks, summarizes the chunks, extracts flashcards from the
// summary, and assembles the resulting deck.
//
// Every stage failure is returned as a *ProcessingError naming the stage, so
// each outer surface (HTTP API, CLI, MCP tools) can present it in one place.
// The service never returns partial results.
package service
