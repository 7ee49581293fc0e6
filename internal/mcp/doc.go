// Package mcp exposes the notes pipeline as Model Context Protocol tools so
// LLM agents can turn notes into flashcards over stdio.
package mcp
