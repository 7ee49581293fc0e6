package mcp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/phrazzld/flashnotes/internal/service"
)

// ServerName is the implementation name reported to MCP clients.
const ServerName = "flashnotes"

// Tool names.
const (
	ToolGenerateFlashcards = "generate_flashcards"
	ToolExtractFlashcards  = "extract_flashcards"
)

// NewServer creates an MCP server with all flashnotes tools registered.
func NewServer(notes service.NotesService, version string, logger *slog.Logger) (*mcpserver.MCPServer, error) {
	server := mcpserver.NewMCPServer(ServerName, version, mcpserver.WithToolCapabilities(false))
	if _, err := RegisterTools(server, notes, logger); err != nil {
		return nil, err
	}
	return server, nil
}

// RegisterTools registers the flashcard tools with the server.
func RegisterTools(server *mcpserver.MCPServer, notes service.NotesService, logger *slog.Logger) (*Handlers, error) {
	if server == nil {
		return nil, errors.New("server cannot be nil")
	}
	handlers, err := NewHandlers(notes, logger)
	if err != nil {
		return nil, err
	}

	// 1. generate_flashcards - run the whole pipeline on a document
	server.AddTool(mcp.Tool{
		Name: ToolGenerateFlashcards,
		Description: "Summarize study notes and turn the summary into up to four flashcards. " +
			"The first card asks for the main idea; the rest cover key points.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "The notes to summarize",
				},
				"format": map[string]any{
					"type":        "string",
					"description": "How the text is written (default: text)",
					"enum":        []string{"text", "markdown", "html"},
				},
				"name": map[string]any{
					"type":        "string",
					"description": "Optional source name, such as a file name",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.GenerateFlashcards)

	// 2. extract_flashcards - build cards from an existing summary
	server.AddTool(mcp.Tool{
		Name:        ToolExtractFlashcards,
		Description: "Build flashcards from an existing summary without calling the summarization model.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"summary": map[string]any{
					"type":        "string",
					"description": "The summary to split into flashcards",
				},
			},
			Required: []string{"summary"},
		},
	}, handlers.ExtractFlashcards)

	return handlers, nil
}

// ServeStdio serves MCP requests on stdin/stdout until ctx is canceled or
// the client disconnects.
func ServeStdio(ctx context.Context, server *mcpserver.MCPServer, logger *slog.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping MCP server")
		return nil
	case err := <-serverErr:
		return err
	}
}
