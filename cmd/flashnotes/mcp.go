package main

import (
	"os"
	"os/signal"
	"syscall"

	flashmcp "github.com/phrazzld/flashnotes/internal/mcp"
	"github.com/spf13/cobra"
)

// newMCPCmd creates the mcp command
func newMCPCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP server for LLM agents",
		Long: `Start an MCP server for LLM agents.

Serves the generate_flashcards and extract_flashcards tools over stdio.`,
		Example: `  # claude_desktop_config.json
  # {
  #   "mcpServers": {
  #     "flashnotes": {"command": "flashnotes", "args": ["mcp"]}
  #   }
  # }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initializeApp(cmd, opts)
			if err != nil {
				return err
			}

			server, err := flashmcp.NewServer(app.notesService, versionInfo.Version, app.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app.logger.Info("MCP server starting on stdio")
			err = flashmcp.ServeStdio(ctx, server, app.logger)
			app.cleanup()
			return err
		},
	}
}
