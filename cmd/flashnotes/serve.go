package main

import (
	"github.com/phrazzld/flashnotes/internal/config"
	"github.com/spf13/cobra"
)

// newServeCmd creates the serve command
func newServeCmd(opts *globalOptions) *cobra.Command {
	var (
		port    int
		preload bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Routes:
  POST /api/notes       summarize an uploaded or inline document into a deck
  POST /api/flashcards  build flashcards from an existing summary
  GET  /api/model       describe the configured summarization model
  GET  /api/stats       processing counters since startup
  GET  /health          liveness check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initializeApp(cmd, opts)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("port") {
				app.config.Server.Port = port
				if err := config.Validate(app.config); err != nil {
					return err
				}
			}

			if preload {
				if err := app.preloadModel(cmd.Context()); err != nil {
					return err
				}
			}

			return app.startHTTPServer(cmd.Context(), app.setupRouter())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides server.port)")
	cmd.Flags().BoolVar(&preload, "preload", false, "load the model at startup instead of on the first request")

	return cmd
}
