package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashnotes/internal/api"
	apiMiddleware "github.com/phrazzld/flashnotes/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewAccessLogger(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(
		apiMiddleware.NewTraceMiddleware(app.logger),
	) // Add trace IDs for improved error handling

	notesHandler := api.NewNotesHandler(
		app.notesService,
		app.model,
		app.stats,
		app.config.Server.MaxUploadBytes,
		app.logger,
	)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/notes", notesHandler.ProcessNotes)
		r.Post("/flashcards", notesHandler.ExtractFlashcards)
		r.Get("/model", notesHandler.ModelInfo)
		r.Get("/stats", notesHandler.Stats)
	})

	// Health check endpoint
	r.Get("/health", api.Health)

	return r
}
