package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashnotes/internal/api/shared"
	"github.com/phrazzld/flashnotes/internal/domain"
	"github.com/phrazzld/flashnotes/internal/events"
	"github.com/phrazzld/flashnotes/internal/generation"
	"github.com/phrazzld/flashnotes/internal/ingest"
	"github.com/phrazzld/flashnotes/internal/platform/logger"
	"github.com/phrazzld/flashnotes/internal/service"
)

// DefaultMaxUploadBytes caps request bodies when no limit is configured.
const DefaultMaxUploadBytes int64 = 5 << 20

// uploadField is the multipart form field that carries the notes file.
const uploadField = "file"

// ModelInfoSource reports the configured model. *generation.Handle
// implements it.
type ModelInfoSource interface {
	Info() generation.Info
}

// StatsSource reports processing counters. *events.Stats implements it.
type StatsSource interface {
	Snapshot() events.Snapshot
}

// NotesHandler handles notes processing and flashcard HTTP requests.
type NotesHandler struct {
	notesService   service.NotesService
	model          ModelInfoSource
	stats          StatsSource
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewNotesHandler creates a new NotesHandler.
// A maxUploadBytes below 1 selects DefaultMaxUploadBytes.
func NewNotesHandler(
	notesService service.NotesService,
	model ModelInfoSource,
	stats StatsSource,
	maxUploadBytes int64,
	logger *slog.Logger,
) *NotesHandler {
	if notesService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("notesService cannot be nil for NotesHandler")
	}
	if model == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("model cannot be nil for NotesHandler")
	}
	if stats == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("stats cannot be nil for NotesHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for NotesHandler")
	}
	if maxUploadBytes < 1 {
		maxUploadBytes = DefaultMaxUploadBytes
	}

	return &NotesHandler{
		notesService:   notesService,
		model:          model,
		stats:          stats,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "notes_handler")),
	}
}

// ProcessNotes handles POST /api/notes requests.
// It accepts either a multipart upload in the "file" field or a JSON body,
// runs the notes pipeline, and returns the resulting deck.
func (h *NotesHandler) ProcessNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	var (
		doc *domain.Document
		err error
	)
	if isMultipart(r) {
		doc, err = h.documentFromUpload(r)
	} else {
		doc, err = h.documentFromJSON(r)
	}
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("processing notes",
		slog.String("source", doc.Name),
		slog.String("format", string(doc.Format)),
		slog.Int("length", doc.Length()))

	deck, err := h.notesService.Process(r.Context(), doc)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to process notes"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("notes processed",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("chunk_count", deck.ChunkCount),
		slog.Int("flashcard_count", len(deck.Flashcards)))
	shared.RespondWithJSON(w, r, http.StatusOK, NewDeckResponse(deck))
}

func (h *NotesHandler) documentFromJSON(r *http.Request) (*domain.Document, error) {
	var req ProcessNotesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return nil, uploadError(err)
	}
	if err := shared.ValidateRequest(&req); err != nil {
		return nil, err
	}

	return ingest.Load(req.Name, domain.Format(req.Format), []byte(req.Text))
}

func (h *NotesHandler) documentFromUpload(r *http.Request) (*domain.Document, error) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return nil, uploadError(err)
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, fmt.Errorf("%w: missing %q upload", shared.ErrEmptyBody, uploadField)
		}
		return nil, uploadError(err)
	}
	defer func() {
		_ = file.Close()
	}()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, uploadError(err)
	}

	format := domain.Format(strings.ToLower(strings.TrimSpace(r.FormValue("format"))))
	if format == "" {
		format = ingest.DetectFormat(header.Filename, header.Header.Get("Content-Type"))
	}

	return ingest.Load(header.Filename, format, raw)
}

// ExtractFlashcards handles POST /api/flashcards requests.
// It builds flashcards from a summary the client already has.
func (h *NotesHandler) ExtractFlashcards(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	var req ExtractFlashcardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		err = uploadError(err)
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}
	if strings.TrimSpace(req.Summary) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid summary: required field")
		return
	}

	cards := h.notesService.ExtractFlashcards(req.Summary)
	shared.RespondWithJSON(w, r, http.StatusOK, FlashcardsResponse{
		Flashcards: flashcardsToResponse(cards),
		Columns:    columnsToResponse(cards),
	})
}

// ModelInfo handles GET /api/model requests.
func (h *NotesHandler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, modelInfoToResponse(h.model.Info()))
}

// Stats handles GET /api/stats requests.
func (h *NotesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, statsToResponse(h.stats.Snapshot()))
}

// Health handles GET /health requests.
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// uploadError normalizes body read failures. Oversized bodies become
// ErrUploadTooLarge; malformed bodies become a bad request.
func uploadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr), strings.Contains(err.Error(), "request body too large"):
		return fmt.Errorf("%w: %w", ErrUploadTooLarge, err)
	case errors.Is(err, shared.ErrEmptyBody):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
}
