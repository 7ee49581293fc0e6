package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashnotes/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLogger(t *testing.T) {
	t.Parallel()

	base, buf := logger.NewBufferLogger()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	})

	handler := chimiddleware.RequestID(NewAccessLogger(base)(next))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/notes", nil))

	require.Equal(t, http.StatusCreated, rec.Code)

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/api/notes", entry["path"])
	assert.EqualValues(t, http.StatusCreated, entry["status"])
	assert.EqualValues(t, 5, entry["bytes"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestAccessLoggerRecordsPanics(t *testing.T) {
	t.Parallel()

	base, buf := logger.NewBufferLogger()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	handler := NewAccessLogger(base)(chimiddleware.Recoverer(next))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	entries, err := buf.Entries()
	require.NoError(t, err)

	var msgs []any
	for _, e := range entries {
		msgs = append(msgs, e["msg"])
	}
	assert.Contains(t, msgs, "request panicked")
	assert.Contains(t, msgs, "request completed")
}
