package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-ledger/internal/middleware"
)

// logOne runs one request through a router that has the SlogLogger installed
// and returns the single JSON log line it wrote.
func logOne(t *testing.T, status int, target string) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(middleware.NewSlogLogger(logger))
	r.Get("/api/trips/{tripId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("body"))
	})

	req := httptest.NewRequest(http.MethodGet, target, nil)
	// Simulate what chimiddleware.RequestID does: inject a known ID into context.
	ctx := context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, status, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestSlogLogger_logsRequestFields verifies the structured fields of one
// request line, including the matched route pattern.
func TestSlogLogger_logsRequestFields(t *testing.T) {
	entry := logOne(t, http.StatusOK, "/api/trips/5b1c")

	require.Equal(t, "INFO", entry["level"])
	require.Equal(t, "GET", entry["method"])
	require.Equal(t, "/api/trips/5b1c", entry["path"])
	require.Equal(t, "/api/trips/{tripId}", entry["route"])
	require.EqualValues(t, http.StatusOK, entry["status"])
	require.EqualValues(t, 4, entry["bytes"])
	require.Equal(t, "test-req-id", entry["request_id"])
	require.NotNil(t, entry["duration_ms"])
}

func TestSlogLogger_levelFollowsStatus(t *testing.T) {
	require.Equal(t, "WARN", logOne(t, http.StatusNotFound, "/api/trips/x")["level"])
	require.Equal(t, "ERROR", logOne(t, http.StatusInternalServerError, "/api/trips/x")["level"])
}

func TestSlogLogger_unmatchedRoute(t *testing.T) {
	entry := logOne(t, http.StatusNotFound, "/nowhere")

	require.Equal(t, "unmatched", entry["route"])
}
