package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging_IncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	mw := NewMiddleware(nil, logger)

	// Chained the way the app wires it: RequestID outside Logging.
	handler := chiMiddleware.RequestID(mw.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	line := buf.String()
	assert.Contains(t, line, "request_id=")
	assert.NotContains(t, line, `request_id=""`, "request id must not be empty")
	assert.Contains(t, line, "status=200")
}
