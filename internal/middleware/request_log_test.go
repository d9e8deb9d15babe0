package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"vet-clinic-api/internal/platform/logger"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.Options{Format: logger.FormatJSON, Output: &buf})

	var inner logger.Logger
	h := chimw.RequestID(RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = logger.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pet", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotNil(t, inner)
	out := buf.String()
	assert.Contains(t, out, `"path":"/api/pet"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"request_id"`)
	assert.Contains(t, out, `"level":"WARN"`)
}

func TestRequestLogger_KeepsFlusherAndCountsBytes(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.Options{Format: logger.FormatJSON, Output: &buf})

	var flushable bool
	h := RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, flushable = w.(http.Flusher)
		_, _ = w.Write([]byte("hola"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.True(t, flushable)
	assert.Equal(t, http.StatusOK, rec.Code)
	out := buf.String()
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"bytes":4`)
	assert.Contains(t, out, `"level":"INFO"`)
}
