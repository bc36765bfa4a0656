package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustJay7/precedent/internal/auth"
	"github.com/JustJay7/precedent/internal/config"
	"github.com/JustJay7/precedent/internal/service"
	"github.com/JustJay7/precedent/pkg/logger"
)

func testService(t *testing.T) *service.Service {
	t.Helper()
	creds, err := auth.NewCredentials("onebaldegg", "4life")
	require.NoError(t, err)
	return service.New(service.Deps{
		Tokens:      auth.NewTokenService("test-secret", time.Hour),
		Credentials: creds,
	})
}

func TestNewSelectsTransport(t *testing.T) {
	for _, transport := range []string{"gin", "chi"} {
		t.Run(transport, func(t *testing.T) {
			cfg := &config.Config{Transport: transport, LogLevel: "error", CORSOrigins: []string{"*"}}
			srv, err := New(cfg, testService(t), nil, logger.NewNop())
			require.NoError(t, err)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			srv.Handler().ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"status":"healthy"`)
		})
	}
}

func TestNewRejectsUnknownTransport(t *testing.T) {
	cfg := &config.Config{Transport: "grpc"}
	_, err := New(cfg, testService(t), nil, logger.NewNop())
	assert.Error(t, err)
}

func TestGinMiddleware(t *testing.T) {
	cfg := &config.Config{Transport: "gin", LogLevel: "error", CORSOrigins: []string{"http://localhost:3000"}}
	srv, err := New(cfg, testService(t), nil, logger.NewNop())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/api/legal/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
