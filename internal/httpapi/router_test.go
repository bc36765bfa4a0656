package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustJay7/precedent/internal/auth"
	"github.com/JustJay7/precedent/internal/cache"
	"github.com/JustJay7/precedent/internal/service"
	"github.com/JustJay7/precedent/pkg/logger"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	creds, err := auth.NewCredentials("onebaldegg", "4life")
	require.NoError(t, err)

	svc := service.New(service.Deps{
		Tokens:       auth.NewTokenService("test-secret", time.Hour),
		Credentials:  creds,
		Cache:        cache.NewCache(10, time.Minute),
		Logger:       logger.NewNop(),
		MaxInfoWords: 1000,
	})
	return NewRouter(svc, logger.NewNop(), []string{"http://localhost:3000"})
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "onebaldegg",
		"password": "4life",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	h := setupRouter(t)

	w := do(t, h, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "disconnected", body["database"])
	assert.NotEmpty(t, w.Header().Get("Content-Type"))
}

func TestLoginFlow(t *testing.T) {
	h := setupRouter(t)
	token := login(t, h)

	w := do(t, h, http.MethodPost, "/api/auth/verify", "", map[string]string{"token": token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "onebaldegg", decode(t, w)["username"])

	w = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "onebaldegg",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid credentials", body["message"])

	w = do(t, h, http.MethodPost, "/api/auth/verify", "", map[string]string{"token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", decode(t, w)["message"])
}

func TestMalformedBody(t *testing.T) {
	h := setupRouter(t)

	w := do(t, h, http.MethodPost, "/api/auth/login", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decode(t, w)["message"])

	token := login(t, h)
	w = do(t, h, http.MethodPost, "/api/legal/analyze", token, "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decode(t, w)["error"])
}

func TestLegalRoutesRequireAuth(t *testing.T) {
	h := setupRouter(t)
	req := map[string]string{"crime_code": "VC 23152", "jurisdiction": "CA"}

	for _, path := range []string{"/api/legal/analyze", "/api/legal/confirm"} {
		w := do(t, h, http.MethodPost, path, "", req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "Authorization required", decode(t, w)["error"], path)

		w = do(t, h, http.MethodPost, path, "garbage", req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "Invalid or expired token", decode(t, w)["error"], path)
	}

	w := do(t, h, http.MethodGet, "/api/legal/history", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnalyze(t *testing.T) {
	h := setupRouter(t)
	token := login(t, h)

	w := do(t, h, http.MethodPost, "/api/legal/analyze", token, map[string]string{
		"crime_code":      "VC 23152",
		"jurisdiction":    "Los Angeles County",
		"additional_info": "first offense",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	explanation, ok := body["legal_explanation"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "VC 23152", explanation["code"])
	assert.Equal(t, "Los Angeles County", explanation["jurisdiction"])
	assert.Contains(t, body, "analytics")
	assert.Contains(t, body, "precedents")
	assert.Contains(t, body, "summary")
}

func TestAnalyzeValidation(t *testing.T) {
	h := setupRouter(t)
	token := login(t, h)

	w := do(t, h, http.MethodPost, "/api/legal/analyze", token, map[string]string{"crime_code": "VC 23152"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Crime code and jurisdiction are required", decode(t, w)["error"])

	long := strings.TrimSpace(strings.Repeat("word ", 1001))
	w = do(t, h, http.MethodPost, "/api/legal/analyze", token, map[string]string{
		"crime_code":      "VC 23152",
		"jurisdiction":    "CA",
		"additional_info": long,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Additional information must be 1000 words or less", decode(t, w)["error"])
}

func TestConfirm(t *testing.T) {
	h := setupRouter(t)
	token := login(t, h)

	w := do(t, h, http.MethodPost, "/api/legal/confirm", token, map[string]string{
		"crime_code":   "PC 242",
		"jurisdiction": "CA",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["summary"], "PC 242")
}

func TestHistoryWithoutStore(t *testing.T) {
	h := setupRouter(t)
	token := login(t, h)

	w := do(t, h, http.MethodGet, "/api/legal/history?limit=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/legal/history", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCacheStats(t *testing.T) {
	h := setupRouter(t)

	w := do(t, h, http.MethodGet, "/api/cache/stats", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "stats")
}

func TestCORSPreflight(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/legal/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
