// Package httpapi exposes the service over plain net/http handlers routed
// with chi.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/JustJay7/precedent/internal/service"
	"github.com/JustJay7/precedent/pkg/logger"
)

type contextKey string

const usernameContextKey contextKey = "username"

type handlers struct {
	svc    *service.Service
	logger *logger.Logger
}

// NewRouter builds the chi router for every API endpoint.
func NewRouter(svc *service.Service, log *logger.Logger, origins []string) http.Handler {
	h := &handlers{svc: svc, logger: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/cache/stats", h.cacheStats)

		r.Post("/auth/login", h.login)
		r.Post("/auth/verify", h.verify)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)
			r.Post("/legal/analyze", h.analyze)
			r.Post("/legal/confirm", h.confirm)
			r.Get("/legal/history", h.history)
		})
	})

	return r
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Health(r.Context()))
}

func (h *handlers) cacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   h.svc.CacheStats(),
	})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, service.BadBody(service.ScopeAuth, err))
		return
	}

	resp, err := h.svc.Login(req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handlers) verify(w http.ResponseWriter, r *http.Request) {
	var req service.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, service.BadBody(service.ScopeAuth, err))
		return
	}

	resp, err := h.svc.Verify(req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handlers) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := h.svc.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			h.respondError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), usernameContextKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func usernameFrom(ctx context.Context) string {
	username, _ := ctx.Value(usernameContextKey).(string)
	return username
}

func (h *handlers) analyze(w http.ResponseWriter, r *http.Request) {
	var req service.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, service.BadBody(service.ScopeLegal, err))
		return
	}

	result, err := h.svc.Analyze(r.Context(), usernameFrom(r.Context()), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *handlers) confirm(w http.ResponseWriter, r *http.Request) {
	var req service.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, service.BadBody(service.ScopeLegal, err))
		return
	}

	confirmation, err := h.svc.Confirm(r.Context(), usernameFrom(r.Context()), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, confirmation)
}

func (h *handlers) history(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.respondError(w, r, service.BadBody(service.ScopeLegal, err))
			return
		}
		limit = n
	}

	resp, err := h.svc.History(r.Context(), usernameFrom(r.Context()), limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	e := service.AsError(err)
	if e.Kind == service.KindInternal {
		h.logger.Error("Request failed",
			"path", r.URL.Path,
			"status", e.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"error", e,
		)
	}
	respondJSON(w, e.Status(), e.Body())
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info("HTTP Request",
				"request_id", middleware.GetReqID(r.Context()),
				"client_ip", r.RemoteAddr,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"latency", time.Since(start).String(),
				"user_agent", r.UserAgent(),
			)
		})
	}
}
