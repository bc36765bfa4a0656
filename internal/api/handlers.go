package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/JustJay7/precedent/internal/service"
	"github.com/JustJay7/precedent/pkg/logger"
)

const usernameKey = "username"

// Handlers holds all HTTP handlers
type Handlers struct {
	svc    *service.Service
	logger *logger.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(svc *service.Service, logger *logger.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		logger: logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

// analyzeRequest is validated by gin before the service sees it; the service
// repeats the checks after trimming whitespace.
type analyzeRequest struct {
	CrimeCode      string `json:"crime_code" binding:"required"`
	Jurisdiction   string `json:"jurisdiction" binding:"required"`
	AdditionalInfo string `json:"additional_info"`
}

type confirmRequest struct {
	CrimeCode      string `json:"crime_code"`
	Jurisdiction   string `json:"jurisdiction"`
	AdditionalInfo string `json:"additional_info"`
}

type historyQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Health(c.Request.Context()))
}

// Login handles POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, service.BadBody(service.ScopeAuth, err))
		return
	}

	resp, err := h.svc.Login(service.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Verify handles POST /api/auth/verify
func (h *Handlers) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, service.BadBody(service.ScopeAuth, err))
		return
	}

	resp, err := h.svc.Verify(service.TokenRequest{Token: req.Token})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// username on the context.
func (h *Handlers) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := h.svc.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			h.fail(c, err)
			c.Abort()
			return
		}
		c.Set(usernameKey, username)
		c.Next()
	}
}

// Analyze handles POST /api/legal/analyze
func (h *Handlers) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindError(err))
		return
	}

	result, err := h.svc.Analyze(c.Request.Context(), c.GetString(usernameKey), service.AnalyzeRequest{
		CrimeCode:      req.CrimeCode,
		Jurisdiction:   req.Jurisdiction,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Confirm handles POST /api/legal/confirm
func (h *Handlers) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, service.BadBody(service.ScopeLegal, err))
		return
	}

	confirmation, err := h.svc.Confirm(c.Request.Context(), c.GetString(usernameKey), service.AnalyzeRequest{
		CrimeCode:      req.CrimeCode,
		Jurisdiction:   req.Jurisdiction,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, confirmation)
}

// History handles GET /api/legal/history
func (h *Handlers) History(c *gin.Context) {
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(c, service.BadBody(service.ScopeLegal, err))
		return
	}

	resp, err := h.svc.History(c.Request.Context(), c.GetString(usernameKey), q.Limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CacheStats returns cache statistics
func (h *Handlers) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   h.svc.CacheStats(),
	})
}

func (h *Handlers) fail(c *gin.Context, err error) {
	e := service.AsError(err)
	if e.Kind == service.KindInternal {
		h.logger.Error("Request failed",
			"path", c.Request.URL.Path,
			"status", e.Status(),
			"error", e,
		)
	}
	c.JSON(e.Status(), e.Body())
}

// bindError turns a gin binding failure into the same message the service
// uses for missing fields. Decode errors stay generic.
func bindError(err error) error {
	if isValidationError(err) {
		return &service.Error{
			Kind:    service.KindBadRequest,
			Scope:   service.ScopeLegal,
			Message: "Crime code and jurisdiction are required",
			Err:     err,
		}
	}
	return service.BadBody(service.ScopeLegal, err)
}

func isValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
