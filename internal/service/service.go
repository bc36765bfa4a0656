// Package service implements the request handling shared by every HTTP
// transport: authentication gates, input validation, orchestration, the
// best-effort analysis log and response shaping.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JustJay7/precedent/internal/auth"
	"github.com/JustJay7/precedent/internal/cache"
	"github.com/JustJay7/precedent/internal/database"
	"github.com/JustJay7/precedent/internal/legal"
	"github.com/JustJay7/precedent/pkg/logger"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 50
)

// Deps are the process-wide collaborators, built once at startup. Cache and
// Store may be nil.
type Deps struct {
	Tokens       *auth.TokenService
	Credentials  *auth.Credentials
	Orchestrator *legal.Orchestrator
	Cache        cache.Cache
	Store        database.Store
	Logger       *logger.Logger
	MaxInfoWords int
	StoreTimeout time.Duration
	Now          func() time.Time
}

// Service is safe for concurrent use; it holds no per-request state.
type Service struct {
	tokens       *auth.TokenService
	credentials  *auth.Credentials
	orchestrator *legal.Orchestrator
	cache        cache.Cache
	store        database.Store
	logger       *logger.Logger
	maxInfoWords int
	storeTimeout time.Duration
	now          func() time.Time
}

func New(d Deps) *Service {
	s := &Service{
		tokens:       d.Tokens,
		credentials:  d.Credentials,
		orchestrator: d.Orchestrator,
		cache:        d.Cache,
		store:        d.Store,
		logger:       d.Logger,
		maxInfoWords: d.MaxInfoWords,
		storeTimeout: d.StoreTimeout,
		now:          d.Now,
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	if s.orchestrator == nil {
		s.orchestrator = legal.NewOrchestrator(legal.WithLogger(s.logger))
	}
	if s.maxInfoWords <= 0 {
		s.maxInfoWords = 1000
	}
	if s.storeTimeout <= 0 {
		s.storeTimeout = 5 * time.Second
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

type HealthReport struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// Health reports process status and whether the store answers a ping.
func (s *Service) Health(ctx context.Context) HealthReport {
	dbStatus := "disconnected"
	if s.store != nil {
		pingCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()
		if err := s.store.Ping(pingCtx); err == nil {
			dbStatus = "connected"
		} else {
			s.logger.Warn("Store ping failed", "error", err)
		}
	}

	return HealthReport{
		Status:    "healthy",
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
		Database:  dbStatus,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login checks the fixed account and issues a session token.
func (s *Service) Login(req LoginRequest) (*LoginResponse, error) {
	if !s.credentials.Check(req.Username, req.Password) {
		s.logger.Info("Login rejected", "username", req.Username)
		e := authError(KindInvalidCredentials, "Invalid credentials")
		e.Err = auth.ErrInvalidCredentials
		return nil, e
	}

	token, err := s.tokens.Issue(req.Username)
	if err != nil {
		s.logger.Error("Login error", "error", err)
		return nil, &Error{Kind: KindInternal, Scope: ScopeAuth, Message: "Internal server error", Err: err}
	}

	return &LoginResponse{Success: true, Token: token, Username: req.Username}, nil
}

type TokenRequest struct {
	Token string `json:"token"`
}

type VerifyResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
}

func (s *Service) Verify(req TokenRequest) (*VerifyResponse, error) {
	username, err := s.tokens.Validate(req.Token)
	if err != nil {
		e := authError(KindInvalidToken, "Invalid or expired token")
		e.Err = err
		return nil, e
	}
	return &VerifyResponse{Success: true, Username: username}, nil
}

// Authenticate resolves an Authorization header to a username.
func (s *Service) Authenticate(header string) (string, error) {
	token, err := auth.BearerToken(header)
	if err != nil {
		e := legalError(KindAuthRequired, "Authorization required")
		e.Err = err
		return "", e
	}

	username, err := s.tokens.Validate(token)
	if err != nil {
		e := legalError(KindInvalidToken, "Invalid or expired token")
		e.Err = err
		return "", e
	}
	return username, nil
}

type AnalyzeRequest struct {
	CrimeCode      string `json:"crime_code"`
	Jurisdiction   string `json:"jurisdiction"`
	AdditionalInfo string `json:"additional_info"`
}

// query keeps the fields verbatim; they are echoed back in the result.
func (r AnalyzeRequest) query() legal.Query {
	return legal.Query{
		CrimeCode:      r.CrimeCode,
		Jurisdiction:   r.Jurisdiction,
		AdditionalInfo: r.AdditionalInfo,
	}
}

// Analyze validates the request, runs the orchestrator (or serves a cached
// result) and appends the outcome to the store on a best-effort basis.
func (s *Service) Analyze(ctx context.Context, username string, req AnalyzeRequest) (result *legal.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Analysis error", "panic", r)
			result = nil
			err = &Error{
				Kind:    KindInternal,
				Message: "Failed to process legal analysis",
				Details: fmt.Sprint(r),
			}
		}
	}()

	q := req.query()
	if strings.TrimSpace(q.CrimeCode) == "" || strings.TrimSpace(q.Jurisdiction) == "" {
		return nil, legalError(KindBadRequest, "Crime code and jurisdiction are required")
	}
	if legal.CountWords(q.AdditionalInfo) > s.maxInfoWords {
		return nil, legalError(KindBadRequest,
			fmt.Sprintf("Additional information must be %d words or less", s.maxInfoWords))
	}

	result = s.analyze(ctx, q)

	outcome := s.record(ctx, username, q, result)
	s.logger.Debug("Analysis completed",
		"username", username,
		"category", legal.Classify(q.CrimeCode),
		"failed", result.Failed(),
		"persist", outcome,
	)

	return result, nil
}

func (s *Service) analyze(ctx context.Context, q legal.Query) *legal.AnalysisResult {
	if s.cache == nil {
		return s.orchestrator.Process(ctx, q)
	}

	key := cache.GenerateCacheKey(q.CrimeCode, q.Jurisdiction)
	if cached, found := s.cache.Get(key); found {
		s.logger.Debug("Cache hit", "key", key)
		return cached
	}

	result := s.orchestrator.Process(ctx, q)
	if !result.Failed() {
		if err := s.cache.Set(key, result); err != nil {
			s.logger.Warn("Failed to cache analysis", "key", key, "error", err)
		}
	}
	return result
}

// Confirm echoes the query back without running any provider.
func (s *Service) Confirm(_ context.Context, _ string, req AnalyzeRequest) (confirmation *legal.Confirmation, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Confirmation error", "panic", r)
			confirmation = nil
			err = &Error{
				Kind:    KindInternal,
				Message: "Failed to generate confirmation",
				Details: fmt.Sprint(r),
			}
		}
	}()

	c := legal.BuildConfirmation(req.query())
	return &c, nil
}

// CacheStats exposes analysis cache counters; zero when caching is off.
func (s *Service) CacheStats() cache.CacheStats {
	if s.cache == nil {
		return cache.CacheStats{}
	}
	return s.cache.Stats()
}
