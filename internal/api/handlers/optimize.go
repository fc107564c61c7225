package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/wonny/holidayopt/internal/optimizer"
	"github.com/wonny/holidayopt/pkg/config"
	"github.com/wonny/holidayopt/pkg/logger"
	"github.com/wonny/holidayopt/pkg/redis"
)

// Limiter admits requests under a shared rate limit (implemented by redis.RateLimiter).
type Limiter interface {
	Allow(ctx context.Context, cfg redis.RateLimitConfig) (bool, int, error)
}

// OptimizeHandler runs optimizations over HTTP and websocket
// ⭐ SSOT: 최적화 API 핸들러는 이 구조체에서만
type OptimizeHandler struct {
	engine    *optimizer.Engine
	limiter   Limiter
	defaults  config.OptimizerConfig
	perMinute int
	validate  *validator.Validate
	logger    *logger.Logger
}

// NewOptimizeHandler creates a new optimize handler. limiter may be nil.
func NewOptimizeHandler(engine *optimizer.Engine, limiter Limiter, cfg *config.Config, log *logger.Logger) *OptimizeHandler {
	return &OptimizeHandler{
		engine:    engine,
		limiter:   limiter,
		defaults:  cfg.Optimizer,
		perMinute: cfg.API.ExhaustivePerMin,
		validate:  validator.New(),
		logger:    log,
	}
}

// OptimizeQuery holds the query parameters of an optimization request
type OptimizeQuery struct {
	Year      int    `validate:"min=1,max=9998"`
	Count     int    `validate:"min=0,max=366"`
	Algorithm string `validate:"oneof=greedy fast exhaustive optimal"`
}

// Optimize runs one optimization
// GET /api/optimize?year=2025&count=3&algorithm=greedy
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}
	if !h.allowExhaustive(w, r, req) {
		return
	}

	result, err := h.engine.Optimize(ctx, req)
	if err != nil {
		h.respondOptimizeError(w, req, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// parseRequest reads and validates the query, filling configured defaults.
func (h *OptimizeHandler) parseRequest(w http.ResponseWriter, r *http.Request) (optimizer.Request, bool) {
	var q OptimizeQuery
	var err error

	if q.Year, err = queryInt(r, "year", time.Now().Year()); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'year' (expected integer)")
		return optimizer.Request{}, false
	}
	if q.Count, err = queryInt(r, "count", h.defaults.DefaultCount); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'count' (expected integer)")
		return optimizer.Request{}, false
	}
	q.Algorithm = strings.ToLower(r.URL.Query().Get("algorithm"))
	if q.Algorithm == "" {
		q.Algorithm = strings.ToLower(h.defaults.DefaultAlgorithm)
	}

	if err := h.validate.Struct(q); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid query: "+err.Error())
		return optimizer.Request{}, false
	}

	algo, err := optimizer.ParseAlgorithm(q.Algorithm)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return optimizer.Request{}, false
	}

	return optimizer.Request{Year: q.Year, Count: q.Count, Algorithm: algo}, true
}

// allowExhaustive applies the cross-instance limit on exhaustive searches.
// Limiter failures are logged and let the request through.
func (h *OptimizeHandler) allowExhaustive(w http.ResponseWriter, r *http.Request, req optimizer.Request) bool {
	if h.limiter == nil || req.Algorithm != optimizer.Exhaustive || h.perMinute <= 0 {
		return true
	}

	allowed, _, err := h.limiter.Allow(r.Context(), redis.ExhaustiveRateLimit(h.perMinute))
	if err != nil {
		h.logger.WithError(err).Warn("Exhaustive rate limit check failed")
		return true
	}
	if !allowed {
		respondError(w, http.StatusTooManyRequests, "Too many exhaustive searches, try again later")
		return false
	}
	return true
}

func (h *OptimizeHandler) respondOptimizeError(w http.ResponseWriter, req optimizer.Request, err error) {
	status, message := optimizeErrorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"year":      req.Year,
			"count":     req.Count,
			"algorithm": string(req.Algorithm),
		}).Error("Optimization failed")
	}
	respondError(w, status, message)
}

// optimizeErrorStatus maps engine errors to HTTP status codes.
func optimizeErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, optimizer.ErrInvalidCount),
		errors.Is(err, optimizer.ErrInvalidYear),
		errors.Is(err, optimizer.ErrUnknownAlgorithm):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, optimizer.ErrSearchTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	default:
		return http.StatusInternalServerError, "Optimization failed"
	}
}
