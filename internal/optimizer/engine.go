// Package optimizer runs a complete holiday optimization: it resolves the fixed holidays
// of a year, picks voluntary holidays with the requested algorithm and reports how much
// the wait for the next holiday shrinks.
package optimizer

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/holidayopt/internal/calendar"
	"github.com/wonny/holidayopt/internal/metric"
	"github.com/wonny/holidayopt/internal/selection"
	"github.com/wonny/holidayopt/pkg/config"
	"github.com/wonny/holidayopt/pkg/logger"
	"github.com/wonny/holidayopt/pkg/redis"
)

const (
	MinYear = 1
	MaxYear = 9998 // the following year must still be a valid date

	// DefaultMaxCombinations bounds exhaustive searches when no limit is configured.
	DefaultMaxCombinations uint64 = 5_000_000
)

// Cache stores results between runs (implemented by redis.Cache).
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Engine runs optimizations against one holiday calendar.
// It holds only immutable configuration and is safe for concurrent use.
// ⭐ SSOT: 최적화 실행은 여기서만
type Engine struct {
	cal             *calendar.Calendar
	cache           Cache
	cacheTTL        time.Duration
	maxCombinations uint64
	logger          *logger.Logger
}

// NewEngine creates a new engine. cache may be nil.
func NewEngine(cal *calendar.Calendar, cfg config.OptimizerConfig, cache Cache, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	maxCombinations := cfg.MaxCombinations
	if maxCombinations == 0 {
		maxCombinations = DefaultMaxCombinations
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = redis.TTLDaily
	}

	return &Engine{
		cal:             cal,
		cache:           cache,
		cacheTTL:        ttl,
		maxCombinations: maxCombinations,
		logger:          log,
	}
}

// Calendar returns the engine's holiday calendar.
func (e *Engine) Calendar() *calendar.Calendar {
	return e.cal
}

// Validate checks a request without running it.
func (e *Engine) Validate(req Request) error {
	if req.Count < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, req.Count)
	}
	if req.Year < MinYear || req.Year > MaxYear {
		return fmt.Errorf("%w: %d not in %d..%d", ErrInvalidYear, req.Year, MinYear, MaxYear)
	}
	if !req.Algorithm.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, req.Algorithm)
	}
	if req.Algorithm == Exhaustive {
		fixed := len(e.cal.HolidaysForYear(req.Year))
		n := selection.Binomial(calendar.DaysIn(req.Year)-fixed, req.Count)
		if n > e.maxCombinations {
			return fmt.Errorf("%w: %d combinations for %d dates (limit %d)",
				ErrSearchTooLarge, n, req.Count, e.maxCombinations)
		}
	}
	return nil
}

// Optimize runs req, serving it from the cache when possible.
func (e *Engine) Optimize(ctx context.Context, req Request) (*Result, error) {
	if err := e.Validate(req); err != nil {
		return nil, err
	}

	key := redis.OptimizeKey(e.cal.CacheID(), req.Year, req.Count, string(req.Algorithm))
	if cached, ok := e.lookup(ctx, key); ok {
		return cached, nil
	}

	result, err := e.run(ctx, req, nil)
	if err != nil {
		return nil, err
	}

	e.store(ctx, key, result)
	return result, nil
}

// OptimizeWithProgress runs req without consulting the cache and reports every greedy
// round to onPick as it happens. Exhaustive runs report nothing until they finish.
func (e *Engine) OptimizeWithProgress(ctx context.Context, req Request, onPick func(selection.Pick)) (*Result, error) {
	if err := e.Validate(req); err != nil {
		return nil, err
	}

	result, err := e.run(ctx, req, onPick)
	if err != nil {
		return nil, err
	}

	e.store(ctx, redis.OptimizeKey(e.cal.CacheID(), req.Year, req.Count, string(req.Algorithm)), result)
	return result, nil
}

func (e *Engine) run(ctx context.Context, req Request, onPick func(selection.Pick)) (*Result, error) {
	start := time.Now()
	log := e.logger.WithFields(map[string]interface{}{
		"year":      req.Year,
		"count":     req.Count,
		"algorithm": string(req.Algorithm),
		"ruleset":   e.cal.ID(),
	})
	log.Debug("optimization started")

	holidays := e.cal.HolidaysForYear(req.Year)
	fixed := calendar.Dates(holidays)
	baseline := metric.Total(e.cal, req.Year, fixed)

	result := &Result{
		Year:          req.Year,
		RulesetID:     e.cal.ID(),
		FixedHolidays: holidays,
		Count:         req.Count,
		Algorithm:     req.Algorithm,
		BaselineTotal: baseline,
	}

	var voluntary []calendar.Date
	switch req.Algorithm {
	case Greedy:
		picks, err := selection.Greedy(ctx, e.cal, req.Year, req.Count, fixed, onPick)
		if err != nil {
			return nil, fmt.Errorf("greedy selection: %w", err)
		}
		result.Picks = picks
		voluntary = selection.Dates(picks)

	case Exhaustive:
		candidates := calendar.Candidates(req.Year, fixed)
		res, err := selection.Exhaustive(ctx, e.cal, req.Year, req.Count, fixed, candidates)
		if err != nil {
			return nil, fmt.Errorf("exhaustive search: %w", err)
		}
		evaluated := res.Evaluated
		result.CombinationsEvaluated = &evaluated
		voluntary = res.Best
	}

	calendar.SortDates(voluntary)
	if voluntary == nil {
		voluntary = []calendar.Date{}
	}
	result.Voluntary = voluntary

	all := make([]calendar.Date, 0, len(fixed)+len(voluntary))
	all = append(all, fixed...)
	all = append(all, voluntary...)
	result.BestTotal = metric.Total(e.cal, req.Year, all)

	result.Improvement = result.BaselineTotal - result.BestTotal
	if result.BaselineTotal > 0 {
		result.ImprovementPct = float64(result.Improvement) / float64(result.BaselineTotal) * 100
	}
	result.AverageDistance = float64(result.BestTotal) / float64(calendar.DaysIn(req.Year))
	result.Duration = time.Since(start)

	log.WithFields(map[string]interface{}{
		"baseline":    result.BaselineTotal,
		"best":        result.BestTotal,
		"improvement": result.Improvement,
		"duration":    result.Duration.String(),
	}).Info("optimization finished")

	return result, nil
}

// lookup returns a cached result. Cache failures are logged and treated as a miss.
func (e *Engine) lookup(ctx context.Context, key string) (*Result, bool) {
	if e.cache == nil {
		return nil, false
	}

	var cached Result
	found, err := e.cache.Get(ctx, key, &cached)
	if err != nil {
		e.logger.WithError(err).WithField("key", key).Warn("cache lookup failed")
		return nil, false
	}
	if !found {
		e.logger.WithField("key", key).Debug("cache miss")
		return nil, false
	}

	e.logger.WithField("key", key).Debug("cache hit")
	cached.Cached = true
	return &cached, true
}

func (e *Engine) store(ctx context.Context, key string, result *Result) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Set(ctx, key, result, e.cacheTTL); err != nil {
		e.logger.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}
