package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/holidayopt/internal/optimizer"
	"github.com/wonny/holidayopt/pkg/logger"
)

// WarmCacheJob precomputes optimization results for the current and the upcoming year
// so API requests for them are served from the cache.
// ⭐ SSOT: 캐시 예열 스케줄은 이 Job에서만
type WarmCacheJob struct {
	engine   *optimizer.Engine
	counts   []int
	schedule string
	now      func() time.Time
	logger   *logger.Logger
}

// NewWarmCacheJob creates a new cache warm-up job
func NewWarmCacheJob(engine *optimizer.Engine, counts []int, schedule string, log *logger.Logger) *WarmCacheJob {
	return &WarmCacheJob{
		engine:   engine,
		counts:   counts,
		schedule: schedule,
		now:      time.Now,
		logger:   log,
	}
}

// Name returns the job name
func (j *WarmCacheJob) Name() string {
	return "warm_cache"
}

// Schedule returns the cron schedule (with seconds)
func (j *WarmCacheJob) Schedule() string {
	return j.schedule
}

// Requests lists the runs the job performs, in order.
// Exhaustive runs above the engine's combination limit are left out.
func (j *WarmCacheJob) Requests() []optimizer.Request {
	year := j.now().Year()

	var reqs []optimizer.Request
	for _, y := range []int{year, year + 1} {
		for _, count := range j.counts {
			for _, algo := range []optimizer.Algorithm{optimizer.Greedy, optimizer.Exhaustive} {
				req := optimizer.Request{Year: y, Count: count, Algorithm: algo}
				if err := j.engine.Validate(req); err != nil {
					continue
				}
				reqs = append(reqs, req)
			}
		}
	}
	return reqs
}

// Run executes the warm-up
func (j *WarmCacheJob) Run(ctx context.Context) error {
	reqs := j.Requests()
	j.logger.WithField("runs", len(reqs)).Info("Starting scheduled cache warm-up")

	var errs []error
	cached := 0
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := j.engine.Optimize(ctx, req)
		if err != nil {
			errs = append(errs, fmt.Errorf("%d/%d/%s: %w", req.Year, req.Count, req.Algorithm, err))
			continue
		}
		if result.Cached {
			cached++
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"runs":           len(reqs),
		"already_cached": cached,
		"failed":         len(errs),
	}).Info("Cache warm-up completed")

	return errors.Join(errs...)
}
