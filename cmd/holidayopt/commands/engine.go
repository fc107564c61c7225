package commands

import (
	"context"
	"fmt"

	"github.com/wonny/holidayopt/internal/optimizer"
	"github.com/wonny/holidayopt/pkg/redis"
)

// cachePrefix namespaces every Redis key of this service
const cachePrefix = "holidayopt"

// services are the long-lived pieces shared by optimize, api and scheduler
type services struct {
	engine  *optimizer.Engine
	redis   *redis.Client
	limiter *redis.RateLimiter
}

func (s *services) Close() error {
	return s.redis.Close()
}

// newServices connects Redis (when enabled) and builds the optimizer engine on top of it
func newServices(ctx context.Context, e *env) (*services, error) {
	client, err := redis.New(ctx, e.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	var cache optimizer.Cache
	if client.Enabled() {
		cache = redis.NewCache(client, cachePrefix)
		e.log.WithFields(map[string]interface{}{
			"addr": client.Addr(),
			"ttl":  e.cfg.Optimizer.CacheTTL.String(),
		}).Info("Result cache enabled")
	}

	return &services{
		engine:  optimizer.NewEngine(e.cal, e.cfg.Optimizer, cache, e.log),
		redis:   client,
		limiter: redis.NewRateLimiter(client, cachePrefix),
	}, nil
}
