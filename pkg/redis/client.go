package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wonny/holidayopt/pkg/config"
)

// connectTimeout bounds the startup ping so a missing Redis fails fast
const connectTimeout = 5 * time.Second

// Client holds the connection shared by the result cache and the exhaustive-run limiter.
// A disabled Client has no connection and every helper built on it is a no-op.
// ⭐ SSOT: Redis 연결은 여기서만 관리
type Client struct {
	rdb  *redis.Client
	addr string
}

// New connects to the Redis described by cfg and pings it.
// With cfg.Enabled false it returns a disabled client without dialing.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if !cfg.Enabled {
		return &Client{}, nil
	}

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", addr, err)
	}

	return &Client{rdb: rdb, addr: addr}, nil
}

// Close closes the connection, if any
func (c *Client) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// Enabled reports whether results are cached and exhaustive runs are metered in Redis
func (c *Client) Enabled() bool {
	return c.rdb != nil
}

// Addr is host:port of the connected server ("" when disabled)
func (c *Client) Addr() string {
	return c.addr
}

// Redis exposes the go-redis client for the cache and limiter scripts
func (c *Client) Redis() *redis.Client {
	return c.rdb
}
