package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout  = 5 * time.Second
	defaultPoolSize = 10
)

// Config captures the settings for the Redis instance backing the token
// denylist.
type Config struct {
	Addr     string
	Password string
	DB       int
	// PoolSize bounds concurrent connections. The denylist is a tiny
	// read-mostly keyspace, so a modest pool suffices.
	PoolSize int
	Timeout  time.Duration
}

func (c Config) options() *redis.Options {
	pool := c.PoolSize
	if pool <= 0 {
		pool = defaultPoolSize
	}
	return &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: pool,
	}
}

// Connect initialises the denylist's Redis client and verifies connectivity
// with a ping before any token check depends on it.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
