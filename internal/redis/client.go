// Package redis provides a thin wrapper around the go-redis client so save
// stores depend on an interface rather than a concrete connection.
package redis

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient to allow for easy substitution in tests.
type Client interface {
	redis.UniversalClient
}

// Options configures Redis client behavior
type Options struct {
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	MaxRetries   int
}

// NewClient creates a Redis client for a single instance. The connection
// is lazy; use Ping to check reachability.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.New("redis: endpoint is required")
	}

	if opts == nil {
		opts = &Options{}
	}

	return redis.NewClient(&redis.Options{
		Addr:         endpoint,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		DialTimeout:  opts.DialTimeout,
		MaxRetries:   opts.MaxRetries,
	}), nil
}
