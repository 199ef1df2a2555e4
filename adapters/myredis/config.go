package myredis

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisConfig holds the connection URL, e.g. redis://localhost:6379/0.
// An empty Addr leaves the instance registry off.
type RedisConfig struct {
	Addr string
}

// ConfigOption adjusts the options parsed from the URL.
type ConfigOption func(*redis.Options)

// WithTimeouts sets dial, read and write timeouts to d.
func WithTimeouts(d time.Duration) ConfigOption {
	return func(o *redis.Options) {
		o.DialTimeout = d
		o.ReadTimeout = d
		o.WriteTimeout = d
	}
}

// WithPoolSize caps the number of pooled connections. Non-positive n keeps the library default.
func WithPoolSize(n int) ConfigOption {
	return func(o *redis.Options) {
		if n > 0 {
			o.PoolSize = n
		}
	}
}

// NewRedisUniversalClient builds the registry client from a redis:// or rediss:// URL.
func NewRedisUniversalClient(url string, options ...ConfigOption) (redis.UniversalClient, error) {
	parsed, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url %q: %w", url, err)
	}
	for _, opt := range options {
		opt(parsed)
	}
	return redis.NewUniversalClient(universalOptions(parsed)), nil
}

// universalOptions carries over the single-node settings a registry needs.
func universalOptions(o *redis.Options) *redis.UniversalOptions {
	u := &redis.UniversalOptions{Addrs: []string{o.Addr}, DB: o.DB}
	u.Username, u.Password = o.Username, o.Password
	u.TLSConfig = o.TLSConfig
	u.DialTimeout, u.ReadTimeout, u.WriteTimeout = o.DialTimeout, o.ReadTimeout, o.WriteTimeout
	u.PoolSize, u.MaxRetries = o.PoolSize, o.MaxRetries
	return u
}
