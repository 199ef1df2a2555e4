package myredis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"instanceresponder/service"

	"github.com/go-redis/redis/v8"
)

const scanBatch = 100

type redisCache[T any] struct {
	client    redis.UniversalClient
	prefix    string
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
}

// NewCache creates a Redis-backed interfaces.Cache. Entries live under "<prefix>:<key>".
func NewCache[T any](client redis.UniversalClient, prefix string, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) *redisCache[T] {
	return &redisCache[T]{
		client:    service.NilPanic(client, "myredis.cache.go: client is required"),
		prefix:    service.StrPanic(prefix, "myredis.cache.go: prefix is required"),
		marshal:   service.NilPanic(marshal, "myredis.cache.go: marshal is required"),
		unmarshal: service.NilPanic(unmarshal, "myredis.cache.go: unmarshal is required"),
	}
}

func (r *redisCache[T]) WriteValue(ctx context.Context, key string, item T, ttlMs int) error {
	bytes, err := r.marshal(item)
	if err != nil {
		return service.NewInternalServerError("Redis marshal item error", fmt.Errorf("can't marshal item of type %T, err: %w", item, err))
	}

	ttl := time.Duration(ttlMs) * time.Millisecond
	if err := r.client.Set(ctx, r.generateKey(key), bytes, ttl).Err(); err != nil {
		return service.NewInternalServerError("Redis write key error", fmt.Errorf("can't write item (key='%s'), err: %w", key, err))
	}
	return nil
}

func (r *redisCache[T]) DeleteValue(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.generateKey(key)).Err(); err != nil {
		return service.NewInternalServerError("Redis delete key error", fmt.Errorf("can't delete item (key='%s'), err: %w", key, err))
	}
	return nil
}

// ListAllValues walks the prefix with SCAN (which may repeat keys) and fetches
// each value. Entries that expire between SCAN and GET, or fail to decode, are skipped.
func (r *redisCache[T]) ListAllValues(ctx context.Context) ([]T, error) {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return nil, service.NewInternalServerError("Redis scan keys error", fmt.Errorf("redis scan keys error, err: %w", err))
	}
	if len(keys) == 0 {
		return nil, service.NewEntityNotFoundError("Entity not found", nil)
	}

	items := make([]T, 0, len(keys))
	for _, key := range keys {
		bytes, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
				return nil, service.NewInternalServerError("Redis read key error", ctx.Err())
			}
			continue
		}

		item, err := r.unmarshal(bytes)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, service.NewEntityNotFoundError("Entity not found", nil)
	}
	return items, nil
}

func (r *redisCache[T]) scanKeys(ctx context.Context) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	seen := make(map[string]struct{})
	match := r.prefix + ":*"
	for {
		batch, next, err := r.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range batch {
			if _, dup := seen[k]; dup || !strings.HasPrefix(k, r.prefix+":") {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

func (r *redisCache[T]) generateKey(key string) string {
	return r.prefix + ":" + key
}
