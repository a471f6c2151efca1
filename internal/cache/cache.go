// Package cache stores analytics responses so repeated dashboard loads skip the aggregate queries.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// analytics:{metric} -> JSON response body
	KeyAnalytics = "analytics:%s"

	analyticsPattern = "analytics:*"
)

// Cache is a JSON value cache for analytics results.
type Cache interface {
	Get(ctx context.Context, metric string, dst interface{}) (bool, error)
	Set(ctx context.Context, metric string, v interface{}) error
	InvalidateAnalytics(ctx context.Context) error
}

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// Redis is a Cache backed by a redis client.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, metric string, dst interface{}) (bool, error) {
	b, err := r.rdb.Get(ctx, fmt.Sprintf(KeyAnalytics, metric)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", metric, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", metric, err)
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, metric string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", metric, err)
	}
	if err := r.rdb.Set(ctx, fmt.Sprintf(KeyAnalytics, metric), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", metric, err)
	}
	return nil
}

// InvalidateAnalytics drops every cached analytics entry.
func (r *Redis) InvalidateAnalytics(ctx context.Context) error {
	iter := r.rdb.Scan(ctx, 0, analyticsPattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.rdb.Del(ctx, keys...).Err()
}

// Noop never hits; used when REDIS_ADDR is not configured.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, interface{}) error         { return nil }
func (Noop) InvalidateAnalytics(context.Context) error              { return nil }
