// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alekmarinov/avtv/internal/metrics"
)

// Config holds the Redis connection settings.
type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
	PoolSize    int
}

// Redis implements Store against a single shared Redis client. The
// client multiplexes many in-flight requests over its connection pool;
// per-request deadlines arrive through the context.
type Redis struct {
	rdb *redis.Client
}

// NewRedis creates a Redis-backed store.
func NewRedis(cfg Config) *Redis {
	return &Redis{
		rdb: redis.NewClient(&redis.Options{
			Addr:        cfg.Addr,
			Password:    cfg.Password,
			DB:          cfg.DB,
			DialTimeout: cfg.DialTimeout,
			PoolSize:    cfg.PoolSize,
		}),
	}
}

// NewRedisClient wraps an existing client; used by tests.
func NewRedisClient(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

// Ping verifies connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("store: ping: %w", err)
	}
	return nil
}

// Close releases the client's connection pool.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// SortProject issues the accumulated SORT command in one round trip.
// The raw Do path is used instead of the typed Sort API so that absent
// projected keys come back as nil instead of collapsing to "".
func (r *Redis) SortProject(ctx context.Context, q *SortQuery) ([]any, error) {
	vals, err := r.rdb.Do(ctx, q.Args()...).Slice()
	if err != nil {
		metrics.StoreErrors.WithLabelValues("sort").Inc()
		return nil, fmt.Errorf("store: sort: %w", err)
	}
	return vals, nil
}

// Keys enumerates keys matching the glob pattern.
func (r *Redis) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := r.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		metrics.StoreErrors.WithLabelValues("keys").Inc()
		return nil, fmt.Errorf("store: keys %q: %w", pattern, err)
	}
	return keys, nil
}

// MGet fetches many keys at once; absent keys yield nil entries.
func (r *Redis) MGet(ctx context.Context, keys ...string) ([]any, error) {
	vals, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		metrics.StoreErrors.WithLabelValues("mget").Inc()
		return nil, fmt.Errorf("store: mget: %w", err)
	}
	return vals, nil
}

// LRange returns list elements in [start, stop].
func (r *Redis) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	vals, err := r.rdb.LRange(ctx, key, start, stop).Result()
	if err != nil {
		metrics.StoreErrors.WithLabelValues("lrange").Inc()
		return nil, fmt.Errorf("store: lrange %q: %w", key, err)
	}
	return vals, nil
}

// Get fetches a single scalar.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	val, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoKey
	}
	if err != nil {
		metrics.StoreErrors.WithLabelValues("get").Inc()
		return "", fmt.Errorf("store: get %q: %w", key, err)
	}
	return val, nil
}

// Set writes a single scalar.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		metrics.StoreErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("store: set %q: %w", key, err)
	}
	return nil
}

// TypeOf reports the store-native type of a key.
func (r *Redis) TypeOf(ctx context.Context, key string) (string, error) {
	typ, err := r.rdb.Type(ctx, key).Result()
	if err != nil {
		metrics.StoreErrors.WithLabelValues("type").Inc()
		return "", fmt.Errorf("store: type %q: %w", key, err)
	}
	return typ, nil
}
