// Package cache stores computed analytics per user so repeated dashboard loads
// skip recomputation until the user's applications change.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobtracker/internal/config"
	"github.com/redis/go-redis/v9"
)

// Kind names a cached analytics result.
type Kind string

const (
	KindVelocity Kind = "velocity"
	KindInsights Kind = "insights"
	KindSummary  Kind = "summary"
)

// Kinds lists every cached result; Invalidate clears all of them.
var Kinds = []Kind{KindVelocity, KindInsights, KindSummary}

// AnalyticsCache holds per-user analytics results.
type AnalyticsCache interface {
	// Get decodes the cached value into dst and reports whether it was present.
	Get(ctx context.Context, userID uuid.UUID, kind Kind, dst any) (bool, error)
	Set(ctx context.Context, userID uuid.UUID, kind Kind, value any) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// Key returns the Redis key for a user's cached result.
func Key(userID uuid.UUID, kind Kind) string {
	return fmt.Sprintf("analytics:%s:%s", userID, kind)
}

// Redis is an AnalyticsCache backed by go-redis.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the configured Redis server and verifies it responds.
func NewRedis(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Redis{client: client, ttl: ttl}, nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get implements AnalyticsCache.
func (r *Redis) Get(ctx context.Context, userID uuid.UUID, kind Kind, dst any) (bool, error) {
	raw, err := r.client.Get(ctx, Key(userID, kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", kind, err)
	}
	return true, nil
}

// Set implements AnalyticsCache.
func (r *Redis) Set(ctx context.Context, userID uuid.UUID, kind Kind, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", kind, err)
	}
	if err := r.client.Set(ctx, Key(userID, kind), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Invalidate implements AnalyticsCache.
func (r *Redis) Invalidate(ctx context.Context, userID uuid.UUID) error {
	keys := make([]string, len(Kinds))
	for i, kind := range Kinds {
		keys[i] = Key(userID, kind)
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, uuid.UUID, Kind, any) (bool, error) { return false, nil }

func (Nop) Set(context.Context, uuid.UUID, Kind, any) error { return nil }

func (Nop) Invalidate(context.Context, uuid.UUID) error { return nil }
