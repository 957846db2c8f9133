package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/jobtracker/internal/cache"
	"github.com/jonathan/jobtracker/internal/config"
	"github.com/jonathan/jobtracker/internal/db"
	"github.com/jonathan/jobtracker/internal/logger"
	"github.com/jonathan/jobtracker/internal/types"
	"go.uber.org/zap"
)

// runtime holds what every store-backed command needs.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	store  db.Store
}

func openRuntime(ctx context.Context, configPath string) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	return &runtime{cfg: cfg, logger: log, store: store}, nil
}

func (rt *runtime) Close() {
	rt.store.Close()
	_ = rt.logger.Sync()
}

// openCache connects to Redis when caching is configured. A nil cache with a nil
// error means caching is disabled.
func (rt *runtime) openCache(ctx context.Context) (*cache.Redis, error) {
	if !rt.cfg.CacheEnabled() {
		return nil, nil
	}
	return cache.NewRedis(ctx, rt.cfg.Redis, rt.cfg.Cache.TTL)
}

// invalidateCache drops the user's cached analytics after a write made outside the server.
// Failures are logged because the entries expire on their own.
func (rt *runtime) invalidateCache(ctx context.Context, user *db.User) {
	c, err := rt.openCache(ctx)
	if err != nil {
		rt.logger.Warn("analytics cache unavailable", zap.Error(err))
		return
	}
	if c == nil {
		return
	}
	defer func() { _ = c.Close() }()

	if err := c.Invalidate(ctx, user.ID); err != nil {
		rt.logger.Warn("failed to invalidate analytics cache", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}

func (rt *runtime) userByEmail(ctx context.Context, email string) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("--email is required")
	}
	user, err := rt.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("no user registered with email %s", email)
	}
	return user, nil
}

// evaluationTime parses --now, defaulting to the current time.
func evaluationTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	t, err := types.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now: %w", err)
	}
	return t, nil
}
