package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/jobtracker/internal/cache"
	"github.com/jonathan/jobtracker/internal/config"
	"github.com/jonathan/jobtracker/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(configPath *string) *cobra.Command {
	var (
		port    int
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Start the HTTP server exposing authentication, application CRUD and analytics endpoints.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, *configPath, port, migrate)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides PORT)")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Apply the database schema before serving")
	return cmd
}

func runServe(ctx context.Context, configPath string, port int, migrate bool) error {
	rt, err := openRuntime(ctx, configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	if port != 0 {
		rt.cfg.Server.Port = port
		if err := rt.cfg.Validate(); err != nil {
			return err
		}
	}

	if migrate {
		if err := rt.store.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}

	var analyticsCache cache.AnalyticsCache = cache.Nop{}
	redisCache, err := rt.openCache(ctx)
	switch {
	case err != nil:
		rt.logger.Warn("analytics cache disabled", zap.Error(err))
	case redisCache != nil:
		defer func() { _ = redisCache.Close() }()
		analyticsCache = redisCache
		rt.logger.Info("analytics cache enabled",
			zap.String("redis", rt.cfg.Redis.Address),
			zap.Duration("ttl", rt.cfg.Cache.TTL))
	}

	srv, err := server.New(rt.cfg.Server, server.Deps{
		Store:    rt.store,
		Cache:    analyticsCache,
		Logger:   rt.logger,
		JWT:      jwtConfig,
		Password: passwordConfig,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(ctx)
}
