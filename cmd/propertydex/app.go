package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/patpet21/prdxprew-sub000/internal/adapter/cache"
	"github.com/patpet21/prdxprew-sub000/internal/adapter/repository/postgres"
	"github.com/patpet21/prdxprew-sub000/internal/adapter/repository/sqlite"
	"github.com/patpet21/prdxprew-sub000/internal/config"
	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

// openStore opens the configured scenario store. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domain.ScenarioRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, cfg.PostgresConnString())
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("scenario store ready", zap.String("driver", config.DriverPostgres))
		return postgres.NewScenarioRepository(db), func() { db.Close() }, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("scenario store ready", zap.String("driver", config.DriverSQLite), zap.String("path", cfg.Store.SQLitePath))
		return sqlite.NewScenarioStore(db), func() { db.Close() }, nil
	}

	return nil, nil, fmt.Errorf("invalid store driver: %s", cfg.Store.Driver)
}

// openChartCache returns Redis when configured and reachable, the in-memory cache otherwise
func openChartCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domain.ChartCache, func()) {
	if cfg.Cache.RedisAddr == "" {
		return cache.NewMemoryCache(), func() {}
	}

	rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory chart cache", zap.Error(err))
		return cache.NewMemoryCache(), func() {}
	}

	logger.Info("chart cache ready", zap.String("redis_addr", cfg.Cache.RedisAddr))
	return rc, func() { _ = rc.Close() }
}

// cmdContext is cmd.Context with a fallback for commands run directly in tests
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
