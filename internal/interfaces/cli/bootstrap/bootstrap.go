// Package bootstrap loads configuration and opens the shared connections used
// by every CLI command.
package bootstrap

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ba6/gatekeeper/internal/infrastructure/config"
	"github.com/ba6/gatekeeper/internal/infrastructure/database"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

// Init loads configuration for env, configures the global logger and opens
// the database. Callers must defer database.Close.
func Init(env string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = MapEnvToGinMode(cfg.Server.Mode)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// NewRedisClient returns a client for the configured Redis, or nil when rate
// limiting is disabled.
func NewRedisClient(cfg *config.Config) redis.UniversalClient {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// MapEnvToGinMode maps an environment name onto a gin mode
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
