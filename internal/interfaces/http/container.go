package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ba6/gatekeeper/internal/application/gateaccess"
	"github.com/ba6/gatekeeper/internal/infrastructure/auth"
	"github.com/ba6/gatekeeper/internal/infrastructure/config"
	"github.com/ba6/gatekeeper/internal/infrastructure/database"
	"github.com/ba6/gatekeeper/internal/infrastructure/ratelimit"
	"github.com/ba6/gatekeeper/internal/interfaces/http/handlers"
	"github.com/ba6/gatekeeper/internal/interfaces/http/middleware"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

// Container holds the infrastructure components, services, handlers and
// middlewares of the HTTP server and wires them into a gin engine.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  redis.UniversalClient

	repos *repositories
	svcs  *services
	hdlrs *allHandlers

	authMiddleware       *middleware.AuthMiddleware
	rateLimitMiddleware  *middleware.RateLimitMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
}

// NewContainer builds every component. redisClient may be nil, in which case
// action endpoints are not rate limited.
func NewContainer(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	c.repos = newRepositories(db, cfg, log)

	svcs, err := newServices(c.repos, db, cfg, log)
	if err != nil {
		return nil, err
	}
	c.svcs = svcs

	if err := c.initMiddlewares(); err != nil {
		return nil, err
	}

	c.hdlrs = newHandlers(c.svcs, c.healthChecks(), log)

	c.setupRoutes()

	return c, nil
}

func (c *Container) initMiddlewares() error {
	verifier, err := auth.NewSupabaseVerifier(c.cfg.Supabase.JWTSecret, c.cfg.Supabase.Audience, c.cfg.Supabase.URL)
	if err != nil {
		return fmt.Errorf("failed to create token verifier: %w", err)
	}
	c.authMiddleware = middleware.NewAuthMiddleware(verifier, c.log.Named("auth"))

	var limiter ratelimit.RateLimiter
	limitConfig := ratelimit.RateLimitConfig{}
	if c.redis != nil && c.cfg.RateLimit.Enabled {
		limiter = ratelimit.NewRedisRateLimiter(c.redis)
		limitConfig = ratelimit.RateLimitConfig{
			RequestsPerMinute: c.cfg.RateLimit.RequestsPerMinute,
			RequestsPerHour:   c.cfg.RateLimit.RequestsPerHour,
			RequestsPerDay:    c.cfg.RateLimit.RequestsPerDay,
		}
	}
	c.rateLimitMiddleware = middleware.NewRateLimitMiddleware(limiter, limitConfig, c.log.Named("ratelimit"))

	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.svcs.enforcer, c.log.Named("permission"))
	return nil
}

func (c *Container) healthChecks() map[string]handlers.PingFunc {
	checks := map[string]handlers.PingFunc{
		"database": func() error {
			return database.Ping(c.db)
		},
	}
	if c.redis != nil {
		checks["redis"] = func() error {
			return c.redis.Ping(context.Background()).Err()
		}
	}
	return checks
}

// Engine returns the configured gin engine
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Resolver exposes the gate resolver for in-process callers such as the CLI
func (c *Container) Resolver() *gateaccess.Resolver {
	return c.svcs.resolver
}

// Shutdown releases resources owned by the container. The database is owned
// by the caller.
func (c *Container) Shutdown(ctx context.Context) error {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
			return err
		}
	}
	c.log.Info("http container shut down")
	return nil
}
