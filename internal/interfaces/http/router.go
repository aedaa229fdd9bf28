package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ba6/gatekeeper/internal/infrastructure/metrics"
	"github.com/ba6/gatekeeper/internal/interfaces/http/middleware"
	"github.com/ba6/gatekeeper/internal/interfaces/http/routes"
)

// setupRoutes configures the global middleware chain and all HTTP routes
func (c *Container) setupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Recovery(c.log.Named("recovery")))
	c.engine.Use(middleware.CustomLogger(c.log.Named("http")))
	c.engine.Use(metrics.Middleware())
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	c.engine.GET("/healthz", c.hdlrs.health.Healthz)
	c.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := c.engine.Group("/api")

	routes.SetupGateRoutes(api, &routes.GateRouteConfig{
		GateHandler:         c.hdlrs.gate,
		AuthMiddleware:      c.authMiddleware,
		RateLimitMiddleware: c.rateLimitMiddleware,
	})

	routes.SetupSpaceRoutes(api, &routes.SpaceRouteConfig{
		SpaceHandler:        c.hdlrs.space,
		AuthMiddleware:      c.authMiddleware,
		RateLimitMiddleware: c.rateLimitMiddleware,
	})

	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		GateValidationHandler: c.hdlrs.gateValidation,
		AuthMiddleware:        c.authMiddleware,
		PermissionMiddleware:  c.permissionMiddleware,
	})
}
