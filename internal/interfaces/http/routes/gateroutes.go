package routes

import (
	"github.com/gin-gonic/gin"

	gatehandlers "github.com/ba6/gatekeeper/internal/interfaces/http/handlers/gate"
	"github.com/ba6/gatekeeper/internal/interfaces/http/middleware"
)

type GateRouteConfig struct {
	GateHandler         *gatehandlers.Handler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

func SetupGateRoutes(api *gin.RouterGroup, config *GateRouteConfig) {
	gates := api.Group("/gates")
	gates.Use(config.AuthMiddleware.RequireAuth(), config.RateLimitMiddleware.Limit())
	{
		gates.POST("/check", config.GateHandler.CheckAccess)
	}
}
