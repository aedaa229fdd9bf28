package routes

import (
	"github.com/gin-gonic/gin"

	spacehandlers "github.com/ba6/gatekeeper/internal/interfaces/http/handlers/space"
	"github.com/ba6/gatekeeper/internal/interfaces/http/middleware"
)

type SpaceRouteConfig struct {
	SpaceHandler        *spacehandlers.Handler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// SetupSpaceRoutes registers the gated space actions
func SetupSpaceRoutes(api *gin.RouterGroup, config *SpaceRouteConfig) {
	spaces := api.Group("/spaces")
	spaces.Use(config.AuthMiddleware.RequireAuth(), config.RateLimitMiddleware.Limit())
	{
		spaces.POST("/:id/join", config.SpaceHandler.JoinSpace)
		spaces.POST("/:id/messages", config.SpaceHandler.SendMessage)
		spaces.POST("/:id/threads", config.SpaceHandler.CreateThread)
	}
}
