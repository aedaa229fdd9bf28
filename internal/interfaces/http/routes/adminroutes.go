package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ba6/gatekeeper/internal/infrastructure/permission"
	adminhandlers "github.com/ba6/gatekeeper/internal/interfaces/http/handlers/admin"
	"github.com/ba6/gatekeeper/internal/interfaces/http/middleware"
)

type AdminRouteConfig struct {
	GateValidationHandler *adminhandlers.GateValidationHandler
	AuthMiddleware        *middleware.AuthMiddleware
	PermissionMiddleware  *middleware.PermissionMiddleware
}

func SetupAdminRoutes(api *gin.RouterGroup, config *AdminRouteConfig) {
	admin := api.Group("/admin")
	admin.Use(config.AuthMiddleware.RequireAuth())
	{
		admin.GET("/gates/:target_type/:target_id/validation",
			config.PermissionMiddleware.RequirePermission(permission.ResourceGates, permission.ActionInspect),
			config.GateValidationHandler.GetTargetValidation)
	}
}
