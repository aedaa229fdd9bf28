package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ba6/gatekeeper/internal/shared/logger"
)

// PingFunc returns nil when a dependency is reachable
type PingFunc func() error

type HealthHandler struct {
	deps   map[string]PingFunc
	logger logger.Interface
}

// NewHealthHandler builds a handler that reports every named dependency
func NewHealthHandler(deps map[string]PingFunc, logger logger.Interface) *HealthHandler {
	return &HealthHandler{
		deps:   deps,
		logger: logger,
	}
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(c *gin.Context) {
	checks := make(map[string]string, len(h.deps))
	status := http.StatusOK

	for name, ping := range h.deps {
		if err := ping(); err != nil {
			h.logger.Warnw("health check failed", "dependency", name, "error", err)
			checks[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}

	c.JSON(status, gin.H{
		"status": state,
		"checks": checks,
	})
}
