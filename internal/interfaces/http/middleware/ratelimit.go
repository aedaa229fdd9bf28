package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ba6/gatekeeper/internal/infrastructure/ratelimit"
	"github.com/ba6/gatekeeper/internal/shared/constants"
	"github.com/ba6/gatekeeper/internal/shared/logger"
	"github.com/ba6/gatekeeper/internal/shared/utils"
)

type RateLimitMiddleware struct {
	limiter ratelimit.RateLimiter
	config  ratelimit.RateLimitConfig
	logger  logger.Interface
}

func NewRateLimitMiddleware(limiter ratelimit.RateLimiter, config ratelimit.RateLimitConfig, logger logger.Interface) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		config:  config,
		logger:  logger,
	}
}

// Limit throttles each authenticated user, falling back to the client IP.
// When Redis is unavailable the request is let through.
func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil || !m.config.Enabled() {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if userID := c.GetString(constants.ContextKeyUserID); userID != "" {
			key = "user:" + userID
		}

		result, err := m.limiter.Allow(c.Request.Context(), key, m.config)
		if err != nil {
			m.logger.Warnw("rate limiter unavailable, allowing request", "error", err, "key", key)
			c.Next()
			return
		}

		if !result.Allowed {
			c.Header(constants.HeaderRetryAfter, strconv.Itoa(int(result.RetryAfter.Seconds())))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
