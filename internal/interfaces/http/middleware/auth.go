package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ba6/gatekeeper/internal/infrastructure/auth"
	"github.com/ba6/gatekeeper/internal/shared/constants"
	"github.com/ba6/gatekeeper/internal/shared/logger"
	"github.com/ba6/gatekeeper/internal/shared/utils"
)

// TokenVerifier turns a bearer token into the caller identity
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth rejects requests without a valid Supabase access token and
// stores the user ID under constants.ContextKeyUserID.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		token := auth.ExtractBearerToken(authHeader)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		identity, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

func setIdentity(c *gin.Context, identity *auth.Identity) {
	c.Set(constants.ContextKeyUserID, identity.UserID)
	c.Set(constants.ContextKeyUserEmail, identity.Email)
	c.Set(constants.ContextKeyUserRole, identity.Role)
}
