package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tasknest/tasknest-api/internal/constants"
	apierrors "github.com/tasknest/tasknest-api/internal/errors"
)

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(token string) (uint64, error)
}

// RequireAuth rejects the request with 401 unless it carries a valid
// "Authorization: Bearer <token>" header.
func RequireAuth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			apierrors.Unauthorized(c, "No token provided")
			return
		}

		userID, err := authenticator.Authenticate(token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token")
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, constants.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
