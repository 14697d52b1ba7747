package middleware

import (
	"net/http"
	"strings"

	"videoportfolio/internal/pkg/jwt"
	"videoportfolio/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key holding the authenticated subject.
const ContextUserID = "user_id"

type TokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

// JWTAuth requires "Authorization: Bearer <token>" and stores the token
// subject under ContextUserID.
func JWTAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "No token, authorization denied")
			c.Abort()
			return
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token is not valid")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated subject, or "" on public routes.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
