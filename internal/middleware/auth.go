package middleware

import (
	"net/http"
	"strings"

	"taskhub/internal/pkg/jwt"
	"taskhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// ContextUserID and ContextUsername are the gin context keys the gate sets
// for downstream handlers.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// JWTAuth gates protected routes on a valid bearer access token. Missing
// token -> 401, invalid or expired -> 403. Stateless: only the verifier is
// consulted, never a store.
func JWTAuth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := extractBearer(header)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Access token required")
			c.Abort()
			return
		}

		claims, err := tokens.ParseAccessToken(token)
		if err != nil {
			response.Error(c, http.StatusForbidden, "Invalid or expired access token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

func extractBearer(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
