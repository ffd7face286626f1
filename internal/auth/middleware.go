package auth

import (
	"strings"

	"codeberg.org/docrouter/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// requires a valid admin token
func AdminMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.Unauthorized(c, "authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			errors.Unauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := ValidateJWT(secret, parts[1])
		if err != nil {
			errors.Unauthorized(c, "invalid or expired token")
			return
		}

		if !claims.IsAdmin {
			errors.Forbidden(c, "admin access required")
			return
		}

		c.Set("subject", claims.Subject)

		c.Next()
	}
}

// extracts the token subject from context after AdminMiddleware
func GetSubject(c *gin.Context) (string, bool) {
	subject, exists := c.Get("subject")
	if !exists {
		return "", false
	}

	s, ok := subject.(string)

	return s, ok
}
