package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/ryanstpierre/boulder.codes-sub000/internal/errors"
)

// RequireAdmin checks the Authorization bearer token against the configured
// admin secret in constant time. An empty secret keeps admin routes disabled
// rather than open.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			apierrors.Unauthorized(c, "Admin access is not configured")
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			apierrors.Unauthorized(c, "Invalid admin token")
			c.Abort()
			return
		}

		c.Next()
	}
}
