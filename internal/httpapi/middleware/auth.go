package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bromolabs/bromo-server/internal/auth"
	"github.com/bromolabs/bromo-server/internal/common"
)

const (
	UserIDKey        = "user_id"
	AdultVerifiedKey = "adult_verified"
)

// AuthRequired validates the bearer token and stashes the identity plus the
// server-side adult-verified flag on the context. Client-supplied flags are
// never trusted.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			common.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := auth.ParseJWT(strings.TrimSpace(token), secret)
		if err != nil {
			common.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(AdultVerifiedKey, claims.AdultVerified)
		c.Next()
	}
}
