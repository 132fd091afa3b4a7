package auth

import (
	"net/http"

	"github.com/bookworm-labs/alexandria/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Middleware guards mutating routes. It rejects missing, invalid, and
// blacklisted tokens, and attaches the identified account to the request
// context for downstream handlers.
func (h *Handler) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		if h.isBlacklisted(token) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token, h.jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("account_id", claims.AccountID)
		c.Set("username", claims.Username)
		c.Next()
	}
}
