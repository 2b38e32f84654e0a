package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/stores"
	"go.uber.org/zap"
)

// BearerToken reads the Authorization header. The "Bearer " prefix is optional.
func BearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// ValidateToken hydrates a session from the bearer token and rejects the
// request unless it resolves to a signed-in user.
func ValidateToken(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		st := deps.Stores(gateway.NewMemoryTokenStore(token))
		if err := st.Session.Initialize(c.Request.Context()); err != nil {
			deps.Log.Error("session lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
			c.Abort()
			return
		}

		userID, ok := st.Session.UserID()
		if st.Session.State() != stores.StateAuthenticated || !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(storesKey, st)
		c.Set("user_id", userID)
		c.Next()
	}
}
