package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the context key the identity middleware stores the caller's
// id under.
const UserIDKey = "user_id"

// Identity requires the X-User-ID header on every request of the group.
// Record sets are strictly per user, so an anonymous request has nothing to
// operate on.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the id stored by Identity.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
