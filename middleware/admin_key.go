package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminKey guards mutating admin routes with the X-Admin-Key header. This is
// a deployment guard, not an auth system.
func AdminKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader("X-Admin-Key")
		if supplied == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid admin key"})
			return
		}
		c.Next()
	}
}
