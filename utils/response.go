package utils

import "github.com/gin-gonic/gin"

// JSONSuccess wraps data in the success envelope every endpoint uses.
func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONError wraps an error message in the failure envelope.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}
