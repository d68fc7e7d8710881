package utils

import (
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"success": status < 400,
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response and stops the handler chain.
// It carries the request id when one was assigned.
func JSONError(c *gin.Context, status int, err error, message string) {
	body := gin.H{
		"success": false,
		"status":  status,
		"message": message,
		"error":   err.Error(),
	}
	if id := c.GetString(RequestIDKey); id != "" {
		body["request_id"] = id
	}
	c.AbortWithStatusJSON(status, body)
}
