package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id in both directions
	RequestIDHeader = "X-Request-ID"

	requestIDKey   = "requestID"
	hideDetailsKey = "hideErrorDetails"
)

// Settings stores per-deployment switches on the request context.
// hideDetails replaces the message of every 5xx response with a generic one.
func Settings(hideDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(hideDetailsKey, hideDetails)
		c.Next()
	}
}

// RequestID reuses an incoming X-Request-ID or generates one, and echoes it
// on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, or "" outside it
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
