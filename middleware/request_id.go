package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id to and from clients.
	RequestIDHeader = "X-Request-ID"

	requestIDContextKey = "request_id"
)

// RequestID tags every request with an id, honoring one supplied by the
// client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDContextKey, reqID)
		c.Header(RequestIDHeader, reqID)
		c.Next()
	}
}

// RequestIDValue returns the id assigned to the current request, if any.
func RequestIDValue(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}
