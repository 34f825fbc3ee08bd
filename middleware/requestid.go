package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID ensures every request carries a stable X-Request-ID. A client
// supplied ID is propagated, otherwise a fresh UUIDv4 is minted. The value
// is echoed in the response header and stored under the "requestId" context
// key for the access logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Set("requestId", id)
		c.Next()
	}
}
