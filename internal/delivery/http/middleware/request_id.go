package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags every request with a unique id, honoring an inbound
// X-Request-ID from a proxy when present. The id is stored in the gin
// context and echoed in the response for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		c.Set("RequestID", id)
		c.Header("X-Request-ID", id)

		c.Next()
	}
}
