package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextRequestID = "request_id"
	requestIDHeader  = "X-Request-ID"
	// longer client ids are replaced to keep log lines bounded
	requestIDMaxLen = 64
)

// RequestID reuses the caller's X-Request-ID or generates one, and echoes it
// on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(ContextRequestID, rid)
		c.Header(requestIDHeader, rid)

		c.Next()
	}
}
