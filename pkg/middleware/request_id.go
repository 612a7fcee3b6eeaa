package middleware

import (
	"github.com/code-100-precent/lingrx/pkg/constants"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware tags each request with the caller's X-Request-ID, or
// a new UUID when the header is absent, and echoes it in the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(constants.RequestIDField, requestID)
		c.Header(constants.RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID gets request ID from context
func GetRequestID(c *gin.Context) string {
	return c.GetString(constants.RequestIDField)
}
