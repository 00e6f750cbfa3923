package middleware

import (
	"github.com/gin-gonic/gin"

	"locallibrary/internal/shared/utils"
)

const ClientIPKey = "client_ip"

// ClientIP extracts the client IP address once per request and stores it
// in the gin context for the logger and rate limiter.
// trustProxy = true chỉ khi chạy sau reverse proxy.
func ClientIP(trustProxy bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ClientIPKey, utils.ExtractClientIP(c, trustProxy))
		c.Next()
	}
}
