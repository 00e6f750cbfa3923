package middleware

import "github.com/gin-gonic/gin"

// contentSecurityPolicy cho phép script từ jQuery và jsDelivr CDN (Bootstrap)
const contentSecurityPolicy = "script-src 'self' code.jquery.com cdn.jsdelivr.net"

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Referrer-Policy", "no-referrer")
		c.Next()
	}
}
