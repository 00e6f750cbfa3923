package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"locallibrary/internal/shared/ratelimit"
	"locallibrary/internal/shared/response"
)

// RateLimit chặn client vượt quá limit với 429 + Retry-After.
// Key là client IP (đã được ClientIP middleware set).
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(ClientIPKey)

		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn().Err(err).Str("ip", key).Msg("Rate limiter unavailable, allowing request")
		}

		if !decision.Allowed {
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(seconds))
			_ = c.Error(response.NewStatusError(http.StatusTooManyRequests, "Too many requests, please try again later."))
			c.Abort()
			return
		}

		c.Next()
	}
}
