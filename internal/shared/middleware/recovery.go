package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"locallibrary/internal/shared/response"
)

// Recovery bắt panic và render trang lỗi 500
func Recovery(showDetail bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("error", rec).
					Msg("Panic recovered")

				err := response.NewStatusError(http.StatusInternalServerError, fmt.Sprintf("panic: %v", rec))
				if !c.Writer.Written() {
					response.ErrorPage(c, err, showDetail)
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
