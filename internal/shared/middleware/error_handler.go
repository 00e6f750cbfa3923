package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"locallibrary/internal/shared/response"
)

// ErrorHandler là điểm render lỗi duy nhất: handler chỉ cần c.Error(err) và return.
// Status lấy từ response.StatusError, mặc định 500.
// showDetail = true (development) hiển thị chi tiết lỗi trên trang.
func ErrorHandler(showDetail bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if response.StatusOf(err) >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("request_id", c.GetString(RequestIDKey)).
				Str("path", c.Request.URL.Path).
				Msg("Request failed")
		}

		response.ErrorPage(c, err, showDetail)
	}
}

// NotFound xử lý route không tồn tại
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(response.NotFound("Not Found"))
	}
}
