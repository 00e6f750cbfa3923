package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorTemplate là tên template của trang lỗi
const ErrorTemplate = "error"

// Page render một HTML page với status 200.
// data luôn có key "title" để layout hiển thị.
func Page(c *gin.Context, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	c.HTML(http.StatusOK, name, data)
}

// Redirect trả về 302 tới location
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// ErrorPage render trang lỗi với status lấy từ err.
// showDetail = true (development) hiển thị toàn bộ error chain.
func ErrorPage(c *gin.Context, err error, showDetail bool) {
	status := StatusOf(err)

	message := MessageOf(err)
	// Lỗi internal không được lộ ra ngoài production
	if !showDetail && status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	data := gin.H{
		"title":   http.StatusText(status),
		"message": message,
		"status":  status,
	}
	if showDetail {
		data["detail"] = fmt.Sprintf("%d %s: %+v", status, http.StatusText(status), err)
	}

	c.HTML(status, ErrorTemplate, data)
}
