package response

import (
	"errors"
	"net/http"
)

// StatusError là error mang theo HTTP status, được error boundary
// chuyển thành trang lỗi với đúng status code
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func NewStatusError(status int, message string) *StatusError {
	return &StatusError{Status: status, Message: message}
}

// NotFound tạo StatusError 404
func NotFound(message string) *StatusError {
	return NewStatusError(http.StatusNotFound, message)
}

// StatusOf trả về HTTP status của err (đi qua error chain), mặc định 500
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return http.StatusInternalServerError
}

// MessageOf trả về message hiển thị cho user
func MessageOf(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
