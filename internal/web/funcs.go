package web

import (
	"html"

	"locallibrary/internal/domains/bookinstance"
)

// Display decode giá trị đã được escape khi lưu.
// html/template sẽ escape lại đúng một lần khi render.
func Display(s string) string {
	return html.UnescapeString(s)
}

// StatusClass map status của book instance sang bootstrap text class
func StatusClass(status string) string {
	switch status {
	case bookinstance.StatusAvailable:
		return "text-success"
	case bookinstance.StatusMaintenance:
		return "text-danger"
	default:
		return "text-warning"
	}
}
