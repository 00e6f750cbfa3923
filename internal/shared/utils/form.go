package utils

import (
	"errors"
	"html"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared"
)

// isoLayouts là các dạng ISO-8601 được chấp nhận từ form
var isoLayouts = []string{
	shared.ISODateLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseObjectID parse id từ URL. ok = false nếu không phải hex ObjectID hợp lệ.
func ParseObjectID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// ParseISODate parse một ngày ISO-8601 (date-only hoặc date-time)
func ParseISODate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// OptionalDate parse một field ngày tùy chọn. "" => nil.
// Chỉ gọi sau khi Validate() đã pass.
func OptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := ParseISODate(s)
	if err != nil {
		return nil
	}
	return &t
}

// ISO8601 là ozzo rule: giá trị rỗng được bỏ qua, còn lại phải là ngày ISO-8601
func ISO8601(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, err := ParseISODate(s); err != nil {
			return errors.New(message)
		}
		return nil
	})
}

// Escape HTML-escape giá trị trước khi lưu / hiển thị lại
func Escape(s string) string {
	return html.EscapeString(s)
}

// FieldErrors chuyển validation.Errors thành list có thứ tự theo order.
// Field không có trong order được xếp sau, theo alphabet.
// Lỗi không phải validation (InternalError, ...) được trả về nguyên vẹn.
func FieldErrors(err error, order ...string) ([]shared.FieldError, error) {
	if err == nil {
		return nil, nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	result := make([]shared.FieldError, 0, len(verrs))
	seen := make(map[string]bool, len(order))
	for _, field := range order {
		if fieldErr, ok := verrs[field]; ok && fieldErr != nil {
			result = append(result, shared.FieldError{Field: field, Message: fieldErr.Error()})
			seen[field] = true
		}
	}

	var rest []string
	for field, fieldErr := range verrs {
		if !seen[field] && fieldErr != nil {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		result = append(result, shared.FieldError{Field: field, Message: verrs[field].Error()})
	}

	return result, nil
}
