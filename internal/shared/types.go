package shared

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError là một lỗi validation gắn với một field của form
type FieldError struct {
	Field   string
	Message string
}

// Các projection dưới đây được dùng chung giữa nhiều domain
// (để tránh import cycle giữa author/genre/book/bookinstance)

// BookSummary là projection {title, summary} của một Book
type BookSummary struct {
	ID      primitive.ObjectID `bson:"_id"`
	Title   string             `bson:"title"`
	Summary string             `bson:"summary,omitempty"`
}

func (b BookSummary) URL() string {
	return "/catalog/book/" + b.ID.Hex()
}

// CopySummary là projection của một BookInstance, hiển thị trên trang Book detail
type CopySummary struct {
	ID      primitive.ObjectID `bson:"_id"`
	Imprint string             `bson:"imprint"`
	Status  string             `bson:"status"`
	DueBack *time.Time         `bson:"due_back,omitempty"`
}

func (c CopySummary) URL() string {
	return "/catalog/bookinstance/" + c.ID.Hex()
}

// DueBackFormatted returns "" when no due date is set
func (c CopySummary) DueBackFormatted() string {
	if c.DueBack == nil {
		return ""
	}
	return c.DueBack.Format(DateMedLayout)
}

// DateMedLayout là format hiển thị ngày, vd "Jan 2, 2006"
const DateMedLayout = "Jan 2, 2006"

// ISODateLayout là format ngày cho input type=date
const ISODateLayout = "2006-01-02"
