package bookinstance

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared"
)

// ========== STATUS ==========
const (
	StatusAvailable   = "Available"
	StatusMaintenance = "Maintenance"
	StatusLoaned      = "Loaned"
	StatusReserved    = "Reserved"
)

// Statuses theo thứ tự hiển thị trên form
var Statuses = []string{StatusMaintenance, StatusAvailable, StatusLoaned, StatusReserved}

// DefaultStatus được dùng khi form không gửi status
const DefaultStatus = StatusMaintenance

// BookInstance là một bản copy vật lý của một Book
type BookInstance struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Book    primitive.ObjectID `bson:"book"`
	Imprint string             `bson:"imprint"`
	Status  string             `bson:"status"`
	DueBack *time.Time         `bson:"due_back,omitempty"`
}

func (bi *BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID.Hex()
}

// DueBackFormatted returns "" when no due date is set
func (bi *BookInstance) DueBackFormatted() string {
	if bi.DueBack == nil {
		return ""
	}
	return bi.DueBack.Format(shared.DateMedLayout)
}

// DueBackISO dùng cho input type=date
func (bi *BookInstance) DueBackISO() string {
	if bi.DueBack == nil {
		return ""
	}
	return bi.DueBack.Format(shared.ISODateLayout)
}

// IsBook reports whether the copy belongs to book id (form select)
func (bi *BookInstance) IsBook(id primitive.ObjectID) bool {
	return bi.Book == id
}

// View là BookInstance với Book đã populate. Book = nil nếu reference bị dangling.
type View struct {
	BookInstance `bson:",inline"`
	BookRef      *shared.BookSummary `bson:"book_ref,omitempty"`
}
