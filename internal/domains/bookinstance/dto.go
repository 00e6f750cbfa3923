package bookinstance

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared/utils"
)

// BookInstanceForm - POST /catalog/bookinstance/create, POST /catalog/bookinstance/:id/update
type BookInstanceForm struct {
	Book    string `json:"book" form:"book"`
	Imprint string `json:"imprint" form:"imprint"`
	Status  string `json:"status" form:"status"`
	DueBack string `json:"due_back" form:"due_back"`
}

var FieldOrder = []string{"book", "imprint", "status", "due_back"}

func (f *BookInstanceForm) Normalize() {
	f.Book = strings.TrimSpace(f.Book)
	f.Imprint = strings.TrimSpace(f.Imprint)
	f.Status = strings.TrimSpace(f.Status)
	f.DueBack = strings.TrimSpace(f.DueBack)
	if f.Status == "" {
		f.Status = DefaultStatus
	}
}

func (f BookInstanceForm) Validate() error {
	statuses := make([]interface{}, 0, len(Statuses))
	for _, s := range Statuses {
		statuses = append(statuses, s)
	}

	return validation.ValidateStruct(&f,
		validation.Field(&f.Book,
			validation.Required.Error("Book must be specified"),
			validation.By(func(value interface{}) error {
				if _, ok := utils.ParseObjectID(value.(string)); !ok {
					return validation.NewError("validation_book_id", "Book must be specified")
				}
				return nil
			}),
		),
		validation.Field(&f.Imprint, validation.Required.Error("Imprint must be specified")),
		validation.Field(&f.Status, validation.In(statuses...).Error("Invalid status")),
		validation.Field(&f.DueBack, utils.ISO8601("Invalid date")),
	)
}

// ToEntity builds the (escaped) draft
func (f BookInstanceForm) ToEntity(id primitive.ObjectID) *BookInstance {
	bi := &BookInstance{
		ID:      id,
		Imprint: utils.Escape(f.Imprint),
		Status:  f.Status,
		DueBack: utils.OptionalDate(f.DueBack),
	}
	if bookID, ok := utils.ParseObjectID(f.Book); ok {
		bi.Book = bookID
	}
	return bi
}
