package book

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared/utils"
)

// BookForm - POST /catalog/book/create, POST /catalog/book/:id/update
// Genre là multi-value checkbox, có thể rỗng
type BookForm struct {
	Title   string   `json:"title" form:"title"`
	Author  string   `json:"author" form:"author"`
	Summary string   `json:"summary" form:"summary"`
	ISBN    string   `json:"isbn" form:"isbn"`
	Genre   []string `json:"genre" form:"genre"`
}

var FieldOrder = []string{"title", "author", "summary", "isbn", "genre"}

func (f *BookForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
	f.Summary = strings.TrimSpace(f.Summary)
	f.ISBN = strings.TrimSpace(f.ISBN)

	genres := make([]string, 0, len(f.Genre))
	for _, g := range f.Genre {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	f.Genre = genres
}

func (f BookForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required.Error("Title must not be empty.")),
		validation.Field(&f.Author,
			validation.Required.Error("Author must not be empty."),
			validation.By(objectIDHex("Author must not be empty.")),
		),
		validation.Field(&f.Summary, validation.Required.Error("Summary must not be empty.")),
		validation.Field(&f.ISBN, validation.Required.Error("ISBN must not be empty.")),
		validation.Field(&f.Genre, validation.Each(validation.By(objectIDHex("Invalid genre.")))),
	)
}

// ToEntity builds the (escaped) draft. ID không hợp lệ bị bỏ qua.
func (f BookForm) ToEntity(id primitive.ObjectID) *Book {
	b := &Book{
		ID:      id,
		Title:   utils.Escape(f.Title),
		Summary: utils.Escape(f.Summary),
		ISBN:    utils.Escape(f.ISBN),
		Genre:   []primitive.ObjectID{},
	}
	if authorID, ok := utils.ParseObjectID(f.Author); ok {
		b.Author = authorID
	}
	for _, g := range f.Genre {
		if genreID, ok := utils.ParseObjectID(g); ok {
			b.Genre = append(b.Genre, genreID)
		}
	}
	return b
}

func objectIDHex(message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, ok := utils.ParseObjectID(s); !ok {
			return errors.New(message)
		}
		return nil
	}
}
