package book

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/domains/author"
	"locallibrary/internal/domains/genre"
	"locallibrary/internal/shared"
)

// Book references its Author and zero or more Genres by ID.
// Referential integrity được check ở service layer, không phải ở DB.
type Book struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty"`
	Title   string               `bson:"title"`
	Author  primitive.ObjectID   `bson:"author"`
	Summary string               `bson:"summary"`
	ISBN    string               `bson:"isbn"`
	Genre   []primitive.ObjectID `bson:"genre"`
}

// URL is the book's detail page path
func (b *Book) URL() string {
	return "/catalog/book/" + b.ID.Hex()
}

// IsAuthor reports whether id is the book's author (form select)
func (b *Book) IsAuthor(id primitive.ObjectID) bool {
	return b.Author == id
}

// HasGenre reports whether the book is tagged with genre id (form checkboxes)
func (b *Book) HasGenre(id primitive.ObjectID) bool {
	for _, g := range b.Genre {
		if g == id {
			return true
		}
	}
	return false
}

// ListItem là một Book với author đã resolve. Author = nil nếu reference bị dangling.
type ListItem struct {
	Book   Book
	Author *author.Author
}

// Detail là Book với author, genres và các bản copy
type Detail struct {
	Book   *Book
	Author *author.Author
	Genres []genre.Genre
	Copies []shared.CopySummary
}

// FormOptions là danh sách lựa chọn cho form create/update
type FormOptions struct {
	Authors []author.Author
	Genres  []genre.Genre
}

// DeleteResult: Blocked = true khi book vẫn còn copies
type DeleteResult struct {
	Blocked bool
	Detail  *Detail
}
