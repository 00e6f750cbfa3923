package genre

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared"
)

// Constants for validation
const (
	MinNameLength = 3
	MaxNameLength = 100
)

// Genre represents a book category, vd "Fantasy", "Poetry"
type Genre struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// URL is the genre's detail page path
func (g *Genre) URL() string {
	return "/catalog/genre/" + g.ID.Hex()
}

// Detail là Genre cùng các Book tham chiếu tới nó
type Detail struct {
	Genre *Genre
	Books []shared.BookSummary
}

// DeleteResult: Blocked = true khi vẫn còn Book tham chiếu, Detail chứa danh sách đó
type DeleteResult struct {
	Blocked bool
	Detail  *Detail
}
