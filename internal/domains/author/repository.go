package author

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared"
)

// Repository defines data access for authors
type Repository interface {
	// Create inserts a new author, assigning its ID
	Create(ctx context.Context, author *Author) error

	// FindByID returns ErrAuthorNotFound if not exists
	FindByID(ctx context.Context, id primitive.ObjectID) (*Author, error)

	// FindByIDs returns the authors that exist among ids
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Author, error)

	// List returns all authors sorted by family name ascending
	List(ctx context.Context) ([]Author, error)

	// Update replaces mutable fields, identity preserved.
	// Returns ErrAuthorNotFound if not exists
	Update(ctx context.Context, author *Author) error

	// Delete is a no-op if the author does not exist
	Delete(ctx context.Context, id primitive.ObjectID) error

	Count(ctx context.Context) (int64, error)

	// FindBooks returns {title, summary} of every book written by the author
	FindBooks(ctx context.Context, id primitive.ObjectID) ([]shared.BookSummary, error)
}
