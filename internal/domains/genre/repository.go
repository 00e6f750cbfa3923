package genre

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared"
)

// Repository defines data access for genres
type Repository interface {
	// Create inserts a new genre, assigning its ID
	Create(ctx context.Context, genre *Genre) error

	// FindByID returns ErrGenreNotFound if not exists
	FindByID(ctx context.Context, id primitive.ObjectID) (*Genre, error)

	// FindByName matches case-insensitively.
	// Returns ErrGenreNotFound if not exists
	FindByName(ctx context.Context, name string) (*Genre, error)

	// FindByIDs returns the genres that exist among ids, sorted by name
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Genre, error)

	// List returns all genres sorted by name ascending
	List(ctx context.Context) ([]Genre, error)

	// Update replaces mutable fields, identity preserved.
	// Returns ErrGenreNotFound if not exists
	Update(ctx context.Context, genre *Genre) error

	// Delete is a no-op if the genre does not exist
	Delete(ctx context.Context, id primitive.ObjectID) error

	Count(ctx context.Context) (int64, error)

	// FindBooks returns {title, summary} of every book referencing the genre
	FindBooks(ctx context.Context, id primitive.ObjectID) ([]shared.BookSummary, error)
}
