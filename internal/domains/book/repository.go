package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared"
)

// Repository defines data access for books
type Repository interface {
	// Create inserts a new book, assigning its ID
	Create(ctx context.Context, book *Book) error

	// FindByID returns ErrBookNotFound if not exists
	FindByID(ctx context.Context, id primitive.ObjectID) (*Book, error)

	// Exists checks a book reference without fetching it
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)

	// List returns all books sorted by title ascending
	List(ctx context.Context) ([]Book, error)

	// ListSummaries returns {title} of all books sorted by title, for select inputs
	ListSummaries(ctx context.Context) ([]shared.BookSummary, error)

	// Update replaces mutable fields, identity preserved.
	// Returns ErrBookNotFound if not exists
	Update(ctx context.Context, book *Book) error

	// Delete is a no-op if the book does not exist
	Delete(ctx context.Context, id primitive.ObjectID) error

	Count(ctx context.Context) (int64, error)

	// FindCopies returns every book instance referencing the book
	FindCopies(ctx context.Context, id primitive.ObjectID) ([]shared.CopySummary, error)
}
