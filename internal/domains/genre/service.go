package genre

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared"
)

// Service defines business logic for the genre pages
type Service interface {
	// List returns all genres sorted by name
	List(ctx context.Context) ([]Genre, error)

	// GetDetail fetches the genre and its books concurrently.
	// Errors: ErrGenreNotFound
	GetDetail(ctx context.Context, id primitive.ObjectID) (*Detail, error)

	// GetByID is used to pre-populate the update form.
	// Errors: ErrGenreNotFound
	GetByID(ctx context.Context, id primitive.ObjectID) (*Genre, error)

	// Create validates the form. On validation failure it returns the draft
	// and a non-empty error list without writing anything.
	// If a genre with the same name (case-insensitive) exists, that genre is
	// returned instead of inserting a duplicate.
	Create(ctx context.Context, form *GenreForm) (*Genre, []shared.FieldError, error)

	// Update validates like Create, then replaces the name in place.
	// Errors: ErrGenreNotFound
	Update(ctx context.Context, id primitive.ObjectID, form *GenreForm) (*Genre, []shared.FieldError, error)

	// Delete removes the genre unless books still reference it.
	// A missing genre is a no-op.
	Delete(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error)
}
