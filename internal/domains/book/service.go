package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared"
)

// Service defines business logic for the book pages
type Service interface {
	// List returns all books sorted by title with their author resolved
	List(ctx context.Context) ([]ListItem, error)

	// GetDetail resolves author, genres and copies.
	// Errors: ErrBookNotFound
	GetDetail(ctx context.Context, id primitive.ObjectID) (*Detail, error)

	// GetByID is used to pre-populate the update form.
	// Errors: ErrBookNotFound
	GetByID(ctx context.Context, id primitive.ObjectID) (*Book, error)

	// FormOptions returns all authors and genres for the create/update form
	FormOptions(ctx context.Context) (*FormOptions, error)

	// Create validates the form and the author/genre references.
	// On failure returns the draft and errors without writing anything.
	Create(ctx context.Context, form *BookForm) (*Book, []shared.FieldError, error)

	// Update validates like Create, then replaces the record in place.
	// Errors: ErrBookNotFound
	Update(ctx context.Context, id primitive.ObjectID, form *BookForm) (*Book, []shared.FieldError, error)

	// Delete removes the book unless copies still reference it.
	// A missing book is a no-op.
	Delete(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error)
}
