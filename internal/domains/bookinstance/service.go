package bookinstance

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared"
)

// Service defines business logic for the book instance pages
type Service interface {
	List(ctx context.Context) ([]View, error)

	// GetDetail errors: ErrBookInstanceNotFound
	GetDetail(ctx context.Context, id primitive.ObjectID) (*View, error)

	// FormOptions returns {title} of every book for the book select
	FormOptions(ctx context.Context) ([]shared.BookSummary, error)

	// Create validates the form and the book reference.
	// On failure returns the draft and errors without writing anything.
	Create(ctx context.Context, form *BookInstanceForm) (*BookInstance, []shared.FieldError, error)

	// Update validates like Create, then replaces the record in place.
	// Errors: ErrBookInstanceNotFound
	Update(ctx context.Context, id primitive.ObjectID, form *BookInstanceForm) (*BookInstance, []shared.FieldError, error)

	// Delete removes the copy unconditionally. A missing copy is a no-op.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
