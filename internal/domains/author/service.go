package author

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared"
)

// Service defines business logic for the author pages
type Service interface {
	List(ctx context.Context) ([]Author, error)

	// GetDetail fetches the author and their books concurrently.
	// Errors: ErrAuthorNotFound
	GetDetail(ctx context.Context, id primitive.ObjectID) (*Detail, error)

	// GetByID is used to pre-populate the update form.
	// Errors: ErrAuthorNotFound
	GetByID(ctx context.Context, id primitive.ObjectID) (*Author, error)

	// Create validates the form; on failure returns the draft and errors
	// without writing anything
	Create(ctx context.Context, form *AuthorForm) (*Author, []shared.FieldError, error)

	// Update validates like Create, then replaces the record in place.
	// Errors: ErrAuthorNotFound
	Update(ctx context.Context, id primitive.ObjectID, form *AuthorForm) (*Author, []shared.FieldError, error)

	// Delete removes the author unconditionally; books keep their
	// (now dangling) author reference
	Delete(ctx context.Context, id primitive.ObjectID) error
}
