package bookinstance

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines data access for book instances
type Repository interface {
	// Create inserts a new copy, assigning its ID
	Create(ctx context.Context, instance *BookInstance) error

	// FindByID returns the copy with its book populated.
	// Returns ErrBookInstanceNotFound if not exists
	FindByID(ctx context.Context, id primitive.ObjectID) (*View, error)

	// List returns every copy with its book populated
	List(ctx context.Context) ([]View, error)

	// Update replaces mutable fields, identity preserved.
	// Returns ErrBookInstanceNotFound if not exists
	Update(ctx context.Context, instance *BookInstance) error

	// Delete is a no-op if the copy does not exist
	Delete(ctx context.Context, id primitive.ObjectID) error

	Count(ctx context.Context) (int64, error)

	// CountByStatus counts copies with the given status
	CountByStatus(ctx context.Context, status string) (int64, error)
}
