package genre

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared/utils"
)

// GenreForm - POST /catalog/genre/create, POST /catalog/genre/:id/update
type GenreForm struct {
	Name string `json:"name" form:"name"`
}

// Normalize trim whitespace, gọi trước Validate
func (f *GenreForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
}

func (f GenreForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required.Error("Genre name must contain at least 3 characters"),
			validation.RuneLength(MinNameLength, MaxNameLength).Error("Genre name must contain between 3 and 100 characters"),
		),
	)
}

// ToEntity builds the (escaped) draft. id = NilObjectID cho genre mới.
func (f GenreForm) ToEntity(id primitive.ObjectID) *Genre {
	return &Genre{
		ID:   id,
		Name: utils.Escape(f.Name),
	}
}
