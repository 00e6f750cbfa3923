package author

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared/utils"
)

// AuthorForm - POST /catalog/author/create, POST /catalog/author/:id/update
type AuthorForm struct {
	FirstName   string `json:"first_name" form:"first_name"`
	FamilyName  string `json:"family_name" form:"family_name"`
	DateOfBirth string `json:"date_of_birth" form:"date_of_birth"`
	DateOfDeath string `json:"date_of_death" form:"date_of_death"`
}

// FieldOrder là thứ tự hiển thị lỗi trên form
var FieldOrder = []string{"first_name", "family_name", "date_of_birth", "date_of_death"}

func (f *AuthorForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.FamilyName = strings.TrimSpace(f.FamilyName)
	f.DateOfBirth = strings.TrimSpace(f.DateOfBirth)
	f.DateOfDeath = strings.TrimSpace(f.DateOfDeath)
}

func (f AuthorForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FirstName,
			validation.Required.Error("First name must be specified."),
			validation.RuneLength(1, MaxNameLength).Error("First name must not exceed 100 characters."),
			is.Alphanumeric.Error("First name has non-alphanumeric characters."),
		),
		validation.Field(&f.FamilyName,
			validation.Required.Error("Family name must be specified."),
			validation.RuneLength(1, MaxNameLength).Error("Family name must not exceed 100 characters."),
			is.Alphanumeric.Error("Family name has non-alphanumeric characters."),
		),
		validation.Field(&f.DateOfBirth, utils.ISO8601("Invalid date of birth")),
		validation.Field(&f.DateOfDeath, utils.ISO8601("Invalid date of death")),
	)
}

// ToEntity builds the (escaped) draft. Ngày không hợp lệ => nil.
func (f AuthorForm) ToEntity(id primitive.ObjectID) *Author {
	return &Author{
		ID:          id,
		FirstName:   utils.Escape(f.FirstName),
		FamilyName:  utils.Escape(f.FamilyName),
		DateOfBirth: utils.OptionalDate(f.DateOfBirth),
		DateOfDeath: utils.OptionalDate(f.DateOfDeath),
	}
}
