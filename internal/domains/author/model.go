package author

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/shared"
)

// Constants for validation
const (
	MaxNameLength = 100
)

// Author represents a book author.
// Name, URL, Lifespan... là derived attributes, tính khi đọc, không lưu DB.
type Author struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"first_name"`
	FamilyName  string             `bson:"family_name"`
	DateOfBirth *time.Time         `bson:"date_of_birth,omitempty"`
	DateOfDeath *time.Time         `bson:"date_of_death,omitempty"`
}

// Name returns "family_name, first_name", or "" if either part is missing
func (a *Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// URL is the author's detail page path
func (a *Author) URL() string {
	return "/catalog/author/" + a.ID.Hex()
}

// Lifespan returns "Jan 2, 1950 - Mar 4, 2010", only the birth date if the
// author is alive, or "" when the birth date is unknown
func (a *Author) Lifespan() string {
	if a.DateOfBirth == nil {
		return ""
	}

	lifespan := a.DateOfBirth.Format(shared.DateMedLayout)
	if a.DateOfDeath != nil {
		lifespan += " - " + a.DateOfDeath.Format(shared.DateMedLayout)
	}
	return lifespan
}

// DateOfBirthISO is the yyyy-mm-dd value for date inputs, "" if unset
func (a *Author) DateOfBirthISO() string {
	return isoDate(a.DateOfBirth)
}

// DateOfDeathISO is the yyyy-mm-dd value for date inputs, "" if unset
func (a *Author) DateOfDeathISO() string {
	return isoDate(a.DateOfDeath)
}

func isoDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(shared.ISODateLayout)
}

// Detail là Author cùng các Book của author đó
type Detail struct {
	Author *Author
	Books  []shared.BookSummary
}
