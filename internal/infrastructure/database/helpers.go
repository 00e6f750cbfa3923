package database

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IsNoDocuments kiểm tra error có phải "không tìm thấy document" không
func IsNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// CaseInsensitive collation: locale "en", strength 2 (bỏ qua hoa/thường, giữ dấu)
func CaseInsensitive() *options.Collation {
	return &options.Collation{Locale: "en", Strength: 2}
}
