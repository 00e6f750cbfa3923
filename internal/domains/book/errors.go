package book

import "locallibrary/internal/shared/response"

// ErrBookNotFound: id không khớp với book nào (HTTP 404)
var ErrBookNotFound = response.NotFound("Book not found")
