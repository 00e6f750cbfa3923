package bookinstance

import "locallibrary/internal/shared/response"

var (
	ErrBookInstanceNotFound = response.NotFound("Book copy not found")
)
