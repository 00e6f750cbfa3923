package genre

import "locallibrary/internal/shared/response"

// ErrGenreNotFound: id không khớp với genre nào (HTTP 404)
var ErrGenreNotFound = response.NotFound("Genre not found")
