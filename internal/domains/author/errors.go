package author

import "locallibrary/internal/shared/response"

// ErrAuthorNotFound: id không khớp với author nào (HTTP 404)
var ErrAuthorNotFound = response.NotFound("Author not found")
