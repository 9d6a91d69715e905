package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. unknown white label, malformed rebate query).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidWhiteLabel is returned when a stored or upstream record names a
// white label outside the registry. It signals a data integrity problem, not
// a bad request, and is logged separately from transport failures.
var ErrInvalidWhiteLabel = errors.New("invalid white label")

// ErrUpstream is returned when an external collaborator (the rebate provider)
// fails or answers with a body that does not have the expected shape.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrUpstream = errors.New("upstream error")
