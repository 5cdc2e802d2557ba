package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing business name, malformed slug).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would violate a uniqueness rule,
// most commonly a slug that is already taken by another business.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUpstream is returned when a third-party API (Google Places) fails or
// answers with an error status. Handlers should map this to HTTP 502.
var ErrUpstream = errors.New("upstream error")

// ErrUnavailable is returned when a feature is switched off by configuration,
// e.g. the Places proxy without an API key. Handlers should map this to HTTP 503.
var ErrUnavailable = errors.New("unavailable")
