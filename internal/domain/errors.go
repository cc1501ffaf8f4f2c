package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. latitude out of range, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnavailable is returned by collaborator clients (remote predictor, fit
// engine, alternative engine) when the collaborator cannot produce a usable
// answer. Strategy chains treat it as "try the next strategy".
var ErrUnavailable = errors.New("collaborator unavailable")
