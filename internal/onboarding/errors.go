package onboarding

import "errors"

// Error kinds surfaced by the engine. Handlers map these to HTTP status
// codes; none of them leaves partial state behind.
var (
	// ErrNotFound is returned for an unknown company or document.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller is not authorized for the
	// company that owns the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is returned for invalid input, such as a REJECT
	// decision without a rejection reason or an unknown document type.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a transition is not legal from the
	// document's current status, or when a concurrent activation race is
	// detected by the store guard.
	ErrConflict = errors.New("conflict")
)
