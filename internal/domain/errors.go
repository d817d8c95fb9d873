package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a payload fails field-level validation.
	// ValidationErrors unwraps to it.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a composite identifier is malformed or
	// carries a non-numeric segment.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidQuery is returned when a query parameter holds a value outside
	// of its closed enumeration.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrConflictingFilters is returned when more than one single-field title
	// filter is supplied at once.
	ErrConflictingFilters = errors.New("conflicting filter parameters")

	// ErrMalformedPayload is returned when a request body is not valid JSON.
	ErrMalformedPayload = errors.New("invalid JSON")

	// ErrNotFound is returned when an entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrLabelDeleted is returned when a custom label has already been
	// deleted. The API layer reports it as not found.
	ErrLabelDeleted = errors.New("custom label already deleted")

	// ErrNotDeletable is returned when an entity type cannot be deleted in
	// its current state, e.g. a managed package.
	ErrNotDeletable = errors.New("entity cannot be deleted")

	// ErrConfigurationMissing is returned when the tenant has no stored
	// RM API credentials.
	ErrConfigurationMissing = errors.New("RM API credentials are not configured")

	// ErrInvalidCredentials is returned when the RM API rejects credentials
	// that are about to be saved.
	ErrInvalidCredentials = errors.New("invalid KB API credentials")
)
