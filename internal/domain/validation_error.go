package domain

import (
	"fmt"
	"strings"
)

// ValidationError describes one violated rule on one field of a payload.
type ValidationError struct {
	Field   string
	Message string
	Detail  string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// NewValidationError creates a ValidationError whose message is the
// conventional "Invalid <field>" title.
func NewValidationError(field, detail string) ValidationError {
	return ValidationError{
		Field:   field,
		Message: "Invalid " + field,
		Detail:  detail,
	}
}

// ValidationErrors is an ordered list of field errors. Order is significant:
// callers rely on errors appearing in field declaration order.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (v ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Add appends an error for field.
func (v *ValidationErrors) Add(field, detail string) {
	*v = append(*v, NewValidationError(field, detail))
}

// Append appends every error of other.
func (v *ValidationErrors) Append(other ValidationErrors) {
	*v = append(*v, other...)
}

// Err returns nil when there are no errors, so callers can write
// `if err := errs.Err(); err != nil`.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Fields returns the offending field names in order, or nil.
func (v ValidationErrors) Fields() []string {
	var fields []string
	for _, e := range v {
		fields = append(fields, e.Field)
	}
	return fields
}

// Messages returns the error titles in order, or nil.
func (v ValidationErrors) Messages() []string {
	var messages []string
	for _, e := range v {
		messages = append(messages, e.Message)
	}
	return messages
}

// RequestError is a local, pre-upstream rejection of a request parameter.
// It always carries a single error and maps to 400.
type RequestError struct {
	Parameter string
	Message   string
	Err       error
}

// NewRequestError wraps kind (ErrInvalidQuery, ErrConflictingFilters, ...)
// with the parameter name and user-facing message.
func NewRequestError(kind error, parameter, message string) *RequestError {
	return &RequestError{Parameter: parameter, Message: message, Err: kind}
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Parameter == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Parameter, e.Message)
}

// Unwrap returns the error kind.
func (e *RequestError) Unwrap() error {
	return e.Err
}
