package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur during an analysis.
var (
	// ErrMissingStrategy indicates that a required calculator was not supplied.
	ErrMissingStrategy = errors.New("missing calculation strategy")

	// ErrInvalidInput indicates that the dataset is absent or incomplete.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownSeller indicates that a purchase record references a seller
	// that is not part of the dataset.
	ErrUnknownSeller = errors.New("unknown seller")

	// ErrUnknownProduct indicates that a purchase item references a SKU that
	// is not part of the dataset.
	ErrUnknownProduct = errors.New("unknown product")
)

// ValidationError represents an error that occurred during validation.
// It can contain multiple validation failures and unwraps to the error
// kind it was created with.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string

	// Kind is the sentinel this error matches with errors.Is.
	Kind error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%v: validation error for %s: %s", e.Kind, e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("%v: validation errors for %s: %v", e.Kind, e.Entity, e.Errors)
}

// Unwrap returns the error kind, supporting errors.Is against the sentinels.
func (e *ValidationError) Unwrap() error { return e.Kind }

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError of the given kind for
// the given entity.
func NewValidationError(kind error, entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
		Kind:   kind,
	}
}

// ReferenceError reports a purchase record or item that references an
// unknown seller or product. It matches both ErrInvalidInput and the
// specific unknown-reference sentinel.
type ReferenceError struct {
	Ref SkippedReference

	// Err is ErrUnknownSeller or ErrUnknownProduct.
	Err error
}

// Error implements the error interface for ReferenceError.
func (e *ReferenceError) Error() string {
	msg := fmt.Sprintf("reference error: kind=%s, id=%s, record=%d", e.Ref.Kind, e.Ref.ID, e.Ref.RecordIndex)
	if e.Ref.ItemIndex >= 0 {
		msg += fmt.Sprintf(", item=%d", e.Ref.ItemIndex)
	}
	msg += fmt.Sprintf(", err=%v", e.Err)
	if e.Ref.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Ref.Suggestion)
	}
	return msg
}

// Unwrap returns both ErrInvalidInput and the underlying reference error.
func (e *ReferenceError) Unwrap() []error { return []error{ErrInvalidInput, e.Err} }

// NewReferenceError creates a ReferenceError for ref. The underlying error
// is derived from the reference kind.
func NewReferenceError(ref SkippedReference) *ReferenceError {
	err := ErrUnknownProduct
	if ref.Kind == ReferenceSeller {
		err = ErrUnknownSeller
	}
	return &ReferenceError{Ref: ref, Err: err}
}
