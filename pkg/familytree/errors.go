package familytree

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrInstanceNotFound indicates no record exists for a kind and id
	ErrInstanceNotFound = errors.New("instance not found")

	// ErrMissingField indicates a required field was absent from a dictionary
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidField indicates a field was present but had the wrong shape
	ErrInvalidField = errors.New("invalid field")

	// ErrEventLinkMissing indicates a person does not reference the event
	// that is being unlinked from it
	ErrEventLinkMissing = errors.New("event link not present on person")
)

// InstanceNotFoundError reports the kind and id used in a failed lookup.
type InstanceNotFoundError struct {
	Kind Kind
	ID   string
}

func (e *InstanceNotFoundError) Error() string {
	return fmt.Sprintf("instance of %s not found with id of %s", e.Kind, e.ID)
}

func (e *InstanceNotFoundError) Unwrap() error {
	return ErrInstanceNotFound
}

// FieldError represents a dictionary field that could not be decoded
type FieldError struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s field %q: %v", e.Kind, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// LinkError represents a failed back-reference update on a person
type LinkError struct {
	PersonID string
	URL      string
	Err      error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link %s on person %s: %v", e.URL, e.PersonID, e.Err)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}
