package familytree

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Dictionary is the loss-less map representation of a model instance.
type Dictionary = map[string]any

// Kind names an entity type and partitions the Store.
type Kind string

const (
	KindPerson Kind = "person"
	KindEvent  Kind = "event"
)

func (k Kind) String() string {
	return string(k)
}

// Model is implemented by every entity that can be persisted in a Store and
// rendered by the api package.
type Model interface {
	Kind() Kind
	Identifier() string
	ToDictionary() Dictionary
}

// ModelType rebuilds instances of M from their dictionary representation.
// For every instance m, FromDictionary(m.ToDictionary()) reproduces m.
type ModelType[M Model] struct {
	Kind           Kind
	FromDictionary func(Dictionary) (M, error)
}

// NewID returns a new opaque identifier: a random UUID rendered as 32
// lowercase hex characters.
func NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func optionalString(kind Kind, data Dictionary, field string) (string, error) {
	v, ok := data[field]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &FieldError{Kind: kind, Field: field, Err: fmt.Errorf("%w: expected string, got %T", ErrInvalidField, v)}
	}
	return s, nil
}

func requiredString(kind Kind, data Dictionary, field string) (string, error) {
	s, err := optionalString(kind, data, field)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", &FieldError{Kind: kind, Field: field, Err: ErrMissingField}
	}
	return s, nil
}

// stringList accepts both []string (a dictionary built in process) and []any
// (a dictionary decoded from JSON).
func stringList(kind Kind, data Dictionary, field string) ([]string, error) {
	v, ok := data[field]
	if !ok || v == nil {
		return []string{}, nil
	}
	switch items := v.(type) {
	case []string:
		return append([]string{}, items...), nil
	case []any:
		result := make([]string, 0, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, &FieldError{Kind: kind, Field: field, Err: fmt.Errorf("%w: element %d is %T, expected string", ErrInvalidField, i, item)}
			}
			result = append(result, s)
		}
		return result, nil
	default:
		return nil, &FieldError{Kind: kind, Field: field, Err: fmt.Errorf("%w: expected list, got %T", ErrInvalidField, v)}
	}
}
