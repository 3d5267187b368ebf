package familytree

import (
	"context"
)

// Key identifies a stored record.
type Key struct {
	Kind Kind
	ID   string
}

func (k Key) String() string {
	return k.Kind.String() + "/" + k.ID
}

// Store defines the interface for record persistence. A Store holds one
// dictionary per Key and owns it: callers receive and hand over copies.
//
// Each call is applied atomically on its own. Nothing groups several calls,
// so concurrent writers to the same key are last-write-wins.
type Store interface {
	// Get returns the record stored under key, or an error matching
	// ErrInstanceNotFound.
	Get(ctx context.Context, key Key) (Dictionary, error)

	// Put stores record under key, replacing any previous record.
	Put(ctx context.Context, key Key, record Dictionary) error

	// Delete removes the record stored under key, or returns an error
	// matching ErrInstanceNotFound.
	Delete(ctx context.Context, key Key) error
}
