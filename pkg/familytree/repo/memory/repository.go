package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tendant/family-tree/pkg/familytree"
)

// Repository implements familytree.Store using in-memory storage.
// Records are kept JSON-encoded so callers never share state with the store.
type Repository struct {
	mu      sync.RWMutex
	records map[familytree.Key][]byte
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		records: make(map[familytree.Key][]byte),
	}
}

func (r *Repository) Get(ctx context.Context, key familytree.Key) (familytree.Dictionary, error) {
	r.mu.RLock()
	data, exists := r.records[key]
	r.mu.RUnlock()

	if !exists {
		return nil, &familytree.InstanceNotFoundError{Kind: key.Kind, ID: key.ID}
	}

	var record familytree.Dictionary
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", key, err)
	}
	return record, nil
}

func (r *Repository) Put(ctx context.Context, key familytree.Key, record familytree.Dictionary) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[key] = data
	return nil
}

func (r *Repository) Delete(ctx context.Context, key familytree.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[key]; !exists {
		return &familytree.InstanceNotFoundError{Kind: key.Kind, ID: key.ID}
	}
	delete(r.records, key)
	return nil
}

// Len returns the number of stored records across all kinds.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
