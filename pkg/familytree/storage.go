package familytree

import (
	"context"
	"fmt"
)

// GetItem retrieves the instance of t identified by id. A missing record
// fails with *InstanceNotFoundError.
func GetItem[M Model](ctx context.Context, store Store, t ModelType[M], id string) (M, error) {
	var zero M
	record, err := store.Get(ctx, Key{Kind: t.Kind, ID: id})
	if err != nil {
		return zero, err
	}
	item, err := t.FromDictionary(record)
	if err != nil {
		return zero, fmt.Errorf("decode stored %s %s: %w", t.Kind, id, err)
	}
	return item, nil
}

// SaveItem stores item under id, overwriting any earlier record.
func SaveItem(ctx context.Context, store Store, item Model, id string) error {
	return store.Put(ctx, Key{Kind: item.Kind(), ID: id}, item.ToDictionary())
}

// DeleteItem removes the instance of kind identified by id. A missing record
// fails with *InstanceNotFoundError.
func DeleteItem(ctx context.Context, store Store, kind Kind, id string) error {
	return store.Delete(ctx, Key{Kind: kind, ID: id})
}
