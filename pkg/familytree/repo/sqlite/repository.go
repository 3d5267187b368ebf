// Package sqlite implements familytree.Store on top of a private in-memory
// SQLite database. The database lives only as long as the Repository; it is
// a query engine for records, not a durable store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/tendant/family-tree/pkg/familytree"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements familytree.Store using SQLite
type Repository struct {
	db *sql.DB
}

// New opens a fresh in-memory database and creates the records table.
func New(ctx context.Context) (*Repository, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Close releases the database. All records are discarded.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Get(ctx context.Context, key familytree.Key) (familytree.Dictionary, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM records WHERE kind = ? AND id = ?`,
		string(key.Kind), key.ID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &familytree.InstanceNotFoundError{Kind: key.Kind, ID: key.ID}
	}
	if err != nil {
		return nil, fmt.Errorf("select record %s: %w", key, err)
	}

	var record familytree.Dictionary
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", key, err)
	}
	return record, nil
}

func (r *Repository) Put(ctx context.Context, key familytree.Key, record familytree.Dictionary) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", key, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO records (kind, id, data) VALUES (?, ?, ?)
		 ON CONFLICT (kind, id) DO UPDATE SET data = excluded.data`,
		string(key.Kind), key.ID, string(data),
	)
	if err != nil {
		return fmt.Errorf("upsert record %s: %w", key, err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, key familytree.Key) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM records WHERE kind = ? AND id = ?`,
		string(key.Kind), key.ID,
	)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", key, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record %s: %w", key, err)
	}
	if n == 0 {
		return &familytree.InstanceNotFoundError{Kind: key.Kind, ID: key.ID}
	}
	return nil
}
