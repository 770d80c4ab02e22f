package postgres

import (
	"context"
	"database/sql"
	"errors"

	"tango/internal/domain"
)

// KVRepo implements repository.KVRepository on the kv_store table
type KVRepo struct {
	db *sql.DB
}

// NewKVRepo creates a new key-value repository
func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the value stored under key
func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var payload string
	query := `SELECT payload FROM kv_store WHERE key_name = $1`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return []byte(payload), nil
}

// Put replaces the value stored under key in a single statement
func (r *KVRepo) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key_name, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key_name)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, key, string(value))
	return err
}
