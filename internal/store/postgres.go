package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore keeps each slot as one row of the slots table created by
// db.InitPostgres.
type PostgresStore struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresStore wraps an initialized database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// Read fetches the value stored under key.
func (s *PostgresStore) Read(ctx context.Context, key Key) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	var value string
	err := s.DB.QueryRowContext(ctx,
		`SELECT value FROM slots WHERE key = $1`,
		string(key),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Write inserts the slot or replaces its value.
func (s *PostgresStore) Write(ctx context.Context, key Key, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, string(key), string(value))
	if err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

// Remove deletes the slot. Removing an absent slot is not an error.
func (s *PostgresStore) Remove(ctx context.Context, key Key) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM slots WHERE key = $1`, string(key)); err != nil {
		return fmt.Errorf("remove slot %s: %w", key, err)
	}
	return nil
}
