package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Get returns the stored values for the given keys. Missing keys are absent from the map
func (db *DB) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	rows, err := db.QueryContext(ctx,
		"SELECT key, value FROM cache_entries WHERE key IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		out[key] = value
	}

	return out, rows.Err()
}

// Set upserts all values in a single transaction
func (db *DB) Set(ctx context.Context, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}

	now := time.Now().UTC()
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		for key, value := range values {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO cache_entries (key, value, updated_at)
				VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
			`, key, value, now)
			if err != nil {
				return fmt.Errorf("failed to store %s: %w", key, err)
			}
		}
		return nil
	})
}

// Delete removes the given keys
func (db *DB) Delete(ctx context.Context, keys ...string) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, "DELETE FROM cache_entries WHERE key = ?", key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}
		return nil
	})
}

// Clear removes every cache entry
func (db *DB) Clear(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM cache_entries"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Keys lists stored keys with their last update time
func (db *DB) Keys(ctx context.Context) (map[string]time.Time, error) {
	rows, err := db.QueryContext(ctx, "SELECT key, updated_at FROM cache_entries ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list cache keys: %w", err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var key string
		var updated time.Time
		if err := rows.Scan(&key, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan cache key: %w", err)
		}
		out[key] = updated
	}
	return out, rows.Err()
}
