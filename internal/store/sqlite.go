package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/opencrew/orgcli/internal/dbx"
)

// sqliteKV runs the key/value queries against any dbx.DBTX, so the same code
// serves both the plain connection and an open transaction.
type sqliteKV struct {
	db dbx.DBTX
}

func (r *sqliteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM local_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get local_state[%s]: %w", key, err)
	}
	return value, nil
}

func (r *sqliteKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO local_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set local_state[%s]: %w", key, err)
	}
	return nil
}

func (r *sqliteKV) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM local_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete local_state[%s]: %w", key, err)
	}
	return nil
}

func (r *sqliteKV) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM local_state`)
	if err != nil {
		return fmt.Errorf("failed to clear local_state: %w", err)
	}
	return nil
}

func (r *sqliteKV) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM local_state`)
	if err != nil {
		return nil, fmt.Errorf("failed to list local_state: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan local_state row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate local_state rows: %w", err)
	}

	return result, nil
}

// SQLiteKV is the durable KV backed by the client's SQLite database.
type SQLiteKV struct {
	sqliteKV
	conn *sql.DB
}

// NewSQLiteKV wraps an open database handle. The local_state table must exist
// (see Open, which applies the embedded migrations).
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{sqliteKV: sqliteKV{db: db}, conn: db}
}

// Update runs fn inside a single transaction; every write either commits
// together or rolls back together.
func (s *SQLiteKV) Update(ctx context.Context, fn func(ctx context.Context, kv KV) error) error {
	return dbx.WithTx(ctx, s.conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &sqliteKV{db: tx})
	})
}

var _ TxKV = (*SQLiteKV)(nil)
