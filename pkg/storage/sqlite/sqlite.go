// Package sqlite provides a SQLite-backed storage driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/strandhq/strand/pkg/analyze"
	"github.com/strandhq/strand/pkg/record"
	"github.com/strandhq/strand/pkg/storage"
)

// Driver implements storage.Driver using SQLite as the storage backend.
type Driver struct {
	db *sql.DB
}

// NewDriver creates a new SQLite-backed storer.
// The dbPath can be a file path or ":memory:" for an in-memory database.
func NewDriver(dbPath string) (*Driver, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Driver{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate creates the necessary tables if they don't exist.
func (s *Driver) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS strings (
		id TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		properties TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Put inserts a record. The primary-key constraint makes the uniqueness
// check atomic with the insert.
func (s *Driver) Put(ctx context.Context, rec *record.Record) error {
	if rec == nil {
		return errors.New("cannot store nil record")
	}

	propsJSON, err := json.Marshal(rec.Properties)
	if err != nil {
		return fmt.Errorf("failed to marshal properties: %w", err)
	}

	query := `INSERT OR IGNORE INTO strings (id, value, properties, created_at) VALUES (?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query, rec.ID, rec.Value, string(propsJSON), rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ConflictError{ID: rec.ID}
	}

	return nil
}

// Get retrieves a record by its id.
func (s *Driver) Get(ctx context.Context, id string) (*record.Record, error) {
	query := `SELECT id, value, properties, created_at FROM strings WHERE id = ?`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// Has checks whether a record exists by its id.
func (s *Driver) Has(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM strings WHERE id = ?)`

	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}

	return exists, nil
}

// List returns all records in insertion order.
func (s *Driver) List(ctx context.Context) ([]*record.Record, error) {
	query := `SELECT id, value, properties, created_at FROM strings ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := make([]*record.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Delete removes a record by its id.
func (s *Driver) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM strings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return storage.NotFoundError{ID: id}
	}

	return nil
}

// Count returns the number of stored records.
func (s *Driver) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM strings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	return count, nil
}

// Close closes the underlying database.
func (s *Driver) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*record.Record, error) {
	var (
		rec       record.Record
		propsJSON string
		createdAt string
	)

	if err := row.Scan(&rec.ID, &rec.Value, &propsJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}

	var props analyze.Properties
	if err := json.Unmarshal([]byte(propsJSON), &props); err != nil {
		return nil, fmt.Errorf("failed to unmarshal properties: %w", err)
	}
	rec.Properties = props

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	rec.CreatedAt = ts

	return &rec, nil
}
