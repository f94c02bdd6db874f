// Package storage
package storage

import (
	"context"

	"github.com/strandhq/strand/pkg/record"
)

// Driver defines the interface for persisting and retrieving string records
// in a storage backend. Records are keyed by their content-addressed id, so
// identity and lookup-by-value are the same operation.
type Driver interface {
	// Put inserts a record. Returns ConflictError if a record with the
	// same id already exists; the existing record is never overwritten.
	// The uniqueness check and the insert are atomic.
	Put(ctx context.Context, rec *record.Record) error

	// Get retrieves a record by its id. Returns NotFoundError if absent.
	Get(ctx context.Context, id string) (*record.Record, error)

	// Has checks whether a record exists by its id.
	Has(ctx context.Context, id string) (bool, error)

	// List returns all records in insertion order. The order is a display
	// convenience, not a contract clients may rely on.
	List(ctx context.Context) ([]*record.Record, error)

	// Delete removes a record by its id. Returns NotFoundError if absent.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close closes the store and releases any resources.
	Close() error
}
