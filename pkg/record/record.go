// Package record defines the stored string record type.
package record

import (
	"time"

	"github.com/strandhq/strand/pkg/analyze"
)

// Record represents one analyzed string. Records are immutable once built:
// the id is content-derived, the properties are a pure function of the value,
// and the creation time is fixed at construction.
type Record struct {
	// ID is the content-addressed identifier (SHA-256 of the value, hex).
	// Always equal to Properties.SHA256Hash.
	ID string `json:"id"`

	// Value is the original string exactly as submitted.
	Value string `json:"value"`

	// Properties is the derived property set, computed once at creation.
	Properties analyze.Properties `json:"properties"`

	// CreatedAt is the UTC insertion timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// New builds a record for the given value, computing its identity and
// properties and stamping the current UTC time.
func New(value string) *Record {
	return &Record{
		ID:         analyze.Identity(value),
		Value:      value,
		Properties: analyze.Analyze(value),
		CreatedAt:  time.Now().UTC(),
	}
}
