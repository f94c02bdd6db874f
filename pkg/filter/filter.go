// Package filter selects subsets of stored records. A FilterSet is a partial
// constraint specification; constraints are AND-combined and an absent field
// means no restriction on that dimension.
package filter

import (
	"fmt"
	"strings"

	"github.com/strandhq/strand/pkg/record"
)

// Set is a structured, partial filter over record properties. Nil fields are
// unconstrained. The JSON form doubles as the "filters applied" echo in API
// responses, so absent constraints are omitted.
type Set struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// IsEmpty reports whether no constraint is set. An empty set matches
// every record.
func (f Set) IsEmpty() bool {
	return f.IsPalindrome == nil &&
		f.MinLength == nil &&
		f.MaxLength == nil &&
		f.WordCount == nil &&
		f.ContainsCharacter == nil
}

// ConflictingFiltersError is returned when a set is structurally valid but
// unsatisfiable, so the caller can surface the condition instead of silently
// matching nothing.
type ConflictingFiltersError struct {
	MinLength int
	MaxLength int
}

func (e ConflictingFiltersError) Error() string {
	return fmt.Sprintf("conflicting filters: min_length %d exceeds max_length %d", e.MinLength, e.MaxLength)
}

// Validate rejects unsatisfiable sets.
func (f Set) Validate() error {
	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return ConflictingFiltersError{MinLength: *f.MinLength, MaxLength: *f.MaxLength}
	}
	return nil
}

// Match returns the records satisfying every present constraint, preserving
// input order. Pure over its inputs; records are never mutated.
func Match(records []*record.Record, f Set) []*record.Record {
	if f.IsEmpty() {
		return records
	}

	matched := make([]*record.Record, 0, len(records))
	for _, rec := range records {
		if matches(rec, f) {
			matched = append(matched, rec)
		}
	}

	return matched
}

// matches checks a single record against all present constraints in one pass.
func matches(rec *record.Record, f Set) bool {
	props := rec.Properties

	if f.IsPalindrome != nil && props.IsPalindrome != *f.IsPalindrome {
		return false
	}
	if f.MinLength != nil && props.Length < *f.MinLength {
		return false
	}
	if f.MaxLength != nil && props.Length > *f.MaxLength {
		return false
	}
	if f.WordCount != nil && props.WordCount != *f.WordCount {
		return false
	}
	if f.ContainsCharacter != nil {
		// Case-insensitive containment against the value itself, not the
		// case-sensitive frequency map.
		if !strings.Contains(strings.ToLower(rec.Value), strings.ToLower(*f.ContainsCharacter)) {
			return false
		}
	}

	return true
}
