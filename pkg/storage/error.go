package storage

// NotFoundError is returned when a record doesn't exist in the store.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return "record not found"
	}

	return "record not found: " + e.ID
}

// ConflictError is returned when a record with the same content-addressed id
// already exists in the store.
type ConflictError struct {
	ID string
}

func (e ConflictError) Error() string {
	if e.ID == "" {
		return "record already exists"
	}

	return "record already exists: " + e.ID
}
