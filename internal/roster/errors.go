package roster

import "errors"

var (
	// ErrDuplicateID is returned when an add or update would give two
	// records the same student id. The store is left unchanged.
	ErrDuplicateID = errors.New("student id already exists")

	// ErrNotFound is returned for a row index outside the roster. Indices
	// come from a rendered list, so this points at a caller bug.
	ErrNotFound = errors.New("no student at index")

	// ErrCorruptData is returned by Decode for a stored snapshot that is
	// not a well-formed array of records.
	ErrCorruptData = errors.New("corrupt roster snapshot")
)
