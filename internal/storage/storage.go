// Package storage defines KeyValue, the persistent slot contract the
// roster writes its snapshot into. It mirrors the browser's localStorage:
// string keys, string values, whole-value overwrite.
//
// WHY AN INTERFACE?
// ─────────────────
// The roster store should not know or care where its snapshot lives. By
// depending only on this interface:
//
//   - Switching backends = pick another driver in the config file.
//     Zero store changes.
//
//   - Writing tests = pass the in-memory implementation.
//     No database file needed for unit tests.
package storage

import (
	"errors"
	"fmt"
)

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// ErrUnknownDriver is returned by Open for a driver name it does not know.
var ErrUnknownDriver = errors.New("unknown storage driver")

// KeyValue is the persistent slot contract.
type KeyValue interface {
	// GetItem returns the value stored under key. ok is false (and err nil)
	// when the key has never been set.
	GetItem(key string) (value string, ok bool, err error)

	// SetItem stores value under key, overwriting any prior value.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error

	// Close releases the backend's resources.
	Close() error
}

// Opener builds a KeyValue for a storage path.
type Opener func(path string) (KeyValue, error)

// Open looks driver up in openers and opens path with it.
//
// The driver packages import this one, so the caller supplies the table
// instead of storage importing them back.
func Open(driver, path string, openers map[string]Opener) (KeyValue, error) {
	open, ok := openers[driver]
	if !ok {
		return nil, fmt.Errorf("storage.Open: %w: %q", ErrUnknownDriver, driver)
	}
	kv, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("storage.Open: %s: %w", driver, err)
	}
	return kv, nil
}
