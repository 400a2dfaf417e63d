// Package memory implements storage.KeyValue on a map. Nothing outlives
// the process; it backs tests and the "memory" driver.
package memory

import (
	"github.com/aanand-mishra/student-roster/internal/storage"
)

var _ storage.KeyValue = (*Memory)(nil)

// Memory is a map-backed slot. It is not safe for concurrent use.
type Memory struct {
	items map[string]string

	// FailSet, when non-nil, is returned by SetItem instead of writing.
	FailSet error
}

// New returns an empty slot.
func New() *Memory {
	return &Memory{items: map[string]string{}}
}

// Open adapts New to storage.Opener. The path is ignored.
func Open(string) (storage.KeyValue, error) {
	return New(), nil
}

// GetItem returns the value for key; ok is false when it was never set.
func (m *Memory) GetItem(key string) (string, bool, error) {
	v, ok := m.items[key]
	return v, ok, nil
}

// SetItem stores value under key, or returns FailSet when that is set.
func (m *Memory) SetItem(key, value string) error {
	if m.FailSet != nil {
		return m.FailSet
	}
	m.items[key] = value
	return nil
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (m *Memory) RemoveItem(key string) error {
	delete(m.items, key)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
