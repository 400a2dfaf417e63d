// Package roster holds the in-memory student roster and keeps it in sync
// with a persistent key-value slot.
//
// The store owns an ordered slice of records (insertion order is display
// order) and an optional edit target. Every successful Add, Update or
// Delete writes the whole roster back to the slot; there is no diffing.
// A Store is meant for a single caller at a time and does no locking.
package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
)

const (
	// SlotKey is the key the roster snapshot is stored under.
	SlotKey = "students"

	// CorruptKey receives an unreadable snapshot before the store starts
	// over with an empty roster.
	CorruptKey = SlotKey + ".corrupt"

	idle = -1
)

// Store is the roster. Build one with Open.
type Store struct {
	kv  storage.KeyValue
	log *slog.Logger

	records    []types.Record
	editTarget int
}

// Open builds a Store and hydrates it from kv.
//
// A missing slot gives an empty roster. A slot that fails to decode is
// logged, copied to CorruptKey and also gives an empty roster; the
// original value is only overwritten by the next successful mutation.
// An error is returned only when kv itself cannot be read.
func Open(kv storage.KeyValue, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		kv:         kv,
		log:        log,
		records:    make([]types.Record, 0),
		editTarget: idle,
	}
	if err := s.hydrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) hydrate() error {
	data, ok, err := s.kv.GetItem(SlotKey)
	if err != nil {
		return fmt.Errorf("roster.Open: read slot: %w", err)
	}
	if !ok {
		s.log.Debug("no stored roster, starting empty")
		return nil
	}

	records, err := Decode(data)
	if err != nil {
		s.log.Warn("stored roster is unreadable, starting empty",
			slog.String("error", err.Error()),
			slog.String("backup_key", CorruptKey))
		if err := s.kv.SetItem(CorruptKey, data); err != nil {
			s.log.Error("failed to back up unreadable roster",
				slog.String("error", err.Error()))
		}
		return nil
	}

	s.records = records
	s.log.Debug("roster loaded", slog.Int("count", len(records)))
	return nil
}

// Backup returns the unreadable snapshot saved under CorruptKey, if any.
func (s *Store) Backup() (string, bool, error) {
	data, ok, err := s.kv.GetItem(CorruptKey)
	if err != nil {
		return "", false, fmt.Errorf("Backup: %w", err)
	}
	return data, ok, nil
}

// DiscardBackup deletes the snapshot saved under CorruptKey. It is not an
// error when there is none.
func (s *Store) DiscardBackup() error {
	if err := s.kv.RemoveItem(CorruptKey); err != nil {
		return fmt.Errorf("DiscardBackup: %w", err)
	}
	s.log.Info("discarded unreadable roster backup", slog.String("key", CorruptKey))
	return nil
}

// persist writes the full roster to the slot.
func (s *Store) persist() error {
	data, err := Encode(s.records)
	if err != nil {
		return err
	}
	if err := s.kv.SetItem(SlotKey, data); err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	s.log.Debug("roster persisted", slog.Int("count", len(s.records)))
	return nil
}

// Flush writes the roster to the slot even when nothing changed. It is
// meant for shutdown hooks.
func (s *Store) Flush() error {
	if err := s.persist(); err != nil {
		return fmt.Errorf("Flush: %w", err)
	}
	return nil
}

func (s *Store) checkIndex(i int) error {
	if i < 0 || i >= len(s.records) {
		return fmt.Errorf("%w %d (roster has %d)", ErrNotFound, i, len(s.records))
	}
	return nil
}

// Add appends r. It fails with ErrDuplicateID, without touching the
// roster or the slot, when another record already has r's id. If the
// slot write fails the append is undone.
func (s *Store) Add(r types.Record) error {
	if s.IsDuplicateID(r.StudentID) {
		return fmt.Errorf("Add %q: %w", r.StudentID, ErrDuplicateID)
	}

	s.records = append(s.records, r)
	if err := s.persist(); err != nil {
		s.records = s.records[:len(s.records)-1]
		return fmt.Errorf("Add: %w", err)
	}
	return nil
}

// Update replaces the record at index i in place. Keeping the same id is
// allowed; taking the id of any other record fails with ErrDuplicateID.
// On success an edit of row i is finished.
func (s *Store) Update(i int, r types.Record) error {
	if err := s.checkIndex(i); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	for j, other := range s.records {
		if j != i && other.StudentID == r.StudentID {
			return fmt.Errorf("Update %q: %w", r.StudentID, ErrDuplicateID)
		}
	}

	prev := s.records[i]
	s.records[i] = r
	if err := s.persist(); err != nil {
		s.records[i] = prev
		return fmt.Errorf("Update: %w", err)
	}

	if s.editTarget == i {
		s.editTarget = idle
	}
	return nil
}

// Delete removes the record at index i; later records move up by one.
// The edit target follows its record: deleting it ends the edit, deleting
// an earlier row shifts it.
func (s *Store) Delete(i int) error {
	if err := s.checkIndex(i); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	prev := slices.Clone(s.records)
	s.records = slices.Delete(s.records, i, i+1)
	if err := s.persist(); err != nil {
		s.records = prev
		return fmt.Errorf("Delete: %w", err)
	}

	switch {
	case s.editTarget == i:
		s.editTarget = idle
	case s.editTarget > i:
		s.editTarget--
	}
	return nil
}

// Get returns a copy of the record at index i.
func (s *Store) Get(i int) (types.Record, error) {
	if err := s.checkIndex(i); err != nil {
		return types.Record{}, fmt.Errorf("Get: %w", err)
	}
	return s.records[i], nil
}

// List returns a copy of the roster in display order. Changing the
// returned slice does not change the store.
func (s *Store) List() []types.Record {
	return slices.Clone(s.records)
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// IsDuplicateID reports whether any record has exactly id.
func (s *Store) IsDuplicateID(id string) bool {
	return slices.ContainsFunc(s.records, func(r types.Record) bool {
		return r.StudentID == id
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Edit state
//
//	Idle ──BeginEdit(i)──▶ Editing(i)
//	Editing(i) ──CancelEdit / successful Submit──▶ Idle
//
// In Idle, Submit adds; in Editing(i), Submit replaces row i.
// ─────────────────────────────────────────────────────────────────────────────

// BeginEdit selects row i for editing and returns its current values.
func (s *Store) BeginEdit(i int) (types.Record, error) {
	r, err := s.Get(i)
	if err != nil {
		return types.Record{}, fmt.Errorf("BeginEdit: %w", err)
	}
	s.editTarget = i
	return r, nil
}

// CancelEdit returns to Idle. It is safe to call when not editing.
func (s *Store) CancelEdit() {
	s.editTarget = idle
}

// EditTarget returns the row being edited, if any.
func (s *Store) EditTarget() (int, bool) {
	return s.editTarget, s.editTarget != idle
}

// Submit adds r when Idle and replaces the edit target otherwise. A
// failed submit keeps the current state so the caller can correct the
// form and try again.
func (s *Store) Submit(r types.Record) error {
	if s.editTarget == idle {
		return s.Add(r)
	}
	return s.Update(s.editTarget, r)
}

// IsUserError reports whether err is one the person at the form can fix
// (a duplicate id), as opposed to a storage or programming error. The
// editor has already notified the user about these.
func IsUserError(err error) bool {
	return errors.Is(err, ErrDuplicateID)
}
