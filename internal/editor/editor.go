// Package editor is the presentation controller that sits between a user
// interface (the HTTP API, the CLI, the interactive shell) and the roster
// store.
//
// It validates forms before they reach the store, turns store outcomes
// into user-facing messages, and asks before deleting. The messages and
// the question go through the Notifier and Confirmer interfaces, so the
// store never talks to the user and every adapter can plug in its own
// way of doing so.
package editor

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/student-roster/internal/roster"
	"github.com/aanand-mishra/student-roster/internal/types"
)

// User-facing messages.
const (
	MsgAdded         = "Student added successfully."
	MsgUpdated       = "Student updated successfully."
	MsgDeleted       = "Student deleted."
	MsgDuplicateID   = "Student ID already exists, please enter another one."
	MsgIncomplete    = "Please fill in every field."
	MsgGPARange      = "GPA must be between 0 and 4."
	MsgSaveFailed    = "Could not save the roster."
	MsgConfirmDelete = "Are you sure you want to delete this student?"
)

// Kind classifies a notification.
type Kind int

const (
	Success Kind = iota
	Failure
)

func (k Kind) String() string {
	if k == Success {
		return "success"
	}
	return "failure"
}

// Notifier shows a message to the user.
type Notifier interface {
	Notify(kind Kind, message string)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(kind Kind, message string)

func (f NotifyFunc) Notify(kind Kind, message string) { f(kind, message) }

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm answers yes without asking. Use it where the request
// itself is the confirmation, e.g. an HTTP DELETE or `delete --yes`.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

// LogNotifier writes notifications to a logger.
func LogNotifier(log *slog.Logger) Notifier {
	return NotifyFunc(func(kind Kind, message string) {
		if kind == Failure {
			log.Warn(message)
			return
		}
		log.Info(message)
	})
}

// Row is one line of the rendered roster table.
type Row struct {
	No        int    `json:"no"        yaml:"no"`
	StudentID string `json:"studentId" yaml:"studentId"`
	FullName  string `json:"fullName"  yaml:"fullName"`
	BirthDate string `json:"birthDate" yaml:"birthDate"`
	ClassName string `json:"className" yaml:"className"`
	GPA       string `json:"gpa"       yaml:"gpa"`
}

// Editor drives a roster.Store on behalf of one user interface. Its
// methods are safe to call from several goroutines; each call runs to
// completion before the next reaches the store.
type Editor struct {
	mu      sync.Mutex
	store   *roster.Store
	notify  Notifier
	confirm Confirmer
	log     *slog.Logger
}

// New builds an Editor. A nil notify or log falls back to logging on
// slog.Default; a nil confirm refuses every delete.
func New(store *roster.Store, notify Notifier, confirm Confirmer, log *slog.Logger) *Editor {
	if log == nil {
		log = slog.Default()
	}
	if notify == nil {
		notify = LogNotifier(log)
	}
	if confirm == nil {
		confirm = ConfirmFunc(func(string) bool { return false })
	}
	return &Editor{store: store, notify: notify, confirm: confirm, log: log}
}

// Submit validates f and hands it to the store: an add when idle, an
// update of the row being edited otherwise.
func (e *Editor) Submit(f Form) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := e.validate(f)
	if err != nil {
		return err
	}

	_, editing := e.store.EditTarget()
	if err := e.store.Submit(r); err != nil {
		return e.fail("submit", r.StudentID, err)
	}

	if editing {
		e.log.Info("student updated", slog.String("id", r.StudentID))
		e.notify.Notify(Success, MsgUpdated)
	} else {
		e.log.Info("student added", slog.String("id", r.StudentID))
		e.notify.Notify(Success, MsgAdded)
	}
	return nil
}

// Create validates f and appends it, returning the new row index.
func (e *Editor) Create(f Form) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := e.validate(f)
	if err != nil {
		return 0, err
	}
	if err := e.store.Add(r); err != nil {
		return 0, e.fail("add", r.StudentID, err)
	}

	e.log.Info("student added", slog.String("id", r.StudentID))
	e.notify.Notify(Success, MsgAdded)
	return e.store.Len() - 1, nil
}

// Replace validates f and writes it over row i, whatever the edit state.
func (e *Editor) Replace(i int, f Form) (types.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := e.validate(f)
	if err != nil {
		return types.Record{}, err
	}
	if err := e.store.Update(i, r); err != nil {
		return types.Record{}, e.fail("update", r.StudentID, err)
	}

	e.log.Info("student updated", slog.Int("index", i), slog.String("id", r.StudentID))
	e.notify.Notify(Success, MsgUpdated)
	return r, nil
}

// Edit selects row i for editing and returns the form to prefill.
func (e *Editor) Edit(i int) (Form, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := e.store.BeginEdit(i)
	if err != nil {
		e.log.Error("edit of unknown row", slog.Int("index", i), slog.String("error", err.Error()))
		return Form{}, err
	}
	return FormFromRecord(r), nil
}

// Cancel leaves edit mode; the next Submit adds.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.CancelEdit()
}

// Editing returns the row being edited, if any.
func (e *Editor) Editing() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.EditTarget()
}

// Delete asks for confirmation and removes row i. It returns false with a
// nil error when the user declines.
func (e *Editor) Delete(i int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := e.store.Get(i)
	if err != nil {
		e.log.Error("delete of unknown row", slog.Int("index", i), slog.String("error", err.Error()))
		return false, err
	}
	if !e.confirm.Confirm(MsgConfirmDelete) {
		e.log.Debug("delete declined", slog.String("id", r.StudentID))
		return false, nil
	}
	if err := e.store.Delete(i); err != nil {
		return false, e.fail("delete", r.StudentID, err)
	}

	e.log.Info("student deleted", slog.String("id", r.StudentID))
	e.notify.Notify(Success, MsgDeleted)
	return true, nil
}

// Get returns row i as a form.
func (e *Editor) Get(i int) (Form, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := e.store.Get(i)
	if err != nil {
		return Form{}, err
	}
	return FormFromRecord(r), nil
}

// Rows renders the roster for display, numbered from 1.
func (e *Editor) Rows() []Row {
	e.mu.Lock()
	defer e.mu.Unlock()

	records := e.store.List()
	rows := make([]Row, 0, len(records))
	for i, r := range records {
		rows = append(rows, Row{
			No:        i + 1,
			StudentID: r.StudentID,
			FullName:  r.FullName,
			BirthDate: r.FormattedBirthDate(),
			ClassName: r.ClassName,
			GPA:       r.FormattedGPA(),
		})
	}
	return rows
}

// Flush persists the roster; call it on shutdown.
func (e *Editor) Flush() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Flush()
}

func (e *Editor) validate(f Form) (types.Record, error) {
	r, err := Validate(f)
	switch {
	case err == nil:
		return r, nil
	case errors.Is(err, ErrGPARange):
		e.notify.Notify(Failure, MsgGPARange)
	default:
		e.notify.Notify(Failure, MsgIncomplete)
	}
	e.log.Debug("form rejected", slog.String("error", err.Error()))
	return types.Record{}, err
}

// fail reports a store error to the user and passes it on.
func (e *Editor) fail(op, id string, err error) error {
	switch {
	case roster.IsUserError(err):
		e.notify.Notify(Failure, MsgDuplicateID)
	case errors.Is(err, roster.ErrNotFound):
		e.log.Error(op+" of unknown row", slog.String("id", id), slog.String("error", err.Error()))
	default:
		e.log.Error(op+" failed", slog.String("id", id), slog.String("error", err.Error()))
		e.notify.Notify(Failure, MsgSaveFailed)
	}
	return err
}
