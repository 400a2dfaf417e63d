// Package student contains the HTTP handlers for the roster.
//
// HANDLER PATTERN - THE CLOSURE / FACTORY PATTERN:
// ─────────────────────────────────────────────────
// Each exported function takes the dependencies (the roster) and returns
// an http.HandlerFunc that closes over them:
//
//	router.HandleFunc("POST /api/students", student.New(roster))
//	//                                              ^^^^^^^^^^^
//	//                        New(roster) runs ONCE at startup;
//	//                        the returned func runs per request.
//
// Rows are addressed by their 0-based position in the list, the same
// index the roster page used for its edit and delete buttons.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-roster/internal/editor"
	"github.com/aanand-mishra/student-roster/internal/roster"
	"github.com/aanand-mishra/student-roster/internal/types"
	"github.com/aanand-mishra/student-roster/internal/utils/response"
)

// Roster is what the handlers need from the editor.
type Roster interface {
	Create(f editor.Form) (int, error)
	Replace(i int, f editor.Form) (types.Record, error)
	Delete(i int) (bool, error)
	Get(i int) (editor.Form, error)
	Rows() []editor.Row
}

var errNotConfirmed = errors.New("delete was not confirmed")

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
// Request body (JSON):
//
//	{ "studentId": "SV01", "fullName": "Nguyen Van A",
//	  "birthDate": "2003-04-05", "className": "K1", "gpa": 3.5 }
//
// Success response (201 Created):
//
//	{ "index": 0 }
//
// Error responses:
//
//	400 Bad Request  - empty body, malformed JSON, or failed validation
//	409 Conflict     - the student id is already on the roster
//	500 Internal     - the roster could not be saved
//
// ─────────────────────────────────────────────────────────────────────────────
func New(roster Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		form, ok := decodeForm(w, r)
		if !ok {
			return
		}

		index, err := roster.Create(form)
		if err != nil {
			writeError(w, err)
			return
		}

		slog.Info("student created", slog.Int("index", index), slog.String("id", form.StudentID))
		response.WriteJSON(w, http.StatusCreated, map[string]int{"index": index})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
// Returns the table rows in display order; [] when the roster is empty.
//
//	[ { "no": 1, "studentId": "SV01", "fullName": "Nguyen Van A",
//	    "birthDate": "05/04/2003", "className": "K1", "gpa": "3.50" } ]
//
// ─────────────────────────────────────────────────────────────────────────────
func GetList(roster Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")
		response.WriteJSON(w, http.StatusOK, roster.Rows())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByIndex handles GET /api/students/{index}
// Returns the row's raw form values, ready to prefill an edit form.
//
// Error responses:
//
//	400 Bad Request  - index is not an integer
//	404 Not Found    - no row at index
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByIndex(roster Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := pathIndex(w, r)
		if !ok {
			return
		}
		slog.Info("getting a student", slog.Int("index", index))

		form, err := roster.Get(index)
		if err != nil {
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, form)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{index}
// Replaces ALL fields of the row; the body has the same shape as POST.
// The row keeps its position. Keeping its own id is fine; taking another
// row's id is a 409.
// ─────────────────────────────────────────────────────────────────────────────
func Update(roster Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := pathIndex(w, r)
		if !ok {
			return
		}
		slog.Info("updating a student", slog.Int("index", index))

		form, ok := decodeForm(w, r)
		if !ok {
			return
		}

		updated, err := roster.Replace(index, form)
		if err != nil {
			writeError(w, err)
			return
		}

		slog.Info("student updated", slog.Int("index", index))
		response.WriteJSON(w, http.StatusOK, editor.FormFromRecord(updated))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{index}
// Later rows move up by one.
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(roster Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := pathIndex(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a student", slog.Int("index", index))

		deleted, err := roster.Delete(index)
		if err != nil {
			writeError(w, err)
			return
		}
		if !deleted {
			response.WriteJSON(w, http.StatusConflict, response.GeneralError(errNotConfirmed))
			return
		}

		slog.Info("student deleted", slog.Int("index", index))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// pathIndex parses {index}. It writes the 400 itself and reports false
// when the value is not an integer.
func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid index: must be an integer")))
		return 0, false
	}
	return index, true
}

// decodeForm reads the JSON body. It writes the 400 itself and reports
// false when the body is empty or malformed.
func decodeForm(w http.ResponseWriter, r *http.Request) (editor.Form, bool) {
	var form editor.Form

	err := json.NewDecoder(r.Body).Decode(&form)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return form, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return form, false
	}
	return form, true
}

// writeError maps an editor or store error to a status code.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case editor.IsValidationError(err):
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(validateErrs))
			return
		}
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
	case roster.IsUserError(err):
		response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
	case errors.Is(err, roster.ErrNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
	default:
		slog.Error("roster operation failed", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
	}
}
