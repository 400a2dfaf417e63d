// Package response provides helpers for writing consistent JSON HTTP
// responses from the roster API.
//
// Success bodies are whatever the handler returns (a form, a list of rows,
// an index). Error bodies always share one envelope, so API consumers can
// handle every failure the same way.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the envelope returned for error cases:
//
//	{ "status": "error", "error": "field FullName is required" }
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Status string constants.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON sets the JSON content type, writes status, then encodes data.
//
// Order matters: Header() → WriteHeader() → body. Once WriteHeader runs
// the headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any error into the envelope. Use it for everything
// that is not a validator.ValidationErrors: duplicate ids, bad indices,
// decode errors, storage failures.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError turns the validator's per-field errors into one
// readable message:
//
//	{ "status": "error", "error": "field FullName is required, field GPA must be a number" }
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		// birth date is not in the layout given as the tag parameter
		case "datetime":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a date in %s format", e.Field(), e.Param()))
		case "numeric":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a number", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}
