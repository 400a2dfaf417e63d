package student

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/editor"
	"github.com/aanand-mishra/student-roster/internal/roster"
	"github.com/aanand-mishra/student-roster/internal/storage/memory"
)

const sv01 = `{"studentId":"SV01","fullName":"Nguyen Van A","birthDate":"2003-04-05","className":"K1","gpa":3.5}`

func newServer(t *testing.T, kv *memory.Memory, confirm editor.Confirmer) *http.ServeMux {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := roster.Open(kv, log)
	require.NoError(t, err)
	ed := editor.New(store, editor.LogNotifier(log), confirm, log)

	router := http.NewServeMux()
	router.HandleFunc("POST /api/students", New(ed))
	router.HandleFunc("GET /api/students", GetList(ed))
	router.HandleFunc("GET /api/students/{index}", GetByIndex(ed))
	router.HandleFunc("PUT /api/students/{index}", Update(ed))
	router.HandleFunc("DELETE /api/students/{index}", Delete(ed))
	return router
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndList(t *testing.T) {
	h := newServer(t, memory.New(), editor.AlwaysConfirm)

	rec := do(t, h, http.MethodPost, "/api/students", sv01)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"index":0}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"no":1,"studentId":"SV01","fullName":"Nguyen Van A","birthDate":"05/04/2003","className":"K1","gpa":"3.50"}]`,
		rec.Body.String())
}

func TestListEmptyIsArray(t *testing.T) {
	h := newServer(t, memory.New(), editor.AlwaysConfirm)

	rec := do(t, h, http.MethodGet, "/api/students", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{"empty body", "", http.StatusBadRequest, "request body is empty"},
		{"malformed", "{", http.StatusBadRequest, ""},
		{"missing fields", `{"studentId":"SV02"}`, http.StatusBadRequest, "field FullName is required"},
		{"gpa out of range", strings.Replace(sv01, "3.5", "4.5", 1), http.StatusBadRequest, editor.ErrGPARange.Error()},
		{"duplicate", sv01, http.StatusConflict, roster.ErrDuplicateID.Error()},
		{"exponent gpa", strings.NewReplacer("SV01", "SV02", "3.5", "4e0").Replace(sv01), http.StatusCreated, `"index":1`},
		{"gpa out of range in exponent form", strings.NewReplacer("SV01", "SV02", "3.5", "45e-1").Replace(sv01), http.StatusBadRequest, editor.ErrGPARange.Error()},
		{"leading dot gpa", strings.NewReplacer("SV01", "SV02", "3.5", `".5"`).Replace(sv01), http.StatusCreated, `"index":1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newServer(t, memory.New(), editor.AlwaysConfirm)
			require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/students", sv01).Code)

			rec := do(t, h, http.MethodPost, "/api/students", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status >= http.StatusBadRequest {
				assert.Contains(t, rec.Body.String(), `"status":"error"`)
			}
			assert.Contains(t, rec.Body.String(), tt.errMsg)
		})
	}
}

func TestGetByIndex(t *testing.T) {
	h := newServer(t, memory.New(), editor.AlwaysConfirm)
	do(t, h, http.MethodPost, "/api/students", sv01)

	rec := do(t, h, http.MethodGet, "/api/students/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"studentId":"SV01","fullName":"Nguyen Van A","birthDate":"2003-04-05","className":"K1","gpa":"3.5"}`,
		rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/students/1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/students/abc", "").Code)
}

func TestUpdate(t *testing.T) {
	h := newServer(t, memory.New(), editor.AlwaysConfirm)
	do(t, h, http.MethodPost, "/api/students", sv01)
	do(t, h, http.MethodPost, "/api/students", strings.Replace(sv01, "SV01", "SV02", 1))

	rec := do(t, h, http.MethodPut, "/api/students/1", strings.Replace(sv01, "SV01", "SV09", 1))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"studentId":"SV09"`)

	rec = do(t, h, http.MethodPut, "/api/students/1", sv01)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/students/5", sv01)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete(t *testing.T) {
	h := newServer(t, memory.New(), editor.AlwaysConfirm)
	do(t, h, http.MethodPost, "/api/students", sv01)

	rec := do(t, h, http.MethodDelete, "/api/students/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/api/students/0", "").Code)
}

func TestDeleteDeclined(t *testing.T) {
	h := newServer(t, memory.New(), editor.ConfirmFunc(func(string) bool { return false }))
	do(t, h, http.MethodPost, "/api/students", sv01)

	rec := do(t, h, http.MethodDelete, "/api/students/0", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStorageFailure(t *testing.T) {
	kv := memory.New()
	h := newServer(t, kv, editor.AlwaysConfirm)
	kv.FailSet = errors.New("disk full")

	rec := do(t, h, http.MethodPost, "/api/students", sv01)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "disk full")
}
