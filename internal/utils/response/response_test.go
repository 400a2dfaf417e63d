package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WriteJSON(rec, http.StatusCreated, map[string]int{"index": 2}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"index":2}`, rec.Body.String())
}

func TestGeneralError(t *testing.T) {
	assert.Equal(t, Response{Status: StatusError, Error: "boom"}, GeneralError(errors.New("boom")))
}

func TestValidationError(t *testing.T) {
	type form struct {
		FullName  string `validate:"required"`
		BirthDate string `validate:"datetime=2006-01-02"`
		GPA       string `validate:"numeric"`
		ClassName string `validate:"max=2"`
	}

	err := validator.New().Struct(form{BirthDate: "yesterday", GPA: "x", ClassName: "K100"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	got := ValidationError(verrs)
	assert.Equal(t, StatusError, got.Status)
	assert.Equal(t,
		"field FullName is required, field BirthDate must be a date in 2006-01-02 format, field GPA must be a number, field ClassName is invalid",
		got.Error)
}
