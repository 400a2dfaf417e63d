package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// ErrGPARange is returned by Validate for a numeric GPA outside [0, 4].
var ErrGPARange = errors.New("gpa must be between 0 and 4")

// NumberText is form text that also accepts a bare JSON number, so API
// clients can send "gpa": 3.5 as well as "gpa": "3.5".
type NumberText string

// UnmarshalJSON keeps strings as typed and writes numbers in plain decimal
// form, so 4e0 arrives as "4".
func (n *NumberText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = NumberText(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("gpa: expected a number or a string, got %s", b)
	}
	*n = NumberText(canonicalNumber(num.String()))
	return nil
}

// canonicalNumber rewrites decimal text such as ".5", "3." or "4e0" as
// plain decimal ("0.5", "3", "4") so the numeric tag accepts it. Anything
// else, including hex floats and Inf/NaN spellings, is returned unchanged.
func canonicalNumber(s string) string {
	if strings.ContainsAny(s, "xXnN_") {
		return s
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Form is what a person types into the roster form. Every field is text.
//
// validate:"required" rejects empty values (checked after Normalize trims
// them); datetime and numeric check the shape of the date and GPA.
type Form struct {
	StudentID string     `json:"studentId" yaml:"studentId" validate:"required"`
	FullName  string     `json:"fullName"  yaml:"fullName"  validate:"required"`
	BirthDate string     `json:"birthDate" yaml:"birthDate" validate:"required,datetime=2006-01-02"`
	ClassName string     `json:"className" yaml:"className" validate:"required"`
	GPA       NumberText `json:"gpa"       yaml:"gpa"       validate:"required,numeric"`
}

// Normalize trims surrounding whitespace from every field and writes a
// decimal GPA in plain form.
func (f Form) Normalize() Form {
	return Form{
		StudentID: strings.TrimSpace(f.StudentID),
		FullName:  strings.TrimSpace(f.FullName),
		BirthDate: strings.TrimSpace(f.BirthDate),
		ClassName: strings.TrimSpace(f.ClassName),
		GPA:       NumberText(canonicalNumber(strings.TrimSpace(string(f.GPA)))),
	}
}

// FormFromRecord fills a form with a record's values, as when a row is
// picked for editing.
func FormFromRecord(r types.Record) Form {
	gpa := ""
	if !math.IsNaN(r.GPA) {
		gpa = strconv.FormatFloat(r.GPA, 'f', -1, 64)
	}
	return Form{
		StudentID: r.StudentID,
		FullName:  r.FullName,
		BirthDate: r.BirthDate,
		ClassName: r.ClassName,
		GPA:       NumberText(gpa),
	}
}

var formValidator = validator.New()

// Validate normalizes f and turns it into a Record.
//
// The error is a validator.ValidationErrors for missing or malformed
// fields, or ErrGPARange for a GPA outside [0, 4].
func Validate(f Form) (types.Record, error) {
	f = f.Normalize()
	if err := formValidator.Struct(f); err != nil {
		return types.Record{}, err
	}

	r := types.ParseRecord(f.StudentID, f.FullName, f.BirthDate, f.ClassName, string(f.GPA))
	if !r.IsValidGPA() {
		return types.Record{}, ErrGPARange
	}
	return r, nil
}

// IsValidationError reports whether err came from Validate.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs) || errors.Is(err, ErrGPARange)
}
