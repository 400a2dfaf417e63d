// Package types holds the Record value object shared by the roster store,
// the editor and the adapters. Keeping it in its own package prevents
// import cycles: storage, roster and handlers can all import types without
// depending on each other.
package types

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of Record.BirthDate (an HTML date input value).
const DateLayout = "2006-01-02"

// displayDateLayout renders a birth date as day/month/year.
const displayDateLayout = "02/01/2006"

// Record represents one student on the roster.
//
// GPA is always held as a parsed number. Text input goes through
// ParseRecord / Update, which never fail: a value with no numeric prefix
// becomes NaN, and IsValidGPA reports it as invalid.
type Record struct {
	StudentID string  `json:"studentId"`
	FullName  string  `json:"fullName"`
	BirthDate string  `json:"birthDate"`
	ClassName string  `json:"className"`
	GPA       float64 `json:"gpa"`
}

// NewRecord builds a Record from an already numeric GPA.
func NewRecord(studentID, fullName, birthDate, className string, gpa float64) Record {
	return Record{
		StudentID: studentID,
		FullName:  fullName,
		BirthDate: birthDate,
		ClassName: className,
		GPA:       gpa,
	}
}

// ParseRecord builds a Record from form text. The GPA is parsed with
// ParseGPA.
func ParseRecord(studentID, fullName, birthDate, className, gpa string) Record {
	return NewRecord(studentID, fullName, birthDate, className, ParseGPA(gpa))
}

// Update replaces every field of r in place. It is a full replace, not a
// merge: empty arguments overwrite existing values.
func (r *Record) Update(studentID, fullName, birthDate, className, gpa string) {
	r.StudentID = studentID
	r.FullName = fullName
	r.BirthDate = birthDate
	r.ClassName = className
	r.GPA = ParseGPA(gpa)
}

// Describe returns a one-line human readable summary of the record.
func (r Record) Describe() string {
	return fmt.Sprintf("ID: %s, Name: %s, Birth date: %s, Class: %s, GPA: %s",
		r.StudentID, r.FullName, r.FormattedBirthDate(), r.ClassName,
		strconv.FormatFloat(r.GPA, 'f', -1, 64))
}

// String implements fmt.Stringer.
func (r Record) String() string {
	return r.Describe()
}

// FormattedBirthDate renders the birth date as DD/MM/YYYY.
// A stored value that is not a YYYY-MM-DD date is returned unchanged.
func (r Record) FormattedBirthDate() string {
	d, err := time.Parse(DateLayout, r.BirthDate)
	if err != nil {
		return r.BirthDate
	}
	return d.Format(displayDateLayout)
}

// FormattedGPA renders the GPA with two decimals, as shown in the table.
func (r Record) FormattedGPA() string {
	return strconv.FormatFloat(r.GPA, 'f', 2, 64)
}

// IsValidGPA reports whether 0 <= GPA <= 4. NaN is never valid.
func (r Record) IsValidGPA() bool {
	return r.GPA >= 0 && r.GPA <= 4
}

// numericPrefix matches the longest leading decimal literal of a string.
var numericPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseGPA converts form text to a number the way a browser parseFloat
// does: surrounding whitespace is ignored and the longest numeric prefix is
// used ("3.5abc" is 3.5). Text without a numeric prefix yields NaN.
func ParseGPA(s string) float64 {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	// The only possible error is ErrRange, and ParseFloat already returns
	// the signed infinity for it.
	v, _ := strconv.ParseFloat(m, 64)
	return v
}
