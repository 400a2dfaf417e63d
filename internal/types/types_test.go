package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGPA(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"3.5", 3.5},
		{"  2.75 ", 2.75},
		{"4", 4},
		{"0", 0},
		{".5", 0.5},
		{"3.", 3},
		{"-1.2", -1.2},
		{"+1", 1},
		{"3.5abc", 3.5},
		{"1e0", 1},
		{"2e", 2},
		{"0x10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGPA(tt.in))
		})
	}
}

func TestParseGPANotANumber(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", ".", "-", "e5"} {
		assert.True(t, math.IsNaN(ParseGPA(in)), "input %q", in)
	}
}

func TestParseGPAInfinity(t *testing.T) {
	assert.True(t, math.IsInf(ParseGPA("Infinity"), 1))
	assert.True(t, math.IsInf(ParseGPA("-Infinity"), -1))
}

func TestParseRecordStoresNumber(t *testing.T) {
	r := ParseRecord("SV01", "A", "2023-01-15", "K1", "3.5")

	assert.Equal(t, "SV01", r.StudentID)
	assert.Equal(t, "A", r.FullName)
	assert.Equal(t, "2023-01-15", r.BirthDate)
	assert.Equal(t, "K1", r.ClassName)
	assert.Equal(t, 3.5, r.GPA)
}

func TestParseRecordNeverFails(t *testing.T) {
	r := ParseRecord("SV01", "A", "2023-01-15", "K1", "n/a")
	assert.True(t, math.IsNaN(r.GPA))
	assert.False(t, r.IsValidGPA())
}

func TestUpdateReplacesAllFields(t *testing.T) {
	r := NewRecord("SV01", "A", "2023-01-15", "K1", 3.5)
	r.Update("SV02", "", "2001-12-31", "K2", "1.25")

	assert.Equal(t, NewRecord("SV02", "", "2001-12-31", "K2", 1.25), r)
}

func TestIsValidGPA(t *testing.T) {
	tests := []struct {
		gpa  float64
		want bool
	}{
		{0, true},
		{4, true},
		{2.5, true},
		{-0.01, false},
		{4.01, false},
		{math.NaN(), false},
		{math.Inf(1), false},
	}

	for _, tt := range tests {
		r := NewRecord("SV01", "A", "2023-01-15", "K1", tt.gpa)
		assert.Equal(t, tt.want, r.IsValidGPA(), "gpa %v", tt.gpa)
	}
}

func TestFormattedBirthDate(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-03-05", "05/03/2024"},
		{"2023-01-15", "15/01/2023"},
		{"0999-12-31", "31/12/0999"},
		{"not a date", "not a date"},
		{"", ""},
	}

	for _, tt := range tests {
		r := NewRecord("SV01", "A", tt.date, "K1", 3)
		assert.Equal(t, tt.want, r.FormattedBirthDate(), "date %q", tt.date)
	}
}

func TestDescribe(t *testing.T) {
	r := NewRecord("SV01", "Nguyen Van A", "2003-04-05", "K1", 3.5)

	want := "ID: SV01, Name: Nguyen Van A, Birth date: 05/04/2003, Class: K1, GPA: 3.5"
	assert.Equal(t, want, r.Describe())
	assert.Equal(t, want, r.String())
}

func TestFormattedGPA(t *testing.T) {
	assert.Equal(t, "3.50", NewRecord("SV01", "A", "2003-04-05", "K1", 3.5).FormattedGPA())
	assert.Equal(t, "4.00", NewRecord("SV01", "A", "2003-04-05", "K1", 4).FormattedGPA())
}
