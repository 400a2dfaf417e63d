package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// snapshotRecord is one element of the stored JSON array. GPA is a pointer
// so that NaN and the infinities, which JSON cannot carry, are written as
// null.
type snapshotRecord struct {
	StudentID string   `json:"studentId"`
	FullName  string   `json:"fullName"`
	BirthDate string   `json:"birthDate"`
	ClassName string   `json:"className"`
	GPA       *float64 `json:"gpa"`
}

// storedRecord is the decode side. Every key must be present; the
// validator's "required" rejects a nil pointer or an absent raw value.
type storedRecord struct {
	StudentID *string         `json:"studentId" validate:"required"`
	FullName  *string         `json:"fullName"  validate:"required"`
	BirthDate *string         `json:"birthDate" validate:"required"`
	ClassName *string         `json:"className" validate:"required"`
	GPA       json.RawMessage `json:"gpa"       validate:"required"`
}

var snapshotValidator = validator.New()

// Encode serializes records as a JSON array in order. An empty roster is
// "[]", never "null".
func Encode(records []types.Record) (string, error) {
	out := make([]snapshotRecord, 0, len(records))
	for _, r := range records {
		sr := snapshotRecord{
			StudentID: r.StudentID,
			FullName:  r.FullName,
			BirthDate: r.BirthDate,
			ClassName: r.ClassName,
		}
		if !math.IsNaN(r.GPA) && !math.IsInf(r.GPA, 0) {
			gpa := r.GPA
			sr.GPA = &gpa
		}
		out = append(out, sr)
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("Encode: %w", err)
	}
	return string(b), nil
}

// Decode parses a stored snapshot back into records, rebuilding each one
// field by field. It fails with ErrCorruptData when the text is not a JSON
// array, an element is missing a key or has a wrongly typed value, or two
// elements share a student id.
func Decode(data string) ([]types.Record, error) {
	raw := bytes.TrimSpace([]byte(data))
	if bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: top level is null", ErrCorruptData)
	}

	var stored []storedRecord
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	records := make([]types.Record, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for i, sr := range stored {
		if err := snapshotValidator.Struct(sr); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrCorruptData, i, err)
		}

		gpa := math.NaN()
		if !bytes.Equal(sr.GPA, []byte("null")) {
			if err := json.Unmarshal(sr.GPA, &gpa); err != nil {
				return nil, fmt.Errorf("%w: element %d: gpa: %v", ErrCorruptData, i, err)
			}
		}

		if _, dup := seen[*sr.StudentID]; dup {
			return nil, fmt.Errorf("%w: element %d: duplicate student id %q", ErrCorruptData, i, *sr.StudentID)
		}
		seen[*sr.StudentID] = struct{}{}

		records = append(records, types.NewRecord(*sr.StudentID, *sr.FullName, *sr.BirthDate, *sr.ClassName, gpa))
	}

	return records, nil
}
