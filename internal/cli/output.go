package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aanand-mishra/student-roster/internal/editor"
)

const emptyRoster = "No students yet."

const rowFormat = "%-3s %-8s %-20s %-10s %-6s %4s\n"

// writeValue encodes v as JSON or YAML.
func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// writeRows renders the roster table.
func writeRows(w io.Writer, format string, rows []editor.Row) error {
	if format != "text" {
		return writeValue(w, format, rows)
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, emptyRoster)
		return err
	}
	fmt.Fprintf(w, rowFormat, "#", "ID", "Full name", "Birth date", "Class", "GPA")
	for _, r := range rows {
		fmt.Fprintf(w, rowFormat, strconv.Itoa(r.No), r.StudentID, r.FullName, r.BirthDate, r.ClassName, r.GPA)
	}
	return nil
}

// writeForm renders one record's raw form values.
func writeForm(w io.Writer, format string, f editor.Form) error {
	if format != "text" {
		return writeValue(w, format, f)
	}

	fmt.Fprintf(w, "%-11s %s\n", "Student ID:", f.StudentID)
	fmt.Fprintf(w, "%-11s %s\n", "Full name:", f.FullName)
	fmt.Fprintf(w, "%-11s %s\n", "Birth date:", f.BirthDate)
	fmt.Fprintf(w, "%-11s %s\n", "Class:", f.ClassName)
	_, err := fmt.Fprintf(w, "%-11s %s\n", "GPA:", f.GPA)
	return err
}

// formLine is the shell's one-line form: fields separated by " | ".
func formLine(f editor.Form) string {
	return strings.Join([]string{f.StudentID, f.FullName, f.BirthDate, f.ClassName, string(f.GPA)}, " | ")
}

// parseFormLine is the inverse of formLine.
func parseFormLine(s string) (editor.Form, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 5 {
		return editor.Form{}, fmt.Errorf("expected 5 fields separated by |, got %d", len(parts))
	}
	return editor.Form{
		StudentID: parts[0],
		FullName:  parts[1],
		BirthDate: parts[2],
		ClassName: parts[3],
		GPA:       editor.NumberText(parts[4]),
	}, nil
}

// printNotifier writes notifications as plain lines.
func printNotifier(w io.Writer) editor.Notifier {
	return editor.NotifyFunc(func(kind editor.Kind, message string) {
		if kind == editor.Failure {
			fmt.Fprintln(w, "!", message)
			return
		}
		fmt.Fprintln(w, message)
	})
}

// rowIndex converts a 1-based row number argument to a store index.
func rowIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid row %q: must be a number from 1", arg)
	}
	return n - 1, nil
}
