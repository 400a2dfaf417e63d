package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/editor"
)

func TestShellSession(t *testing.T) {
	useFileStorage(t)

	script := strings.Join([]string{
		"help",
		"submit SV01 | Nguyen Van A | 2003-04-05 | K1 | 3.5",
		"submit SV02 | Tran Thi B | 2002-12-31 | K2 | 4",
		"edit 2",
		"submit SV01 | Tran Thi B | 2002-12-31 | K2 | 4",
		"submit SV03 | Tran Thi B | 2002-12-31 | K2 | 3.9",
		"edit 1",
		"cancel",
		"submit SV04 | Le Van C | 2004-06-07 | K1 | 5",
		"delete 1",
		"y",
		"show 9",
		"bogus",
		"quit",
	}, "\n") + "\n"

	out, err := run(t, script, "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, editor.MsgAdded)
	assert.Contains(t, out, "submit SV02 | Tran Thi B | 2002-12-31 | K2 | 4")
	assert.Contains(t, out, "roster (editing 2)> ")
	assert.Contains(t, out, "! "+editor.MsgDuplicateID)
	assert.Contains(t, out, editor.MsgUpdated)
	assert.Contains(t, out, "! "+editor.MsgGPARange)
	assert.Contains(t, out, editor.MsgConfirmDelete)
	assert.Contains(t, out, editor.MsgDeleted)
	assert.Contains(t, out, "error: Get: no student at index 8")
	assert.Contains(t, out, `unknown command "bogus"`)

	list, err := run(t, "", "--format", "json", "list")
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"no":1,"studentId":"SV03","fullName":"Tran Thi B","birthDate":"31/12/2002","className":"K2","gpa":"3.90"}]`,
		list)
}

func TestShellEndOfInput(t *testing.T) {
	useFileStorage(t)

	out, err := run(t, "list\n", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, emptyRoster)
}

func TestShellUsageErrors(t *testing.T) {
	useFileStorage(t)

	out, err := run(t, "submit only | three | fields\nedit x\nquit\n", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "expected 5 fields")
	assert.Contains(t, out, `invalid row "x"`)
}

func TestFormLineRoundTrip(t *testing.T) {
	f := editor.Form{StudentID: "SV01", FullName: "A", BirthDate: "2023-01-15", ClassName: "K1", GPA: "3.5"}

	parsed, err := parseFormLine(formLine(f))
	require.NoError(t, err)
	assert.Equal(t, f, parsed.Normalize())
}

func TestRowIndex(t *testing.T) {
	i, err := rowIndex("3")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	for _, bad := range []string{"0", "-1", "x", ""} {
		_, err := rowIndex(bad)
		assert.Error(t, err, bad)
	}
}
