package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRemove(t *testing.T) {
	m := New()

	_, ok, err := m.GetItem("students")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.SetItem("students", "[]"))
	v, ok, err := m.GetItem("students")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	require.NoError(t, m.RemoveItem("students"))
	require.NoError(t, m.RemoveItem("students"))
	_, ok, _ = m.GetItem("students")
	assert.False(t, ok)
}

func TestFailSet(t *testing.T) {
	m := New()
	require.NoError(t, m.SetItem("students", "[]"))

	m.FailSet = errors.New("quota exceeded")
	assert.ErrorIs(t, m.SetItem("students", `[{"x":1}]`), m.FailSet)

	v, _, _ := m.GetItem("students")
	assert.Equal(t, "[]", v)
}
