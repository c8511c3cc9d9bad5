package cache

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingularGetSet(t *testing.T) {
	c := NewSingular[[]string]("participants")

	var dest []string
	assert.ErrorIs(t, c.Get(&dest), ErrNotFound)

	require.NoError(t, c.Set([]string{"a@mergington.edu"}, time.Minute))
	require.NoError(t, c.Get(&dest))
	assert.Equal(t, []string{"a@mergington.edu"}, dest)

	require.NoError(t, c.Delete())
	assert.ErrorIs(t, c.Get(&dest), ErrNotFound)
}

func TestSingularMutexGetSet(t *testing.T) {
	c := NewSingular[int]("count")

	calls := 0
	valueFunc := func() (int, error) {
		calls++
		return 42, nil
	}

	var dest int
	require.NoError(t, c.MutexGetSet(&dest, valueFunc, time.Minute))
	assert.Equal(t, 42, dest)
	assert.Equal(t, 1, calls)

	// second call is served from cache, valueFunc is not consulted again
	dest = 0
	require.NoError(t, c.MutexGetSet(&dest, valueFunc, time.Minute))
	assert.Equal(t, 42, dest)
	assert.Equal(t, 1, calls)
}

func TestSingularMutexGetSetPropagatesError(t *testing.T) {
	c := NewSingular[int]("failing")

	boom := errors.New("store unreachable")
	var dest int
	err := c.MutexGetSet(&dest, func() (int, error) { return 0, boom }, time.Minute)
	assert.ErrorIs(t, err, boom)
}
