package journal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *Journal {
	t.Helper()

	j, err := Open(Config{File: filepath.Join(t.TempDir(), "journal.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, j.Close())
	})

	return j
}

func TestEmpty(t *testing.T) {
	require := require.New(t)

	j := open(t)

	_, found, err := j.Last("")
	require.NoError(err)
	require.False(found)

	entries, err := j.Entries()
	require.NoError(err)
	require.Empty(entries)

	_, err = Open(Config{})
	require.Error(err)
}

func TestAppend(t *testing.T) {
	require := require.New(t)

	j := open(t)

	for _, e := range []Entry{
		{Direction: "encrypt", Method: "rotation", Shift: 3, Output: "KHOORcZRUOG"},
		{Direction: "decrypt", Method: "rotation", Shift: 3, Output: "HELLO WORLD"},
		{Direction: "encrypt", Method: "modular", Shift: 15, Output: "IwtpqhtiXhpb"},
	} {
		require.NoError(j.Append(e))
	}

	entries, err := j.Entries()
	require.NoError(err)
	require.Len(entries, 3)
	require.Equal("KHOORcZRUOG", entries[0].Output)
	for _, e := range entries {
		require.NotEmpty(e.ID)
		require.False(e.Time.IsZero())
	}

	last, found, err := j.Last("")
	require.NoError(err)
	require.True(found)
	require.Equal("IwtpqhtiXhpb", last.Output)

	last, found, err = j.Last("decrypt")
	require.NoError(err)
	require.True(found)
	require.Equal("HELLO WORLD", last.Output)
}
