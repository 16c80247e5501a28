package simlog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSQLite_StoresTaggedRuns(t *testing.T) {
	// GIVEN two logs persisted under different run ids in one database
	path := filepath.Join(t.TempDir(), "results.db")

	l1 := New()
	l1.Append(Record{Time: 1, Process: "source", State: StateCreated, Item: 1})
	l1.Append(Record{Time: 2, Process: "sink", State: StateDone, Item: 1})
	require.NoError(t, SaveSQLite(l1, path, "run-a"))

	l2 := New()
	l2.Append(Record{Time: 1, Process: "source", State: StateCreated, Item: 1})
	require.NoError(t, SaveSQLite(l2, path, "run-b"))

	// THEN each run id counts only its own records
	na, err := CountSQLite(path, "run-a")
	require.NoError(t, err)
	assert.Equal(t, 2, na)

	nb, err := CountSQLite(path, "run-b")
	require.NoError(t, err)
	assert.Equal(t, 1, nb)

	none, err := CountSQLite(path, "run-c")
	require.NoError(t, err)
	assert.Equal(t, 0, none)
}

func TestSaveSQLite_EmptyLogCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, SaveSQLite(New(), path, "run"))

	n, err := CountSQLite(path, "run")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
