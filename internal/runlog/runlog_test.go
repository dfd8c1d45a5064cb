package runlog

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecord_GeneratesIDAndTimestamp(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	r := &Run{
		InputPath:   "in.asc",
		OutputPath:  "out.asc",
		FilterSize:  11,
		HoleCells:   40,
		FilledCells: 38,
	}
	require.NoError(t, store.Record(r))
	assert.NotEmpty(t, r.RunID)
	assert.NotZero(t, r.CreatedAt)

	got, err := store.Get(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestRecord_PreservesExplicitFields(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	r := &Run{
		RunID:         "run-fixed",
		InputPath:     "a.asc",
		OutputPath:    "b.asc",
		FilterSize:    13,
		HoleCells:     9,
		BoundaryCells: 30,
		FilledCells:   7,
		UnfilledCells: 2,
		ElapsedNs:     1234,
		CreatedAt:     42,
	}
	require.NoError(t, store.Record(r))

	got, err := store.Get("run-fixed")
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestRecord_DuplicateIDFails(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	r := &Run{RunID: "dup", InputPath: "a", OutputPath: "b"}
	require.NoError(t, store.Record(r))
	assert.Error(t, store.Record(&Run{RunID: "dup", InputPath: "a", OutputPath: "b"}))
}

func TestGet_Missing(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	_, err := store.Get("absent")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestList_NewestFirst(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.Record(&Run{
			RunID:      id,
			InputPath:  "in.asc",
			OutputPath: "out.asc",
			CreatedAt:  int64(i + 1),
		}))
	}

	runs, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "new", runs[0].RunID)
	assert.Equal(t, "mid", runs[1].RunID)
	assert.Equal(t, "old", runs[2].RunID)

	limited, err := store.List(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRetryOnBusy(t *testing.T) {
	t.Parallel()

	t.Run("passes through success", func(t *testing.T) {
		t.Parallel()
		calls := 0
		err := retryOnBusy(func() error {
			calls++
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("passes through non-busy error", func(t *testing.T) {
		t.Parallel()
		calls := 0
		wantErr := errors.New("constraint failed")
		err := retryOnBusy(func() error {
			calls++
			return wantErr
		})
		assert.Equal(t, wantErr, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries busy errors", func(t *testing.T) {
		t.Parallel()
		calls := 0
		err := retryOnBusy(func() error {
			calls++
			if calls < 3 {
				return errors.New("database is busy")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})
}
