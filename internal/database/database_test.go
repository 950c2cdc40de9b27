package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/trackit/internal/database/repository"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "m.db")
	require.NoError(t, RunMigrations(dbPath))
	require.NoError(t, RunMigrations(dbPath))

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM habits`).Scan(&n))
	require.Equal(t, 0, n)
}

func TestRunMigrationsWithDB(t *testing.T) {
	t.Parallel()

	db, err := Open(filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrationsWithDB(db))
	require.NoError(t, db.Ping())
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "tx.db")
	require.NoError(t, RunMigrations(dbPath))
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	boom := errors.New("boom")
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := repository.NewHabitRepo(tx).Create(ctx, "alice", "Read", []int{1}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := repository.NewHabitRepo(db).List(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestSeedDemoOnlyOnce(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed.db")
	require.NoError(t, RunMigrations(dbPath))
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	n, err := SeedDemo(ctx, db, "alice")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	n, err = SeedDemo(ctx, db, "alice")
	require.NoError(t, err)
	require.Equal(t, 0, n)

	list, err := repository.NewHabitRepo(db).List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, h := range list {
		require.NotEmpty(t, h.Days)
	}
}
