package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/trackit/internal/database"
	"github.com/jask/trackit/internal/database/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestHabitRepoCreateAndList(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := repository.NewHabitRepo(openTestDB(t))

	a, err := repo.Create(ctx, "alice", "Read", []int{1, 3, 5})
	require.NoError(t, err)
	require.NotZero(t, a.ID)
	require.Equal(t, "Read", a.Name)
	require.Equal(t, []int{1, 3, 5}, a.Days)
	require.False(t, a.CreatedAt.IsZero())

	b, err := repo.Create(ctx, "alice", "Run", []int{0})
	require.NoError(t, err)
	require.Greater(t, b.ID, a.ID)

	_, err = repo.Create(ctx, "bob", "Swim", []int{6})
	require.NoError(t, err)

	list, err := repo.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, a.ID, list[0].ID)
	require.Equal(t, b.ID, list[1].ID)

	bobs, err := repo.List(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	require.Equal(t, "Swim", bobs[0].Name)
}

func TestHabitRepoListEmpty(t *testing.T) {
	t.Parallel()

	list, err := repository.NewHabitRepo(openTestDB(t)).List(context.Background(), "nobody")
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestHabitRepoInsideTx(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)

	err := database.WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := repository.NewHabitRepo(tx).Create(ctx, "alice", "Stretch", []int{2})
		return err
	})
	require.NoError(t, err)

	list, err := repository.NewHabitRepo(db).List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
}
