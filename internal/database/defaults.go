package database

import (
	"context"
	"database/sql"

	"github.com/jask/trackit/internal/database/repository"
)

// SeedDemo gives user a few starter habits when they have none.
// It is idempotent and safe to run on every startup.
func SeedDemo(ctx context.Context, db *sql.DB, user string) (int, error) {
	repo := repository.NewHabitRepo(db)
	existing, err := repo.List(ctx, user)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	defaults := []struct {
		name string
		days []int
	}{
		{"Drink 2L of water", []int{0, 1, 2, 3, 4, 5, 6}},
		{"Read 20 pages", []int{1, 3, 5}},
		{"Long run", []int{0}},
	}
	n := 0
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, d := range defaults {
			if _, err := repository.NewHabitRepo(tx).Create(ctx, user, d.name, d.days); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
