package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// HabitRepo handles habits, always scoped to one user.
type HabitRepo struct {
	db DBTX
}

func NewHabitRepo(db DBTX) *HabitRepo { return &HabitRepo{db: db} }

func (r *HabitRepo) Create(ctx context.Context, userID, name string, days []int) (Habit, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO habits(user_id, name, days) VALUES (?, ?, ?);
	`, userID, name, encodeDays(days))
	if err != nil {
		return Habit{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Habit{}, err
	}
	return r.get(ctx, userID, int(id))
}

func (r *HabitRepo) List(ctx context.Context, userID string) ([]Habit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, name, days, created_at FROM habits WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Habit{}
	for rows.Next() {
		h, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *HabitRepo) get(ctx context.Context, userID string, id int) (Habit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, name, days, created_at FROM habits WHERE user_id = ? AND id = ?`, userID, id)
	return scanHabit(row.Scan)
}

func scanHabit(scan func(dest ...any) error) (Habit, error) {
	var h Habit
	var days string
	if err := scan(&h.ID, &h.UserID, &h.Name, &days, &h.CreatedAt); err != nil {
		return Habit{}, err
	}
	parsed, err := decodeDays(days)
	if err != nil {
		return Habit{}, fmt.Errorf("habit %d: %w", h.ID, err)
	}
	h.Days = parsed
	return h, nil
}

func encodeDays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func decodeDays(s string) ([]int, error) {
	out := []int{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad days %q: %w", s, err)
		}
		out = append(out, d)
	}
	return out, nil
}
