// Package habit holds the habit model shared by the terminal client and the API server.
package habit

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNoDays        = errors.New("select at least one day for your habit")
	ErrDayOutOfRange = errors.New("day out of range")
	ErrDuplicateDay  = errors.New("day listed more than once")
	ErrBlankName     = errors.New("habit name is required")
)

// Habit is a user-defined recurring activity.
type Habit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Days []int  `json:"days"`
}

// Draft is the body sent when creating a habit.
type Draft struct {
	Name string `json:"name"`
	Days []int  `json:"days"`
}

// Validate checks the client-side invariant: at least one day, each within the week.
func (d Draft) Validate() error {
	if len(d.Days) == 0 {
		return ErrNoDays
	}
	seen := make(map[int]struct{}, len(d.Days))
	for _, day := range d.Days {
		if day < 0 || day >= DaysPerWeek {
			return fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
		}
		if _, ok := seen[day]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateDay, day)
		}
		seen[day] = struct{}{}
	}
	return nil
}

// ValidateStrict is Validate plus a non-blank name; the server applies it.
func (d Draft) ValidateStrict() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrBlankName
	}
	return d.Validate()
}

// HasDay reports whether the habit is scheduled on the given weekday index.
func (h Habit) HasDay(index int) bool {
	for _, d := range h.Days {
		if d == index {
			return true
		}
	}
	return false
}

// DaySet is the set of selected weekday indices.
type DaySet struct {
	bits uint8
}

// NewDaySet builds a set from indices, dropping anything outside the week.
func NewDaySet(days ...int) DaySet {
	var s DaySet
	for _, d := range days {
		if d >= 0 && d < DaysPerWeek {
			s.bits |= 1 << d
		}
	}
	return s
}

func (s DaySet) Has(day int) bool {
	if day < 0 || day >= DaysPerWeek {
		return false
	}
	return s.bits&(1<<day) != 0
}

// Toggle flips the day in place. Out of range indices are ignored.
func (s *DaySet) Toggle(day int) {
	if day < 0 || day >= DaysPerWeek {
		return
	}
	s.bits ^= 1 << day
}

func (s DaySet) Len() int {
	n := 0
	for b := s.bits; b != 0; b &= b - 1 {
		n++
	}
	return n
}

func (s *DaySet) Clear() { s.bits = 0 }

// Sorted returns the selected indices in ascending order.
func (s DaySet) Sorted() []int {
	out := make([]int, 0, s.Len())
	for d := 0; d < DaysPerWeek; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// NormalizeDays returns a sorted copy of days without duplicates.
func NormalizeDays(days []int) []int {
	out := append([]int(nil), days...)
	sort.Ints(out)
	j := 0
	for i, d := range out {
		if i > 0 && d == out[j-1] {
			continue
		}
		out[j] = d
		j++
	}
	return out[:j]
}
