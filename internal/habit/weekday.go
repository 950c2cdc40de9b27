package habit

import (
	"fmt"
	"strings"
)

const DaysPerWeek = 7

// DefaultWeekLabels starts the week on Sunday.
const DefaultWeekLabels = "SMTWTFS"

// WeekDay is one entry of the weekday table used for display mapping.
type WeekDay struct {
	Label string
	Index int
}

// WeekDays returns the default weekday table.
func WeekDays() []WeekDay {
	days, _ := ParseWeekLabels(DefaultWeekLabels)
	return days
}

// ParseWeekLabels builds the weekday table from exactly seven labels, one character each.
// Whitespace between labels is allowed ("S M T W T F S").
func ParseWeekLabels(labels string) ([]WeekDay, error) {
	var runes []rune
	for _, r := range labels {
		if r == ' ' || r == ',' || r == '\t' {
			continue
		}
		runes = append(runes, r)
	}
	if len(runes) != DaysPerWeek {
		return nil, fmt.Errorf("week labels %q: want %d labels, got %d", strings.TrimSpace(labels), DaysPerWeek, len(runes))
	}
	out := make([]WeekDay, DaysPerWeek)
	for i, r := range runes {
		out[i] = WeekDay{Label: string(r), Index: i}
	}
	return out, nil
}
