package habit

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// SimilarityThreshold is the minimum score for SimilarHabit to report a match.
const SimilarityThreshold = 0.8

// SimilarHabit finds the existing habit whose name is closest to name.
// ok is false when nothing scores at least SimilarityThreshold.
func SimilarHabit(name string, habits []Habit) (match Habit, score float64, ok bool) {
	n := normalizeName(name)
	if n == "" {
		return Habit{}, 0, false
	}
	for _, h := range habits {
		s := nameSimilarity(n, normalizeName(h.Name))
		if s > score {
			match, score = h, s
		}
	}
	if score < SimilarityThreshold {
		return Habit{}, score, false
	}
	return match, score, true
}

func nameSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	la, lb := len([]rune(a)), len([]rune(b))
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(max(la, lb))
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
