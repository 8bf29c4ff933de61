package services

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// topTermsLimit caps every top-N list in domain statistics.
const topTermsLimit = 10

// countBy counts records per value of key. Empty values are counted as "".
func countBy[T any](records []T, key func(T) string) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

// topTerms returns the limit most frequent values, count descending then
// term ascending. Each record counts a value at most once.
func topTerms[T any](records []T, values func(T) []string, limit int) []domain.TermCount {
	counts := make(map[string]int)
	for _, r := range records {
		seen := make(map[string]bool)
		for _, v := range values(r) {
			v = strings.TrimSpace(v)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			counts[v]++
		}
	}

	out := make([]domain.TermCount, 0, len(counts))
	for term, n := range counts {
		out = append(out, domain.TermCount{Term: term, Count: n})
	}
	slices.SortFunc(out, func(a, b domain.TermCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// within reports whether t lies in the window ending at now.
func within(t, now time.Time, window time.Duration) bool {
	return !t.Before(now.Add(-window)) && !t.After(now)
}

// newestFirst orders times descending.
func newestFirst(a, b time.Time) int {
	return b.Compare(a)
}
