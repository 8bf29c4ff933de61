package services

import (
	"cmp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// minTermLength is the shortest word considered as a suggestion.
const minTermLength = 3

// Field is one searchable text attribute of a record.
type Field[T any] struct {
	// Name identifies the field in logs.
	Name string

	// Values extracts the field text. Scalar fields return one element.
	Values func(T) []string

	// Phrase marks fields whose whole values are suggestion candidates
	// (tags, brands), in addition to their individual words.
	Phrase bool
}

// Predicate reports whether a record satisfies one filter constraint.
type Predicate[T any] func(T) bool

// Index describes how to search one record type.
// It holds no state; every method is a pure function of its inputs.
type Index[T any] struct {
	// Fields lists the searchable text attributes.
	Fields []Field[T]

	// Compare orders records. It returns a negative number when a sorts before b.
	// Nil keeps collection order.
	Compare func(a, b T) int
}

// Search filters, text-matches, orders and paginates records.
// Total on the result counts every match before pagination.
func (ix Index[T]) Search(records []T, query string, preds []Predicate[T], page domain.Pagination) domain.SearchResult[T] {
	return domain.NewSearchResult(ix.Filter(records, query, preds), page)
}

// Filter returns the ordered records that satisfy every predicate and
// contain query in at least one field. An empty query matches everything.
// The input slice is never modified.
func (ix Index[T]) Filter(records []T, query string, preds []Predicate[T]) []T {
	folded := Fold(strings.TrimSpace(query))

	matched := make([]T, 0, len(records))
	for _, r := range records {
		if !satisfies(r, preds) {
			continue
		}
		if folded != "" && !ix.matches(r, folded) {
			continue
		}
		matched = append(matched, r)
	}

	if ix.Compare != nil {
		slices.SortStableFunc(matched, ix.Compare)
	}
	return matched
}

// Matches reports whether any field of r contains query, ignoring case and accents.
func (ix Index[T]) Matches(r T, query string) bool {
	folded := Fold(strings.TrimSpace(query))
	if folded == "" {
		return true
	}
	return ix.matches(r, folded)
}

func (ix Index[T]) matches(r T, folded string) bool {
	for _, f := range ix.Fields {
		for _, v := range f.Values(r) {
			if strings.Contains(Fold(v), folded) {
				return true
			}
		}
	}
	return false
}

func satisfies[T any](r T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(r) {
			return false
		}
	}
	return true
}

// Equals matches records whose field equals want, ignoring case and accents.
// An empty want returns nil (no constraint).
func Equals[T any](value func(T) string, want string) Predicate[T] {
	want = Fold(strings.TrimSpace(want))
	if want == "" {
		return nil
	}
	return func(r T) bool {
		return Fold(value(r)) == want
	}
}

// Contains matches records whose set field has an element equal to want.
// An empty want returns nil (no constraint).
func Contains[T any](values func(T) []string, want string) Predicate[T] {
	want = Fold(strings.TrimSpace(want))
	if want == "" {
		return nil
	}
	return func(r T) bool {
		for _, v := range values(r) {
			if Fold(v) == want {
				return true
			}
		}
		return false
	}
}

// InRange matches records whose numeric field lies in [lo, hi].
// Either bound may be nil; both nil returns nil (no constraint).
func InRange[T any, N cmp.Ordered](value func(T) N, lo, hi *N) Predicate[T] {
	if lo == nil && hi == nil {
		return nil
	}
	return func(r T) bool {
		v := value(r)
		if lo != nil && v < *lo {
			return false
		}
		if hi != nil && v > *hi {
			return false
		}
		return true
	}
}

// Between matches records whose time field lies in [from, to].
// Either bound may be nil; both nil returns nil (no constraint).
func Between[T any](value func(T) time.Time, from, to *time.Time) Predicate[T] {
	if from == nil && to == nil {
		return nil
	}
	return func(r T) bool {
		v := value(r)
		if from != nil && v.Before(*from) {
			return false
		}
		if to != nil && v.After(*to) {
			return false
		}
		return true
	}
}

// TextMatch matches records that contain query in any indexed field.
// An empty query returns nil (no constraint).
func TextMatch[T any](ix Index[T], query string) Predicate[T] {
	folded := Fold(strings.TrimSpace(query))
	if folded == "" {
		return nil
	}
	return func(r T) bool {
		return ix.matches(r, folded)
	}
}

// TermStat is a suggestion candidate and how often it occurred.
type TermStat struct {
	Term  string
	Count int
}

// TermStats maps a folded term to its candidate.
type TermStats map[string]TermStat

// add counts one occurrence of term, keeping the first display form seen.
func (s TermStats) add(folded, display string) {
	st, ok := s[folded]
	if !ok {
		st.Term = display
	}
	st.Count++
	s[folded] = st
}

// Merge adds every count of other into s.
func (s TermStats) Merge(other TermStats) {
	for k, v := range other {
		st, ok := s[k]
		if !ok {
			st.Term = v.Term
		}
		st.Count += v.Count
		s[k] = st
	}
}

// stopwords are frequent Portuguese words never offered as suggestions.
var stopwords = map[string]bool{
	"aos": true, "com": true, "como": true, "das": true, "dos": true,
	"entre": true, "esta": true, "este": true, "isso": true, "mais": true,
	"nao": true, "nas": true, "nos": true, "para": true, "pela": true,
	"pelo": true, "por": true, "que": true, "sao": true, "sem": true,
	"ser": true, "seu": true, "sobre": true, "sua": true, "uma": true,
}

// Terms collects the words and phrases of records that contain query.
// Words shorter than three letters, stopwords and the query itself are skipped.
// An empty query yields no terms.
func (ix Index[T]) Terms(query string, records []T) TermStats {
	stats := make(TermStats)
	folded := Fold(strings.TrimSpace(query))
	if folded == "" {
		return stats
	}

	consider := func(display string) {
		f := Fold(display)
		if f == folded || !strings.Contains(f, folded) {
			return
		}
		stats.add(f, display)
	}

	for _, r := range records {
		for _, field := range ix.Fields {
			for _, v := range field.Values(r) {
				if field.Phrase {
					if phrase := strings.TrimSpace(v); strings.ContainsRune(phrase, ' ') {
						consider(phrase)
					}
				}
				for _, w := range words(v) {
					if utf8.RuneCountInString(w) < minTermLength || stopwords[Fold(w)] {
						continue
					}
					consider(w)
				}
			}
		}
	}
	return stats
}

// RankSuggestions orders candidates by frequency, then by length (more
// specific first), then alphabetically, appends the predefined terms that
// contain query, removes case- and accent-insensitive duplicates, and
// returns at most limit entries.
func RankSuggestions(stats TermStats, predefined []string, query string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}

	candidates := make([]TermStat, 0, len(stats))
	for _, st := range stats {
		candidates = append(candidates, st)
	}
	slices.SortFunc(candidates, func(a, b TermStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		if c := cmp.Compare(utf8.RuneCountInString(b.Term), utf8.RuneCountInString(a.Term)); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})

	folded := Fold(strings.TrimSpace(query))
	seen := make(map[string]bool)
	out := make([]string, 0, limit)
	push := func(term string) bool {
		key := Fold(term)
		if key == "" || seen[key] {
			return len(out) < limit
		}
		seen[key] = true
		out = append(out, term)
		return len(out) < limit
	}

	for _, c := range candidates {
		if !push(c.Term) {
			return out
		}
	}
	for _, p := range predefined {
		if folded != "" && !strings.Contains(Fold(p), folded) {
			continue
		}
		if !push(p) {
			return out
		}
	}
	return out
}

// GenerateSuggestions returns up to limit terms from records related to query.
func GenerateSuggestions[T any](query string, records []T, ix Index[T], limit int) []string {
	return RankSuggestions(ix.Terms(query, records), nil, query, limit)
}
