// Package names resolves loosely spelled player names against a fixed set of
// known names. Matching ignores case and punctuation and tolerates suffix
// variance ("Jr.", "III") through bidirectional substring containment.
package names

import (
	"sort"
	"strings"
	"unicode"
)

// MinContainLength is the shortest normalized key allowed to take part in a
// containment match. Shorter keys only match exactly.
const MinContainLength = 4

// Normalize lowercases, drops punctuation and collapses whitespace
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '/':
			space = true
		}
	}
	return b.String()
}

type entry[T any] struct {
	key   string
	name  string
	value T
}

// Index is built once and queried many times. It is safe for concurrent reads.
type Index[T any] struct {
	exact   map[string]int
	entries []entry[T]
}

// NewIndex builds an index from display names to values. When two names
// normalize to the same key the first one wins.
func NewIndex[T any](values map[string]T) *Index[T] {
	idx := &Index[T]{exact: make(map[string]int, len(values))}

	names := make([]string, 0, len(values))
	for n := range values {
		names = append(names, n)
	}
	// deterministic containment order: longest keys first, then lexical
	sort.Slice(names, func(i, j int) bool {
		ki, kj := Normalize(names[i]), Normalize(names[j])
		if len(ki) != len(kj) {
			return len(ki) > len(kj)
		}
		return ki < kj
	})

	for _, n := range names {
		key := Normalize(n)
		if key == "" {
			continue
		}
		if _, dup := idx.exact[key]; dup {
			continue
		}
		idx.exact[key] = len(idx.entries)
		idx.entries = append(idx.entries, entry[T]{key: key, name: n, value: values[n]})
	}
	return idx
}

// Len returns the number of distinct keys
func (idx *Index[T]) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Match is a successful lookup
type Match[T any] struct {
	Name  string
	Value T
	Exact bool
}

// Lookup resolves a name: exact normalized match first, then bidirectional
// containment.
func (idx *Index[T]) Lookup(name string) (Match[T], bool) {
	if m, ok := idx.LookupExact(name); ok {
		return m, true
	}
	return idx.LookupContains(name)
}

// LookupExact only accepts an exact normalized match
func (idx *Index[T]) LookupExact(name string) (Match[T], bool) {
	if idx == nil {
		return Match[T]{}, false
	}
	if i, ok := idx.exact[Normalize(name)]; ok {
		e := idx.entries[i]
		return Match[T]{Name: e.name, Value: e.value, Exact: true}, true
	}
	return Match[T]{}, false
}

// LookupContains accepts a key that contains the query or is contained by it
func (idx *Index[T]) LookupContains(name string) (Match[T], bool) {
	if idx == nil {
		return Match[T]{}, false
	}
	q := Normalize(name)
	if len(q) < MinContainLength {
		return Match[T]{}, false
	}
	for _, e := range idx.entries {
		if len(e.key) < MinContainLength {
			continue
		}
		if strings.Contains(e.key, q) || strings.Contains(q, e.key) {
			return Match[T]{Name: e.name, Value: e.value}, true
		}
	}
	return Match[T]{}, false
}
