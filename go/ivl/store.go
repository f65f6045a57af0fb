package ivl

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// Store is σ : Name → Interval. Iteration is deterministic: SortedNames and
// Equal always visit variables lexicographically, since store equality is
// the Jacobi solver's termination predicate and must not depend on Go's
// randomized map iteration order.
type Store[T Integer] struct {
	vars map[string]Interval[T]
}

// New returns an empty store; every variable not yet Set reads as ⊤ (see Get).
func New[T Integer]() *Store[T] {
	return &Store[T]{vars: map[string]Interval[T]{}}
}

// Get returns the interval bound to name, or ⊤ if name has never been Set.
// An unbound variable is not the same as one explicitly bound to ⊤: both
// evaluate the same way, which is the point of the "missing name reads as
// ⊤" rule.
func (s *Store[T]) Get(name string) Interval[T] {
	if iv, ok := s.vars[name]; ok {
		return iv
	}
	return Top[T]()
}

// Set binds name to iv, overwriting any previous binding.
func (s *Store[T]) Set(name string, iv Interval[T]) {
	s.vars[name] = iv
}

// IsBottom reports whether s represents an unreachable program point: any
// variable bound to ⊥ makes the whole store unreachable, since a variable
// can only be ⊥ as the result of a condition that can never hold along
// this path. Transfer functions check this before doing further work so
// that a location inside dead code doesn't resurrect reachability by
// overwriting the ⊥ variable with a fresh, ordinary value.
func (s *Store[T]) IsBottom() bool {
	for _, iv := range s.vars {
		if iv.IsBottom() {
			return true
		}
	}
	return false
}

// SortedNames returns the union of variable names bound in s, sorted
// lexicographically, via golang.org/x/exp/maps.Keys — this predates the
// standard library's maps.Keys and slices.Sort (Go 1.21 folded both into
// "maps" and "slices"), which is the era honnef.co/go/tools/config and its
// siblings were written for, and remains the idiom the rest of this
// codebase's dependency set follows.
func (s *Store[T]) SortedNames() []string {
	names := maps.Keys(s.vars)
	sort.Strings(names)
	return names
}

// JoinAll returns a new store that is the pointwise join of s and other
// over the union of their keys. A key missing from one side is treated as
// bound to ⊥ there, so the joined result simply adopts the other side's
// interval for that key.
func (s *Store[T]) JoinAll(other *Store[T]) *Store[T] {
	out := New[T]()
	seen := map[string]struct{}{}
	for name, iv := range s.vars {
		seen[name] = struct{}{}
		if oiv, ok := other.vars[name]; ok {
			out.Set(name, iv.Join(oiv))
		} else {
			out.Set(name, iv)
		}
	}
	for name, iv := range other.vars {
		if _, ok := seen[name]; ok {
			continue
		}
		out.Set(name, iv)
	}
	return out
}

// Equal is structural equality over the union of both stores' keys,
// treating a missing key as ⊤ (matching Get), and comparing every interval
// with Interval.Equal (which distinguishes ⊥ from every other interval).
func (s *Store[T]) Equal(other *Store[T]) bool {
	seen := map[string]struct{}{}
	for name := range s.vars {
		seen[name] = struct{}{}
		if !s.Get(name).Equal(other.Get(name)) {
			return false
		}
	}
	for name := range other.vars {
		if _, ok := seen[name]; ok {
			continue
		}
		if !s.Get(name).Equal(other.Get(name)) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of s. Interval is a value type, so copying the
// map is sufficient.
func (s *Store[T]) Clone() *Store[T] {
	out := New[T]()
	for name, iv := range s.vars {
		out.vars[name] = iv
	}
	return out
}

// Print renders s deterministically, one "name = interval" pair per
// variable in lexicographic order.
func (s *Store[T]) Print() string {
	names := s.SortedNames()
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s = %s", name, s.vars[name])
	}
	return strings.Join(parts, ", ")
}

func (s *Store[T]) String() string { return s.Print() }
