// Package lattice provides small generic helpers for working with
// join-semilattices whose carrier is a comparable Go type.
//
// This is what remains, after adapting it to a non-SSA setting, of
// honnef.co/go/tools/analysis/dfa: that package's Framework/Instance pair
// runs a worklist fixpoint over SSA values and ϕ-nodes, which has no
// counterpart here (the interpreter's fixpoint is the Jacobi solver in
// package flow, iterating over an explicit program-point sequence rather
// than an SSA def-use graph). What does carry over is the shape of a
// bottom/top-aware Join, used by package ivl to implement Interval.Join
// without hand-rolling the ⊥/⊤ special cases at every call site.
package lattice

// Join is a commutative, associative binary operation computing the least
// upper bound of two elements of a join-semilattice.
type Join[S comparable] func(a, b S) S

// Combine wraps a Join so callers don't have to special-case the lattice's
// ⊥ and ⊤ elements or idempotency themselves: x∨⊥=x, x∨⊤=⊤, x∨x=x.
func Combine[S comparable](fn Join[S], a, b, bottom, top S) S {
	switch {
	case a == top || b == top:
		return top
	case a == bottom:
		return b
	case b == bottom:
		return a
	case a == b:
		return a
	default:
		return fn(a, b)
	}
}
