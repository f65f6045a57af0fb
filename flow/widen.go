package flow

import "honnef.co/go/rangecheck/go/ivl"

// widenStore computes the widened join of two consecutive while-loop-head
// candidates: prev is the store last used as loop-head input, cur is the
// newly joined candidate (before ⊔ feedback). Per variable, a bound that
// moved outward relative to prev jumps straight to the element type's
// MIN/MAX instead of adopting the new value verbatim; a bound that held
// steady is kept as-is. Plain Jacobi iteration over an unbounded loop
// body never reaches a fixpoint on its own; this operator is what forces
// one. See DESIGN.md for why this shape was chosen over widening to ⊤
// outright.
func widenStore(prev, cur *Store) *Store {
	out := ivl.New[Int]()
	seen := map[string]struct{}{}
	for _, name := range prev.SortedNames() {
		seen[name] = struct{}{}
		out.Set(name, widenInterval(prev.Get(name), cur.Get(name)))
	}
	for _, name := range cur.SortedNames() {
		if _, ok := seen[name]; ok {
			continue
		}
		out.Set(name, widenInterval(prev.Get(name), cur.Get(name)))
	}
	return out
}

func widenInterval(prev, cur Interval) Interval {
	plo, phi, pok := prev.Bounds()
	clo, chi, cok := cur.Bounds()
	if !pok {
		return cur
	}
	if !cok {
		return prev
	}
	lo, hi := minMax()

	newLo := plo
	if clo < plo {
		newLo = lo
	}
	newHi := phi
	if chi > phi {
		newHi = hi
	}
	return ivl.FromBounds(newLo, newHi)
}
