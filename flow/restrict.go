package flow

import (
	"go/token"

	"honnef.co/go/rangecheck/go/ivl"
)

// complement maps a comparison operator to the operator that describes
// the path not taken: the pair that splits an if/while condition into its
// true-branch and false-branch restrictions.
var complement = map[token.Token]token.Token{
	token.LEQ: token.GTR,
	token.GTR: token.LEQ,
	token.GEQ: token.LSS,
	token.LSS: token.GEQ,
	token.EQL: token.NEQ,
	token.NEQ: token.EQL,
}

func minMax() (Int, Int) {
	lo, hi, _ := ivl.Top[Int]().Bounds()
	return lo, hi
}

// restrict narrows store[name] against the comparison `name op bound`,
// returning a new store (the input is never mutated: locations read and
// write distinct store objects by the builder's construction). Each case
// is a meet of the current interval against the half- or full-bound
// implied by op.
func restrict(s *Store, name string, op token.Token, bound Interval) *Store {
	out := s.Clone()
	cur := s.Get(name)
	a, b, boundOK := bound.Bounds()
	lo, hi := minMax()

	var narrowed Interval
	switch {
	case !boundOK:
		narrowed = ivl.Bottom[Int]()
	case op == token.LEQ:
		narrowed = cur.Meet(ivl.FromBounds(lo, b))
	case op == token.LSS:
		if b == lo {
			narrowed = ivl.Bottom[Int]()
		} else {
			narrowed = cur.Meet(ivl.FromBounds(lo, b-1))
		}
	case op == token.GEQ:
		narrowed = cur.Meet(ivl.FromBounds(a, hi))
	case op == token.GTR:
		if a == hi {
			narrowed = ivl.Bottom[Int]()
		} else {
			narrowed = cur.Meet(ivl.FromBounds(a+1, hi))
		}
	case op == token.EQL:
		narrowed = cur.Meet(ivl.FromBounds(a, b))
	case op == token.NEQ:
		narrowed = subtractPoint(cur, a, b)
	default:
		narrowed = cur
	}

	out.Set(name, narrowed)
	return out
}

// subtractPoint implements the "≠" restriction: removing [a,b] from cur
// only sharpens the bound when [a,b] abuts one of cur's edges; an
// interior or disjoint [a,b] leaves cur unchanged. Sound but imprecise:
// an interval can't represent a hole in its own middle.
func subtractPoint(cur Interval, a, b Int) Interval {
	lo, hi, ok := cur.Bounds()
	if !ok {
		return cur
	}
	_, maxT := minMax()
	switch {
	case a == lo && b == hi:
		return ivl.Bottom[Int]()
	case a <= lo && lo <= b:
		if b == maxT {
			return ivl.Bottom[Int]()
		}
		return ivl.FromBounds(b+1, hi)
	case a <= hi && hi <= b:
		minT, _ := minMax()
		if a == minT {
			return ivl.Bottom[Int]()
		}
		return ivl.FromBounds(lo, a-1)
	default:
		return cur
	}
}

// satisfies implements the postcondition comparison table: an
// endpoint-extrema reading, not universal quantification over the two
// intervals' concrete elements. A deliberate, documented choice — see
// DESIGN.md — rather than an accidentally inherited one.
func satisfies(op token.Token, l, r Interval) bool {
	llo, lhi, lok := l.Bounds()
	rlo, rhi, rok := r.Bounds()
	if !lok || !rok {
		return true
	}
	switch op {
	case token.LEQ:
		return lhi <= rhi && llo <= rlo
	case token.LSS:
		return lhi < rhi && llo < rlo
	case token.GEQ:
		return llo >= rlo && lhi >= rhi
	case token.GTR:
		return llo > rlo && lhi > rhi
	case token.EQL:
		return llo == rlo && lhi == rhi
	case token.NEQ:
		return !(llo == rlo && lhi == rhi)
	default:
		return false
	}
}
