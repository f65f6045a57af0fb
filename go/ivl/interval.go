// Package ivl implements the interval abstract domain: a bounded lattice of
// integer ranges ordered by inclusion, plus the abstract arithmetic and
// comparison operators the interpreter evaluates expressions with.
//
// This is a generalization of the range-analysis groundwork in
// honnef.co/go/tools/go/vrp: that package computes intervals for values in
// a Go program's SSA form using arbitrary-precision big.Int bounds tied to
// go/types. Here the element type is a fixed-width signed integer type
// parameter, and intervals stand for the possible values of a toy
// language's variables rather than of SSA registers.
package ivl

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"honnef.co/go/rangecheck/go/lattice"
)

// Integer is the set of element types an Interval can be built over.
type Integer interface {
	constraints.Signed
}

// bounds returns the minimum and maximum representable value of T.
//
// Mirrors the type switch honnef.co/go/tools/go/vrp/int.go's NewInt uses to
// dispatch across concrete integer kinds; math.MinIntN/MaxIntN don't exist
// as generic functions in the standard library; this is the least surprising
// point in the codebase to hand-list them once.
func bounds[T Integer]() (lo, hi T) {
	var zero T
	switch any(zero).(type) {
	case int8:
		l, h := int8(math.MinInt8), int8(math.MaxInt8)
		return any(l).(T), any(h).(T)
	case int16:
		l, h := int16(math.MinInt16), int16(math.MaxInt16)
		return any(l).(T), any(h).(T)
	case int32:
		l, h := int32(math.MinInt32), int32(math.MaxInt32)
		return any(l).(T), any(h).(T)
	case int64:
		l, h := int64(math.MinInt64), int64(math.MaxInt64)
		return any(l).(T), any(h).(T)
	case int:
		l, h := math.MinInt, math.MaxInt
		return any(l).(T), any(h).(T)
	default:
		panic(fmt.Sprintf("ivl: unsupported element type %T", zero))
	}
}

// Interval is I = ⟨lb, ub, empty⟩. The empty flag is first-class: a
// normalized non-empty interval always has lb <= ub, and ⊥ is never encoded
// as lb > ub.
type Interval[T Integer] struct {
	lo, hi T
	empty  bool
}

// Bottom returns ⊥, the empty interval.
func Bottom[T Integer]() Interval[T] {
	return Interval[T]{empty: true}
}

// Top returns ⊤ = [MIN_T, MAX_T].
func Top[T Integer]() Interval[T] {
	lo, hi := bounds[T]()
	return Interval[T]{lo: lo, hi: hi}
}

// Point returns the single-value interval [v, v].
func Point[T Integer](v T) Interval[T] {
	return Interval[T]{lo: v, hi: v}
}

// FromBounds returns [lo, hi], or ⊥ if lo > hi, per the
// Interval.normalize contract.
func FromBounds[T Integer](lo, hi T) Interval[T] {
	iv := Interval[T]{lo: lo, hi: hi}
	iv.normalize()
	return iv
}

// normalize enforces the invariant that a non-empty interval has lo <= hi,
// collapsing an inverted range to ⊥.
func (iv *Interval[T]) normalize() {
	if !iv.empty && iv.lo > iv.hi {
		*iv = Bottom[T]()
	}
}

// IsBottom reports whether iv is ⊥.
func (iv Interval[T]) IsBottom() bool { return iv.empty }

// IsTop reports whether iv spans the full representable range.
func (iv Interval[T]) IsTop() bool {
	lo, hi := bounds[T]()
	return !iv.empty && iv.lo == lo && iv.hi == hi
}

// Bounds returns (lo, hi, ok); ok is false when iv is ⊥.
func (iv Interval[T]) Bounds() (lo, hi T, ok bool) {
	if iv.empty {
		return 0, 0, false
	}
	return iv.lo, iv.hi, true
}

func (iv Interval[T]) String() string {
	if iv.empty {
		return "⊥"
	}
	return fmt.Sprintf("[%d, %d]", iv.lo, iv.hi)
}

// Equal is structural equality, including the empty flag. This is the
// termination predicate the Jacobi solver's stability check is built on, so
// it must not treat two differently-derived empty intervals as unequal, nor
// treat an empty interval as equal to any non-empty one.
func (iv Interval[T]) Equal(other Interval[T]) bool {
	if iv.empty != other.empty {
		return false
	}
	if iv.empty {
		return true
	}
	return iv.lo == other.lo && iv.hi == other.hi
}

// Join is ⊔: pointwise min-lb, max-ub. ⊥ is the identity element and ⊤ is
// absorbing, both handled by lattice.Combine rather than by hand-rolled
// special cases here.
func (iv Interval[T]) Join(other Interval[T]) Interval[T] {
	return lattice.Combine(func(a, b Interval[T]) Interval[T] {
		return Interval[T]{lo: min(a.lo, b.lo), hi: max(a.hi, b.hi)}
	}, iv, other, Bottom[T](), Top[T]())
}

// Meet is ⊓: pointwise max-lb, min-ub, normalized to ⊥ if the result would
// be inverted. ⊥ is absorbing.
func (iv Interval[T]) Meet(other Interval[T]) Interval[T] {
	if iv.empty || other.empty {
		return Bottom[T]()
	}
	return FromBounds(max(iv.lo, other.lo), min(iv.hi, other.hi))
}

// Contains reports whether other is a subset of iv. ⊥ is contained by every
// interval, and contains only ⊥.
func (iv Interval[T]) Contains(other Interval[T]) bool {
	if other.empty {
		return true
	}
	if iv.empty {
		return false
	}
	return iv.lo <= other.lo && iv.hi >= other.hi
}

// ContainsValue reports whether v is a member of iv.
func (iv Interval[T]) ContainsValue(v T) bool {
	if iv.empty {
		return false
	}
	return iv.lo <= v && v <= iv.hi
}

// addOverflowed reports whether a+b overflowed T, using the same
// sign-comparison trick as honnef.co/go/tools/go/vrp/int.go's Int[T].Add.
func addOverflowed[T Integer](a, b, r T) bool {
	return (r > a) != (b > 0)
}

// subOverflowed mirrors Int[T].Sub in the same file.
func subOverflowed[T Integer](a, b, r T) bool {
	return (r < a) != (b > 0)
}

// clampAdd adds a and b, saturating to MIN_T/MAX_T on overflow and
// reporting whether it did, rather than wrapping around — see DESIGN.md
// for why saturation was chosen over wraparound.
func clampAdd[T Integer](a, b T) (T, bool) {
	r := a + b
	if !addOverflowed(a, b, r) {
		return r, false
	}
	lo, hi := bounds[T]()
	if b > 0 {
		return hi, true
	}
	return lo, true
}

func clampSub[T Integer](a, b T) (T, bool) {
	r := a - b
	if !subOverflowed(a, b, r) {
		return r, false
	}
	lo, hi := bounds[T]()
	if b < 0 {
		return hi, true
	}
	return lo, true
}

func clampMul[T Integer](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	r := a * b
	overflowed := r/b != a
	if !overflowed {
		return r, false
	}
	lo, hi := bounds[T]()
	if (a > 0) == (b > 0) {
		return hi, true
	}
	return lo, true
}

// Add is [a,b]+[c,d] = [a+c, b+d].
func (iv Interval[T]) Add(other Interval[T]) (Interval[T], bool) {
	if iv.empty || other.empty {
		return Bottom[T](), false
	}
	lo, of1 := clampAdd(iv.lo, other.lo)
	hi, of2 := clampAdd(iv.hi, other.hi)
	return FromBounds(lo, hi), of1 || of2
}

// Sub is [a,b]-[c,d] = [a-d, b-c].
func (iv Interval[T]) Sub(other Interval[T]) (Interval[T], bool) {
	if iv.empty || other.empty {
		return Bottom[T](), false
	}
	lo, of1 := clampSub(iv.lo, other.hi)
	hi, of2 := clampSub(iv.hi, other.lo)
	return FromBounds(lo, hi), of1 || of2
}

// Mul is [a,b]×[c,d] = [min(ac,ad,bc,bd), max(...)].
func (iv Interval[T]) Mul(other Interval[T]) (Interval[T], bool) {
	if iv.empty || other.empty {
		return Bottom[T](), false
	}
	ac, o1 := clampMul(iv.lo, other.lo)
	ad, o2 := clampMul(iv.lo, other.hi)
	bc, o3 := clampMul(iv.hi, other.lo)
	bd, o4 := clampMul(iv.hi, other.hi)
	lo := min(min(ac, ad), min(bc, bd))
	hi := max(max(ac, ad), max(bc, bd))
	return FromBounds(lo, hi), o1 || o2 || o3 || o4
}

// DivResult carries the extra soundness-hazard flags that a plain Interval
// can't express: division by an interval that may contain zero.
type DivResult[T Integer] struct {
	Value      Interval[T]
	DivByZero  bool
	Overflowed bool
}

// Div is [a,b]÷[c,d]. If 0 is a member of the divisor, the result is ⊤ and
// DivByZero is set; otherwise the four corner quotients (truncated toward
// zero, i.e. Go's native integer division) are taken.
func (iv Interval[T]) Div(other Interval[T]) DivResult[T] {
	if iv.empty || other.empty {
		return DivResult[T]{Value: Bottom[T]()}
	}
	if other.ContainsValue(0) {
		return DivResult[T]{Value: Top[T](), DivByZero: true}
	}

	quo := func(a, b T) (T, bool) {
		lo, hi := bounds[T]()
		if a == lo && b == -1 {
			return hi, true
		}
		return a / b, false
	}

	ac, o1 := quo(iv.lo, other.lo)
	ad, o2 := quo(iv.lo, other.hi)
	bc, o3 := quo(iv.hi, other.lo)
	bd, o4 := quo(iv.hi, other.hi)
	lo := min(min(ac, ad), min(bc, bd))
	hi := max(max(ac, ad), max(bc, bd))
	return DivResult[T]{Value: FromBounds(lo, hi), Overflowed: o1 || o2 || o3 || o4}
}
