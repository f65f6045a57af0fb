// Package flow lowers a parsed program into a linear sequence of program
// points ("locations") and runs the Jacobi fixpoint solver over them,
// implementing an interval abstract interpreter for the toy imperative
// language in package ast.
package flow

import "honnef.co/go/rangecheck/go/ivl"

// Int is the concrete integer type the shipped interpreter instantiates
// the generic interval/store machinery with. The interval and store
// machinery in package ivl is generic over the integer element type;
// this package is where a concrete type gets picked.
type Int = int64

// Interval and Store are the Int-instantiated forms of the generic types
// in package ivl; every part of package flow works with these, never with
// the generic ivl.Interval[T]/ivl.Store[T] directly.
type Interval = ivl.Interval[Int]
type Store = ivl.Store[Int]
