package flow

import (
	"go/token"

	"honnef.co/go/rangecheck/ast"
	"honnef.co/go/rangecheck/diagnostic"
	"honnef.co/go/rangecheck/go/ivl"
)

// eval recursively evaluates e against σ, producing the abstract interval
// for e. Leaves are literals (point intervals) and variables (store
// lookup); interior nodes are arithmetic operators. Overflow and
// division-by-zero hazards are reported through ctx rather than
// returned, matching the error-handling design: these are warnings, not
// failures, and must not interrupt the iteration.
func eval(ctx *Context, s *Store, e ast.Expr) Interval {
	switch n := e.(type) {
	case *ast.Lit:
		return ivl.Point[Int](Int(n.Value))
	case *ast.Var:
		return s.Get(n.Name)
	case *ast.BinOp:
		return evalBinOp(ctx, s, n)
	default:
		panic(diagnostic.Fatalf(ctx.Fset.Position(e.Pos()), "unknown expression node %T", e))
	}
}

func evalBinOp(ctx *Context, s *Store, n *ast.BinOp) Interval {
	x := eval(ctx, s, n.X)
	y := eval(ctx, s, n.Y)

	switch n.Op {
	case token.ADD:
		r, overflowed := x.Add(y)
		if overflowed {
			ctx.warn(n.OpPos, diagnostic.CategoryOverflow, "addition overflowed %s bounds", intTypeName)
		}
		return r
	case token.SUB:
		r, overflowed := x.Sub(y)
		if overflowed {
			ctx.warn(n.OpPos, diagnostic.CategoryOverflow, "subtraction overflowed %s bounds", intTypeName)
		}
		return r
	case token.MUL:
		r, overflowed := x.Mul(y)
		if overflowed {
			ctx.warn(n.OpPos, diagnostic.CategoryOverflow, "multiplication overflowed %s bounds", intTypeName)
		}
		return r
	case token.QUO:
		res := x.Div(y)
		if res.DivByZero {
			ctx.warn(n.OpPos, diagnostic.CategoryDivisionByZero, "division by an interval that may be zero")
		}
		if res.Overflowed {
			ctx.warn(n.OpPos, diagnostic.CategoryOverflow, "division overflowed %s bounds", intTypeName)
		}
		return res.Value
	default:
		panic(diagnostic.Fatalf(ctx.Fset.Position(n.OpPos), "unknown arithmetic operator %s", n.Op))
	}
}

const intTypeName = "int64"
