package flow

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"honnef.co/go/rangecheck/ast"
	"honnef.co/go/rangecheck/go/ivl"
)

// Property 3: restrict(sigma, x, op, I)(x) subseteq sigma(x), for every
// comparison operator.
func TestRestrictionIsMonotone(t *testing.T) {
	s := ivl.New[Int]()
	s.Set("x", ivl.FromBounds[Int](-10, 10))
	bound := ivl.FromBounds[Int](2, 5)

	for _, op := range []token.Token{token.LEQ, token.LSS, token.GEQ, token.GTR, token.EQL, token.NEQ} {
		out := restrict(s, "x", op, bound)
		before := s.Get("x")
		after := out.Get("x")
		require.True(t, before.Contains(after), "restrict with %s produced %s, not contained in %s", op, after, before)
	}
}

// Property 4: after Run, a further iteration changes nothing.
func TestFixpointIsStableAfterRun(t *testing.T) {
	prog := &ast.Program{
		Decls: []*ast.Decl{{Name: "x"}},
		Stmts: []ast.Stmt{
			&ast.Assign{Name: "x", Value: lit(0)},
			&ast.While{
				Var: "x", Op: token.LSS, Cond: lit(5),
				Body: []ast.Stmt{&ast.Assign{Name: "x", Value: binop(token.ADD, v("x"), lit(1))}},
			},
		},
	}
	fset := token.NewFileSet()
	builder := NewBuilder(fset, 3)
	locations, precondition, err := builder.Build(prog)
	require.NoError(t, err)

	solver := NewSolver(fset, locations, precondition, 1000, nil)
	require.NoError(t, solver.Run())

	ctx := &Context{Fset: solver.Fset, queues: solver.queues}
	require.True(t, solver.iterate(ctx))
}

// Property 5: running the same program twice produces identical final
// stores.
func TestDeterminism(t *testing.T) {
	build := func() *ast.Program {
		return &ast.Program{
			Decls: []*ast.Decl{{Name: "x"}},
			Preconditions: []*ast.Precondition{
				{Left: lit(0), Op: token.LEQ, Right: v("x")},
				{Left: v("x"), Op: token.LEQ, Right: lit(10)},
			},
			Stmts: []ast.Stmt{
				&ast.If{
					Var: "x", Op: token.EQL, Cond: lit(3),
					Then:    []ast.Stmt{&ast.Assign{Name: "x", Value: lit(100)}},
					Else:    []ast.Stmt{&ast.Assign{Name: "x", Value: lit(0)}},
					HasElse: true,
				},
			},
		}
	}

	locsA, _ := run(t, build(), 3, 1000)
	locsB, _ := run(t, build(), 3, 1000)

	require.Equal(t, len(locsA), len(locsB))
	for i := range locsA {
		outsA, outsB := locsA[i].outputs(), locsB[i].outputs()
		require.Equal(t, len(outsA), len(outsB))
		for j := range outsA {
			if outsA[j] == nil {
				require.Nil(t, outsB[j])
				continue
			}
			require.True(t, outsA[j].Equal(outsB[j]))
		}
	}
}

// Property 6: an if with no else joins afterIfBody with the false-branch
// store the header itself produced, not with a fresh restriction.
func TestEndIfWithNoElseUsesHeaderFalseBranch(t *testing.T) {
	prog := &ast.Program{
		Decls: []*ast.Decl{{Name: "x"}},
		Stmts: []ast.Stmt{
			&ast.Assign{Name: "x", Value: lit(5)},
			&ast.If{
				Var: "x", Op: token.EQL, Cond: lit(5),
				Then: []ast.Stmt{&ast.Assign{Name: "x", Value: lit(1)}},
			},
		},
	}
	locations, _ := run(t, prog, 3, 1000)

	var hdr, endIf *Location
	for _, l := range locations {
		switch l.Kind {
		case KindIf:
			hdr = l
		case KindEndIf:
			endIf = l
		}
	}
	require.NotNil(t, hdr)
	require.NotNil(t, endIf)
	require.False(t, hdr.ifHdr.HasElse)

	require.True(t, endIf.endIf.afterElseBody.Equal(hdr.ifHdr.elseOut))
	want := hdr.ifHdr.elseOut.JoinAll(endIf.endIf.afterIfBody)
	require.True(t, endIf.endIf.after.Equal(want))
}
