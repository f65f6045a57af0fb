package flow

import (
	"go/token"

	"honnef.co/go/rangecheck/ast"
	"honnef.co/go/rangecheck/diagnostic"
	"honnef.co/go/rangecheck/go/ivl"
)

// mirrorOp swaps a comparison's operand order without changing its
// meaning: "5 <= x" (const op var) is read as "x >= 5" (var op' const).
// Distinct from complement in restrict.go, which negates a comparison
// rather than reorienting it.
var mirrorOp = map[token.Token]token.Token{
	token.LEQ: token.GEQ,
	token.GEQ: token.LEQ,
	token.LSS: token.GTR,
	token.GTR: token.LSS,
	token.EQL: token.EQL,
	token.NEQ: token.NEQ,
}

// Builder lowers a parsed Program into the flattened location sequence
// the Solver iterates over, plus the initial precondition store. It
// walks the AST exactly once; nothing here runs the analysis itself.
type Builder struct {
	Fset       *token.FileSet
	WidenAfter int
}

func NewBuilder(fset *token.FileSet, widenAfter int) *Builder {
	return &Builder{Fset: fset, WidenAfter: widenAfter}
}

// Build returns the location sequence and the precondition store derived
// from prog's declarations and precondition clauses.
func (b *Builder) Build(prog *ast.Program) ([]*Location, *Store, error) {
	precondition := ivl.New[Int]()
	for _, d := range prog.Decls {
		precondition.Set(d.Name, ivl.Top[Int]())
	}
	for _, p := range prog.Preconditions {
		if err := b.applyPrecondition(precondition, p); err != nil {
			return nil, nil, err
		}
	}

	locs, err := b.buildStmts(prog.Stmts)
	if err != nil {
		return nil, nil, err
	}
	return locs, precondition, nil
}

func (b *Builder) applyPrecondition(store *Store, p *ast.Precondition) error {
	varExpr, varOK := p.Left.(*ast.Var)
	litExpr, litOK := p.Right.(*ast.Lit)
	op := p.Op

	if !varOK || !litOK {
		// Reversed orientation: const op var.
		if lv, lok := p.Left.(*ast.Lit); lok {
			if rv, rok := p.Right.(*ast.Var); rok {
				mirrored, ok := mirrorOp[op]
				if !ok {
					return diagnostic.Fatalf(b.Fset.Position(p.Pos()), "unknown precondition operator %s", op)
				}
				varExpr, litExpr, op = rv, lv, mirrored
				varOK, litOK = true, true
			}
		}
	}
	if !varOK || !litOK {
		return diagnostic.Fatalf(b.Fset.Position(p.Pos()), "precondition must relate a variable to a constant")
	}

	cur := store.Get(varExpr.Name)
	lo, hi, _ := cur.Bounds()
	c := Int(litExpr.Value)

	switch op {
	case token.LEQ:
		hi = min(hi, c)
	case token.LSS:
		hi = min(hi, c-1)
	case token.GEQ:
		lo = max(lo, c)
	case token.GTR:
		lo = max(lo, c+1)
	case token.EQL:
		lo, hi = c, c
	default:
		return diagnostic.Fatalf(b.Fset.Position(p.Pos()), "unsupported precondition operator %s", op)
	}
	store.Set(varExpr.Name, ivl.FromBounds(lo, hi))
	return nil
}

func (b *Builder) buildStmts(stmts []ast.Stmt) ([]*Location, error) {
	var out []*Location
	for _, s := range stmts {
		locs, err := b.buildStmt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, locs...)
	}
	return out, nil
}

func (b *Builder) buildStmt(s ast.Stmt) ([]*Location, error) {
	switch n := s.(type) {
	case *ast.Assign:
		return []*Location{NewAssign(n.Pos(), n.Name, n.Value)}, nil
	case *ast.Assert:
		return []*Location{NewPostCondition(n.Pos(), n.Left, n.Op, n.Right)}, nil
	case *ast.If:
		return b.buildIf(n)
	case *ast.While:
		return b.buildWhile(n)
	default:
		return nil, diagnostic.Fatalf(b.Fset.Position(s.Pos()), "unknown statement node %T", s)
	}
}

func (b *Builder) buildIf(n *ast.If) ([]*Location, error) {
	thenLocs, err := b.buildStmts(n.Then)
	if err != nil {
		return nil, err
	}
	var elseLocs []*Location
	if n.HasElse {
		elseLocs, err = b.buildStmts(n.Else)
		if err != nil {
			return nil, err
		}
	}

	emptyThen := len(thenLocs) == 0
	emptyElse := n.HasElse && len(elseLocs) == 0
	hdr := NewIf(n.IfPos, n.Var, n.Op, n.Cond, n.HasElse, emptyThen, emptyElse)

	if len(thenLocs) > 0 {
		thenLocs[len(thenLocs)-1].EndsIfBody = true
	}
	if len(elseLocs) > 0 {
		elseLocs[len(elseLocs)-1].EndsElseBody = true
	}

	out := make([]*Location, 0, 2+len(thenLocs)+len(elseLocs))
	out = append(out, hdr)
	out = append(out, thenLocs...)
	out = append(out, elseLocs...)
	out = append(out, NewEndIf(n.Pos()))
	return out, nil
}

func (b *Builder) buildWhile(n *ast.While) ([]*Location, error) {
	bodyLocs, err := b.buildStmts(n.Body)
	if err != nil {
		return nil, err
	}

	hdr := NewWhile(n.WhilePos, n.Var, n.Op, n.Cond, b.WidenAfter)
	if len(bodyLocs) > 0 {
		bodyLocs[len(bodyLocs)-1].EndsWhileBody = true
	}

	out := make([]*Location, 0, 2+len(bodyLocs))
	out = append(out, hdr)
	out = append(out, bodyLocs...)
	out = append(out, NewEndWhile(n.Pos()))
	return out, nil
}
