// Package ast defines the node types that the parser produces and that the
// abstract interpreter's builder consumes. Nothing in this package does any
// interpretation; it is the contract between the two sides.
//
// Operators are represented with go/token.Token rather than a bespoke enum:
// the toy language's arithmetic and comparison operators are a strict subset
// of Go's, and reusing token.Token lets the rest of the module (the scanner
// in package parse, position formatting in package report) work with the
// standard library's own vocabulary instead of a parallel one.
package ast

import "go/token"

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Pos
}

// Program is the root of a parsed source file.
type Program struct {
	Decls         []*Decl
	Preconditions []*Precondition
	Stmts         []Stmt
}

// Decl introduces a variable, e.g. "int x;".
type Decl struct {
	NamePos token.Pos
	Name    string
}

func (d *Decl) Pos() token.Pos { return d.NamePos }

// Precondition constrains a single variable against a constant, e.g.
// "0 <= x;" or "x <= 10;". The builder is responsible for rejecting
// preconditions that aren't of this shape.
type Precondition struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (p *Precondition) Pos() token.Pos { return p.Left.Pos() }

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Assign is "name = value;".
type Assign struct {
	EqPos token.Pos
	Name  string
	Value Expr
}

func (s *Assign) Pos() token.Pos { return s.EqPos }
func (*Assign) stmtNode()        {}

// If is "if (var op cond) { then } [else { els }]".
//
// The condition's left operand is required to be a bare variable
// reference; the parser enforces this and If only stores the variable's
// name plus the comparison operator and the right-hand expression.
type If struct {
	IfPos   token.Pos
	Var     string
	Op      token.Token
	Cond    Expr
	Then    []Stmt
	Else    []Stmt
	HasElse bool
}

func (s *If) Pos() token.Pos { return s.IfPos }
func (*If) stmtNode()        {}

// While is "while (var op cond) { body }". Same left-operand restriction as If.
type While struct {
	WhilePos token.Pos
	Var      string
	Op       token.Token
	Cond     Expr
	Body     []Stmt
}

func (s *While) Pos() token.Pos { return s.WhilePos }
func (*While) stmtNode()        {}

// Assert is "assert(left op right);", i.e. a postcondition.
type Assert struct {
	AssertPos token.Pos
	Left      Expr
	Op        token.Token
	Right     Expr
}

func (s *Assert) Pos() token.Pos { return s.AssertPos }
func (*Assert) stmtNode()        {}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Lit is an integer literal.
type Lit struct {
	LitPos token.Pos
	Value  int64
}

func (e *Lit) Pos() token.Pos { return e.LitPos }
func (*Lit) exprNode()        {}

// Var is a variable reference.
type Var struct {
	VarPos token.Pos
	Name   string
}

func (e *Var) Pos() token.Pos { return e.VarPos }
func (*Var) exprNode()        {}

// BinOp is an arithmetic expression: X Op Y, where Op is one of
// token.ADD, token.SUB, token.MUL, token.QUO.
type BinOp struct {
	OpPos token.Pos
	Op    token.Token
	X, Y  Expr
}

func (e *BinOp) Pos() token.Pos { return e.OpPos }
func (*BinOp) exprNode()        {}

// IsComparison reports whether tok is one of the six comparison operators
// the language supports in preconditions, if/while conditions, and asserts.
func IsComparison(tok token.Token) bool {
	switch tok {
	case token.LEQ, token.LSS, token.GEQ, token.GTR, token.EQL, token.NEQ:
		return true
	default:
		return false
	}
}
