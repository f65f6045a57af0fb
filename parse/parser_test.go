package parse

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"honnef.co/go/rangecheck/ast"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	fset := token.NewFileSet()
	file := fset.AddFile("test.rc", -1, len(src))
	prog, err := ParseFile(file, src)
	require.NoError(t, err)
	return prog
}

func TestParseDeclsPreconditionsAndAssignment(t *testing.T) {
	prog := parseSrc(t, `
int x;
0 <= x;
x <= 10;
x = x + 1;
`)
	require.Len(t, prog.Decls, 1)
	require.Equal(t, "x", prog.Decls[0].Name)

	require.Len(t, prog.Preconditions, 2)
	require.Equal(t, token.LEQ, prog.Preconditions[0].Op)
	require.Equal(t, token.LEQ, prog.Preconditions[1].Op)

	require.Len(t, prog.Stmts, 1)
	assign, ok := prog.Stmts[0].(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, "x", assign.Name)
	binop, ok := assign.Value.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, token.ADD, binop.Op)
}

func TestParseIfElse(t *testing.T) {
	prog := parseSrc(t, `
int x;
if (x == 3) {
	x = 1;
} else {
	x = 0;
}
`)
	require.Len(t, prog.Stmts, 1)
	ifStmt, ok := prog.Stmts[0].(*ast.If)
	require.True(t, ok)
	require.Equal(t, "x", ifStmt.Var)
	require.Equal(t, token.EQL, ifStmt.Op)
	require.True(t, ifStmt.HasElse)
	require.Len(t, ifStmt.Then, 1)
	require.Len(t, ifStmt.Else, 1)
}

func TestParseWhile(t *testing.T) {
	prog := parseSrc(t, `
int x;
while (x < 10) {
	x = x + 1;
}
`)
	require.Len(t, prog.Stmts, 1)
	whileStmt, ok := prog.Stmts[0].(*ast.While)
	require.True(t, ok)
	require.Equal(t, "x", whileStmt.Var)
	require.Equal(t, token.LSS, whileStmt.Op)
	require.Len(t, whileStmt.Body, 1)
}

func TestParseAssert(t *testing.T) {
	prog := parseSrc(t, `
int x;
x = 5;
assert(x == 5);
`)
	require.Len(t, prog.Stmts, 2)
	assertStmt, ok := prog.Stmts[1].(*ast.Assert)
	require.True(t, ok)
	require.Equal(t, token.EQL, assertStmt.Op)
	lit, ok := assertStmt.Right.(*ast.Lit)
	require.True(t, ok)
	require.Equal(t, int64(5), lit.Value)
}

func TestParsePrecedence(t *testing.T) {
	prog := parseSrc(t, `
int x;
x = 1 + 2 * 3;
`)
	assign := prog.Stmts[0].(*ast.Assign)
	top, ok := assign.Value.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, token.ADD, top.Op)
	_, ok = top.X.(*ast.Lit)
	require.True(t, ok)
	mul, ok := top.Y.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, token.MUL, mul.Op)
}

func TestParseRejectsNonVariableAssignTarget(t *testing.T) {
	fset := token.NewFileSet()
	src := "5 = 3;"
	file := fset.AddFile("test.rc", -1, len(src))
	_, err := ParseFile(file, src)
	require.Error(t, err)
}

func TestParseRejectsMalformedPrecondition(t *testing.T) {
	fset := token.NewFileSet()
	src := "int x;\nx + 1;\n"
	file := fset.AddFile("test.rc", -1, len(src))
	_, err := ParseFile(file, src)
	require.Error(t, err)
}
