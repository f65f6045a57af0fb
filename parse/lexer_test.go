package parse

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	fset := token.NewFileSet()
	file := fset.AddFile("test.rc", -1, len(src))
	lex := NewLexer(file, src)

	var toks []Token
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Tok == token.EOF {
			return toks
		}
	}
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	toks := lexAll(t, "( ) { } ; + - * / = == < <= > >= !=")
	var kinds []token.Token
	for _, tok := range toks {
		kinds = append(kinds, tok.Tok)
	}
	require.Equal(t, []token.Token{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.SEMICOLON,
		token.ADD, token.SUB, token.MUL, token.QUO,
		token.ASSIGN, token.EQL, token.LSS, token.LEQ, token.GTR, token.GEQ, token.NEQ,
		token.EOF,
	}, kinds)
}

func TestLexerIdentifiersAndInts(t *testing.T) {
	toks := lexAll(t, "int x123 _y 42 007")
	require.Equal(t, "int", toks[0].Lit)
	require.Equal(t, token.IDENT, toks[0].Tok)
	require.Equal(t, "x123", toks[1].Lit)
	require.Equal(t, "_y", toks[2].Lit)
	require.Equal(t, token.INT, toks[3].Tok)
	require.Equal(t, "42", toks[3].Lit)
	require.Equal(t, "007", toks[4].Lit)
}

func TestLexerSkipsLineComments(t *testing.T) {
	toks := lexAll(t, "x // this is a comment\ny")
	require.Equal(t, "x", toks[0].Lit)
	require.Equal(t, "y", toks[1].Lit)
	require.Equal(t, token.EOF, toks[2].Tok)
}

func TestLexerTracksLines(t *testing.T) {
	src := "x\ny\nz"
	fset := token.NewFileSet()
	file := fset.AddFile("test.rc", -1, len(src))
	lex := NewLexer(file, src)

	var positions []token.Position
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		if tok.Tok == token.EOF {
			break
		}
		positions = append(positions, file.Position(tok.Pos))
	}
	require.Equal(t, 1, positions[0].Line)
	require.Equal(t, 2, positions[1].Line)
	require.Equal(t, 3, positions[2].Line)
}

func TestLexerRejectsUnknownCharacter(t *testing.T) {
	fset := token.NewFileSet()
	src := "x & y"
	file := fset.AddFile("test.rc", -1, len(src))
	lex := NewLexer(file, src)

	_, err := lex.Next()
	require.NoError(t, err)
	_, err = lex.Next()
	require.Error(t, err)
}

func TestLexerRejectsBangWithoutEquals(t *testing.T) {
	fset := token.NewFileSet()
	src := "!x"
	file := fset.AddFile("test.rc", -1, len(src))
	lex := NewLexer(file, src)

	_, err := lex.Next()
	require.Error(t, err)
}
