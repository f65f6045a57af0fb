// Package parse turns ".rc" source text into ast nodes: a hand-written
// lexer feeding a recursive-descent parser, with a byte-at-a-time Next()
// loop, keywords lexed as identifiers and distinguished by their text,
// and every internal error returned rather than panicked past the
// parser's public entry points.
//
// Operators and punctuation are reported as go/token.Token values rather
// than a bespoke kind enum, continuing the choice package ast documents;
// positions are go/token.Pos offsets into a caller-supplied *token.File,
// so diagnostics downstream format exactly the way the standard library's
// own tools do.
package parse

import (
	"go/token"
	"strconv"

	"honnef.co/go/rangecheck/diagnostic"
)

// Token is one lexical token: an operator/punctuation kind from
// go/token, or token.IDENT/token.INT with Lit carrying the text.
// Keywords ("int", "if", "else", "while", "assert") are lexed as
// token.IDENT; the parser distinguishes them from variable names by Lit.
type Token struct {
	Tok token.Token
	Lit string
	Pos token.Pos
}

// Lexer scans src one byte at a time. It owns no *token.File state beyond
// registering line starts as it encounters newlines, so the same File
// backs every position the rest of the pipeline reports against.
type Lexer struct {
	file *token.File
	src  string
	pos  int
}

func NewLexer(file *token.File, src string) *Lexer {
	return &Lexer{file: file, src: src}
}

func (l *Lexer) filePos(offset int) token.Pos {
	return l.file.Pos(offset)
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.file.AddLine(l.pos)
	}
	return c
}

func (l *Lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		switch c := l.peekByte(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.peekByteAt(1) == '/':
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// Next returns the next token, or a fatal *diagnostic.FatalError for an
// unrecognized byte. A well-formed source never errors here; lexical
// errors are fatal per the language's error-handling design, distinct
// from the core's own "unknown AST node" fatal path.
func (l *Lexer) Next() (Token, error) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.src) {
		return Token{Tok: token.EOF, Pos: l.filePos(l.pos)}, nil
	}

	start := l.pos
	c := l.peekByte()

	switch {
	case isDigit(c):
		return l.lexInt(start)
	case isIdentStart(c):
		return l.lexIdent(start)
	default:
		return l.lexOperator(start)
	}
}

func (l *Lexer) lexInt(start int) (Token, error) {
	for isDigit(l.peekByte()) {
		l.advance()
	}
	lit := l.src[start:l.pos]
	if _, err := strconv.ParseInt(lit, 10, 64); err != nil {
		return Token{}, diagnostic.Fatalf(l.file.Position(l.filePos(start)), "invalid integer literal %q: %w", lit, err)
	}
	return Token{Tok: token.INT, Lit: lit, Pos: l.filePos(start)}, nil
}

func (l *Lexer) lexIdent(start int) (Token, error) {
	for isIdentPart(l.peekByte()) {
		l.advance()
	}
	return Token{Tok: token.IDENT, Lit: l.src[start:l.pos], Pos: l.filePos(start)}, nil
}

func (l *Lexer) lexOperator(start int) (Token, error) {
	c := l.advance()
	pos := l.filePos(start)

	two := func(next byte, withNext, without token.Token) (Token, error) {
		if l.peekByte() == next {
			l.advance()
			return Token{Tok: withNext, Pos: pos}, nil
		}
		return Token{Tok: without, Pos: pos}, nil
	}

	switch c {
	case '(':
		return Token{Tok: token.LPAREN, Pos: pos}, nil
	case ')':
		return Token{Tok: token.RPAREN, Pos: pos}, nil
	case '{':
		return Token{Tok: token.LBRACE, Pos: pos}, nil
	case '}':
		return Token{Tok: token.RBRACE, Pos: pos}, nil
	case ';':
		return Token{Tok: token.SEMICOLON, Pos: pos}, nil
	case '+':
		return Token{Tok: token.ADD, Pos: pos}, nil
	case '-':
		return Token{Tok: token.SUB, Pos: pos}, nil
	case '*':
		return Token{Tok: token.MUL, Pos: pos}, nil
	case '/':
		return Token{Tok: token.QUO, Pos: pos}, nil
	case '=':
		return two('=', token.EQL, token.ASSIGN)
	case '<':
		return two('=', token.LEQ, token.LSS)
	case '>':
		return two('=', token.GEQ, token.GTR)
	case '!':
		if l.peekByte() == '=' {
			l.advance()
			return Token{Tok: token.NEQ, Pos: pos}, nil
		}
		return Token{}, diagnostic.Fatalf(l.file.Position(pos), "unexpected character %q", c)
	default:
		return Token{}, diagnostic.Fatalf(l.file.Position(pos), "unexpected character %q", c)
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
