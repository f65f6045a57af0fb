package parse

import (
	"go/token"
	"strconv"

	"honnef.co/go/rangecheck/ast"
	"honnef.co/go/rangecheck/diagnostic"
)

func parseIntLiteral(lit string) (int64, error) {
	return strconv.ParseInt(lit, 10, 64)
}

// Parser is a one-token-lookahead recursive-descent parser over the
// grammar decl* precond* stmt*, where stmt is assign | if | while |
// assert and expr is the usual term/factor arithmetic grammar.
type Parser struct {
	file *token.File
	lex  *Lexer
	cur  Token
}

func NewParser(file *token.File, src string) (*Parser, error) {
	p := &Parser{file: file, lex: NewLexer(file, src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseFile parses src (backed by file) into a complete Program.
func ParseFile(file *token.File, src string) (*ast.Program, error) {
	p, err := NewParser(file, src)
	if err != nil {
		return nil, err
	}
	return p.parseProgram()
}

func (p *Parser) advance() error {
	t, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *Parser) at(tok token.Token) bool { return p.cur.Tok == tok }

func (p *Parser) atKeyword(kw string) bool {
	return p.cur.Tok == token.IDENT && p.cur.Lit == kw
}

func (p *Parser) errorf(format string, args ...any) error {
	return diagnostic.Fatalf(p.file.Position(p.cur.Pos), format, args...)
}

func (p *Parser) expect(tok token.Token) (Token, error) {
	if p.cur.Tok != tok {
		return Token{}, p.errorf("expected %s, got %s %q", tok, p.cur.Tok, p.cur.Lit)
	}
	t := p.cur
	return t, p.advance()
}

func (p *Parser) expectKeyword(kw string) (Token, error) {
	if !p.atKeyword(kw) {
		return Token{}, p.errorf("expected %q, got %q", kw, p.cur.Lit)
	}
	t := p.cur
	return t, p.advance()
}

func (p *Parser) expectIdent() (Token, error) {
	if !p.at(token.IDENT) {
		return Token{}, p.errorf("expected identifier, got %s", p.cur.Tok)
	}
	t := p.cur
	return t, p.advance()
}

func isCmp(tok token.Token) bool { return ast.IsComparison(tok) }

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}

	for p.atKeyword("int") {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, d)
	}

	for !p.at(token.EOF) && !p.atKeyword("if") && !p.atKeyword("while") && !p.atKeyword("assert") {
		left, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.at(token.ASSIGN) {
			s, err := p.parseAssignFrom(left)
			if err != nil {
				return nil, err
			}
			prog.Stmts = append(prog.Stmts, s)
			break
		}
		if !isCmp(p.cur.Tok) {
			return nil, p.errorf("expected a comparison operator in precondition, got %s", p.cur.Tok)
		}
		op := p.cur.Tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		prog.Preconditions = append(prog.Preconditions, &ast.Precondition{Left: left, Op: op, Right: right})
	}

	for !p.at(token.EOF) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, s)
	}

	return prog, nil
}

func (p *Parser) parseDecl() (*ast.Decl, error) {
	if _, err := p.expectKeyword("int"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Decl{NamePos: name.Pos, Name: name.Lit}, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch {
	case p.atKeyword("if"):
		return p.parseIf()
	case p.atKeyword("while"):
		return p.parseWhile()
	case p.atKeyword("assert"):
		return p.parseAssert()
	case p.at(token.IDENT):
		left, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return p.parseAssignFrom(left)
	default:
		return nil, p.errorf("expected a statement, got %s %q", p.cur.Tok, p.cur.Lit)
	}
}

func (p *Parser) parseAssignFrom(left ast.Expr) (ast.Stmt, error) {
	v, ok := left.(*ast.Var)
	if !ok {
		return nil, diagnostic.Fatalf(p.file.Position(left.Pos()), "left side of an assignment must be a variable")
	}
	eq, err := p.expect(token.ASSIGN)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Assign{EqPos: eq.Pos, Name: v.Name, Value: value}, nil
}

// parseCondHeader parses "( ident cmp expr )", the shared shape of if
// and while conditions: the left operand of the comparison is required
// to be a bare variable reference.
func (p *Parser) parseCondHeader() (name string, op token.Token, cond ast.Expr, err error) {
	if _, err = p.expect(token.LPAREN); err != nil {
		return "", 0, nil, err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return "", 0, nil, err
	}
	if !isCmp(p.cur.Tok) {
		return "", 0, nil, p.errorf("expected a comparison operator, got %s", p.cur.Tok)
	}
	op = p.cur.Tok
	if err = p.advance(); err != nil {
		return "", 0, nil, err
	}
	cond, err = p.parseExpr()
	if err != nil {
		return "", 0, nil, err
	}
	if _, err = p.expect(token.RPAREN); err != nil {
		return "", 0, nil, err
	}
	return nameTok.Lit, op, cond, nil
}

func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.at(token.RBRACE) {
		if p.at(token.EOF) {
			return nil, p.errorf("unexpected end of file inside block")
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	kw, err := p.expectKeyword("if")
	if err != nil {
		return nil, err
	}
	name, op, cond, err := p.parseCondHeader()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{IfPos: kw.Pos, Var: name, Op: op, Cond: cond, Then: then}
	if p.atKeyword("else") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		els, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = els
		stmt.HasElse = true
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	kw, err := p.expectKeyword("while")
	if err != nil {
		return nil, err
	}
	name, op, cond, err := p.parseCondHeader()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{WhilePos: kw.Pos, Var: name, Op: op, Cond: cond, Body: body}, nil
}

func (p *Parser) parseAssert() (ast.Stmt, error) {
	kw, err := p.expectKeyword("assert")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !isCmp(p.cur.Tok) {
		return nil, p.errorf("expected a comparison operator, got %s", p.cur.Tok)
	}
	op := p.cur.Tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Assert{AssertPos: kw.Pos, Left: left, Op: op, Right: right}, nil
}

// expr := term (("+"|"-") term)*
func (p *Parser) parseExpr() (ast.Expr, error) {
	x, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.at(token.ADD) || p.at(token.SUB) {
		op := p.cur.Tok
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		x = &ast.BinOp{OpPos: pos, Op: op, X: x, Y: y}
	}
	return x, nil
}

// term := factor (("*"|"/") factor)*
func (p *Parser) parseTerm() (ast.Expr, error) {
	x, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.at(token.MUL) || p.at(token.QUO) {
		op := p.cur.Tok
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		x = &ast.BinOp{OpPos: pos, Op: op, X: x, Y: y}
	}
	return x, nil
}

// factor := INT | ident | "(" expr ")"
func (p *Parser) parseFactor() (ast.Expr, error) {
	switch {
	case p.at(token.INT):
		t := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := parseIntLiteral(t.Lit)
		if err != nil {
			return nil, diagnostic.Fatalf(p.file.Position(t.Pos), "%w", err)
		}
		return &ast.Lit{LitPos: t.Pos, Value: v}, nil
	case p.at(token.IDENT):
		t := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Var{VarPos: t.Pos, Name: t.Lit}, nil
	case p.at(token.LPAREN):
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return x, nil
	default:
		return nil, p.errorf("expected an integer, identifier, or parenthesized expression, got %s", p.cur.Tok)
	}
}
