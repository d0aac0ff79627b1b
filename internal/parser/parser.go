package parser

import (
	"pecan/internal/ast"
	"pecan/internal/lexer"
)

// Parser is a recursive-descent parser over a single token of lookahead. It
// stops at the first error.
type Parser struct {
	lex    *lexer.Lexer
	start  lexer.Position
	tok    lexer.Token
	hasTok bool
	prev   lexer.Token

	// exprLev is negative while parsing a for-loop iterable, where `Name {`
	// opens the loop body rather than a struct literal.
	exprLev int
	// allowRange is set for the first primary of a for-loop iterable.
	allowRange bool
}

func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex, start: lex.Position()}
	p.fill()
	return p
}

// Parse parses a whole source file.
func Parse(filename, source string) (*ast.File, error) {
	return New(lexer.New(filename, source)).ParseFile()
}

// ParseStatement parses source as exactly one statement.
func ParseStatement(source string) (ast.Stmt, error) {
	p := New(lexer.New("", source))
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// ParseExpr parses source as exactly one expression.
func ParseExpr(source string) (ast.Expr, error) {
	p := New(lexer.New("", source))
	expr, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseType parses source as exactly one type annotation.
func ParseType(source string) (ast.Type, error) {
	p := New(lexer.New("", source))
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return typ, nil
}

func (p *Parser) ParseFile() (*ast.File, error) {
	file := &ast.File{Pos: p.start}
	for !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		file.Stmts = append(file.Stmts, stmt)
	}
	if err := p.scanError(); err != nil {
		return nil, err
	}
	return file, nil
}

// ParseStatement parses the next statement, leaving the rest of the input.
func (p *Parser) ParseStatement() (ast.Stmt, error) {
	return p.parseStatement()
}

// ParseExpr parses the next expression, leaving the rest of the input.
func (p *Parser) ParseExpr() (ast.Expr, error) {
	return p.parseExpr()
}
