package parser

import (
	"fmt"

	"pecan/internal/ast"
	"pecan/internal/lexer"
)

// advance consumes the lookahead token and returns it. Callers check first.
func (p *Parser) advance() lexer.Token {
	tok := p.tok
	p.prev = tok
	p.fill()
	return tok
}

func (p *Parser) fill() {
	p.tok, p.hasTok = p.lex.Next()
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.hasTok && p.tok.Type == tt
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt lexer.TokenType) (lexer.Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorExpected(quote(tt))
}

func (p *Parser) consumeIdent(what string) (ast.Ident, error) {
	if !p.check(lexer.IDENT) {
		return ast.Ident{}, p.errorExpected(what)
	}
	tok := p.advance()
	return ast.Ident{Pos: tok.Pos, Name: tok.Lexeme}, nil
}

func (p *Parser) isAtEnd() bool {
	return !p.hasTok
}

// errorExpected builds the error for a missing construct at the lookahead.
func (p *Parser) errorExpected(what string) error {
	if p.hasTok {
		got := p.tok
		return &ParseError{Kind: TokenMismatch, Expected: what, Got: &got, Pos: got.Pos}
	}
	if err := p.scanError(); err != nil {
		return err
	}
	return &ParseError{Kind: UnexpectedEOF, Expected: what, Pos: p.lex.Position()}
}

// scanError converts a lexer failure into a ParseError, or returns nil.
func (p *Parser) scanError() error {
	err := p.lex.Err()
	if err == nil {
		return nil
	}
	se, ok := err.(*lexer.ScanError)
	if !ok {
		return err
	}
	return &ParseError{Kind: MalformedLiteral, Pos: se.Pos, Scan: se}
}

// expectEnd fails unless every token has been consumed.
func (p *Parser) expectEnd() error {
	if p.hasTok {
		return p.errorExpected("end of input")
	}
	return p.scanError()
}

func quote(tt lexer.TokenType) string {
	return fmt.Sprintf("'%s'", tt)
}
