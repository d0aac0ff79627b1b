package parser

import (
	"pecan/internal/ast"
	"pecan/internal/lexer"
)

// parseType parses a type annotation:
//
//	&T        pointer
//	[T]       array
//	(A, B)    tuple; (T) is a one-element tuple
//	()        unit
//	Name      named type
func (p *Parser) parseType() (ast.Type, error) {
	if p.isAtEnd() {
		return nil, p.errorExpected("type")
	}

	tok := p.tok
	switch tok.Type {
	case lexer.AMPERSAND:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.PointerType{Pos: tok.Pos, Elem: elem}, nil

	case lexer.LEFT_BRACKET:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RIGHT_BRACKET); err != nil {
			return nil, err
		}
		return &ast.ArrayType{Pos: tok.Pos, Elem: elem}, nil

	case lexer.LEFT_PAREN:
		p.advance()
		if p.match(lexer.RIGHT_PAREN) {
			return &ast.UnitType{Pos: tok.Pos}, nil
		}
		return p.parseTupleType(tok)

	case lexer.IDENT:
		p.advance()
		return &ast.NamedType{Pos: tok.Pos, Name: tok.Lexeme}, nil
	}

	return nil, p.errorExpected("type")
}

func (p *Parser) parseTupleType(open lexer.Token) (ast.Type, error) {
	tuple := &ast.TupleType{Pos: open.Pos}
	for !p.check(lexer.RIGHT_PAREN) {
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		tuple.Elems = append(tuple.Elems, elem)

		if !p.match(lexer.COMMA) {
			break
		}
	}

	if _, err := p.consume(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	return tuple, nil
}
