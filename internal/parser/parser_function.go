package parser

import (
	"pecan/internal/ast"
	"pecan/internal/lexer"
)

func (p *Parser) parseFunction() (ast.Stmt, error) {
	startToken := p.advance()

	name, err := p.consumeIdent("function name")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParamList(lexer.RIGHT_PAREN, "parameter name")
	if err != nil {
		return nil, err
	}

	// No `->` means the function returns unit; the type sits on the `)`.
	var returnType ast.Type = &ast.UnitType{Pos: p.prev.Pos}
	if p.match(lexer.ARROW) {
		returnType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{
		Pos:    startToken.Pos,
		Name:   name,
		Params: params,
		Return: returnType,
		Body:   body,
	}, nil
}

// parseParamList parses `name: Type` pairs up to and including the closing
// token. A trailing comma is accepted.
func (p *Parser) parseParamList(closing lexer.TokenType, what string) ([]*ast.Param, error) {
	var params []*ast.Param

	for !p.check(closing) {
		name, err := p.consumeIdent(what)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.COLON); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}

		params = append(params, &ast.Param{Pos: name.Pos, Name: name, Type: typ})

		if !p.match(lexer.COMMA) {
			break
		}
	}

	if _, err := p.consume(closing); err != nil {
		return nil, err
	}
	return params, nil
}
