package parser

import (
	"pecan/internal/ast"
	"pecan/internal/lexer"
)

func (p *Parser) parseStruct() (ast.Stmt, error) {
	startToken := p.advance()

	name, err := p.consumeIdent("struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LEFT_BRACE); err != nil {
		return nil, err
	}
	members, err := p.parseParamList(lexer.RIGHT_BRACE, "member name")
	if err != nil {
		return nil, err
	}

	return &ast.StructDecl{Pos: startToken.Pos, Name: name, Members: members}, nil
}

// parseEnum handles both `enum` and `flag`; they differ only in the node built.
func (p *Parser) parseEnum() (ast.Stmt, error) {
	startToken := p.advance()

	name, err := p.consumeIdent(startToken.Lexeme + " name")
	if err != nil {
		return nil, err
	}
	variants, err := p.parseVariants()
	if err != nil {
		return nil, err
	}

	if startToken.Type == lexer.FLAG {
		return &ast.FlagDecl{Pos: startToken.Pos, Name: name, Variants: variants}, nil
	}
	return &ast.EnumDecl{Pos: startToken.Pos, Name: name, Variants: variants}, nil
}

func (p *Parser) parseVariants() ([]ast.Ident, error) {
	if _, err := p.consume(lexer.LEFT_BRACE); err != nil {
		return nil, err
	}

	var variants []ast.Ident
	for !p.check(lexer.RIGHT_BRACE) {
		variant, err := p.consumeIdent("variant name")
		if err != nil {
			return nil, err
		}
		variants = append(variants, variant)

		if !p.match(lexer.COMMA) {
			break
		}
	}

	if _, err := p.consume(lexer.RIGHT_BRACE); err != nil {
		return nil, err
	}
	return variants, nil
}
