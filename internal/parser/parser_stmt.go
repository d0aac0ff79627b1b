package parser

import (
	"pecan/internal/ast"
	"pecan/internal/lexer"
)

var assignOperators = map[lexer.TokenType]ast.Operator{
	lexer.ASSIGN:           ast.ASSIGN,
	lexer.PLUS_ASSIGN:      ast.ADD_ASSIGN,
	lexer.MINUS_ASSIGN:     ast.SUB_ASSIGN,
	lexer.STAR_ASSIGN:      ast.MUL_ASSIGN,
	lexer.SLASH_ASSIGN:     ast.DIV_ASSIGN,
	lexer.PERCENT_ASSIGN:   ast.MOD_ASSIGN,
	lexer.SHL_ASSIGN:       ast.SHL_ASSIGN,
	lexer.SHR_ASSIGN:       ast.SHR_ASSIGN,
	lexer.AMPERSAND_ASSIGN: ast.AND_ASSIGN,
	lexer.CARET_ASSIGN:     ast.XOR_ASSIGN,
	lexer.PIPE_ASSIGN:      ast.OR_ASSIGN,
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	if p.isAtEnd() {
		return nil, p.errorExpected("statement")
	}

	switch p.tok.Type {
	case lexer.LET:
		return p.parseLet()
	case lexer.IF:
		return p.parseIf()
	case lexer.FOR:
		return p.parseFor()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.SWITCH:
		return p.parseSwitch()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.FN:
		return p.parseFunction()
	case lexer.STRUCT:
		return p.parseStruct()
	case lexer.ENUM, lexer.FLAG:
		return p.parseEnum()
	}
	return p.parseExprStatement()
}

// parseExprStatement parses `expr;` or an assignment `target op= value;`.
func (p *Parser) parseExprStatement() (ast.Stmt, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.hasTok && p.tok.Type.IsAssignOp() {
		opToken := p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{
			Pos:    expr.NodePos(),
			Target: expr,
			Op:     assignOperators[opToken.Type],
			Value:  value,
		}, nil
	}

	if _, err := p.consume(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Pos: expr.NodePos(), Expr: expr}, nil
}

func (p *Parser) parseLet() (ast.Stmt, error) {
	startToken := p.advance()
	mutable := p.match(lexer.MUT)

	name, err := p.consumeIdent("variable name")
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
	if _, err := p.consume(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.LetStmt{
		Pos:     startToken.Pos,
		Name:    name,
		Mutable: mutable,
		Type:    typ,
		Value:   value,
	}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	startToken := p.advance()

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{Pos: startToken.Pos, Cond: cond, Then: then}
	if !p.match(lexer.ELSE) {
		return stmt, nil
	}

	switch {
	case p.check(lexer.IF):
		nested, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		stmt.Else = &ast.Block{Pos: nested.NodePos(), Stmts: []ast.Stmt{nested}}
	case p.check(lexer.LEFT_BRACE):
		stmt.Else, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	default:
		return nil, p.errorExpected("'{' or 'if'")
	}
	return stmt, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	startToken := p.advance()

	name, err := p.consumeIdent("loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.COLON); err != nil {
		return nil, err
	}
	varType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.IN); err != nil {
		return nil, err
	}

	outer := p.exprLev
	p.exprLev = -1
	p.allowRange = true
	iterable, err := p.parseIterable()
	p.exprLev = outer
	p.allowRange = false
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{
		Pos:      startToken.Pos,
		Var:      name,
		VarType:  varType,
		Iterable: iterable,
		Body:     body,
	}, nil
}

// parseIterable parses a for-loop iterable, the only place `..` may appear
// outside of a parenthesized first operand.
func (p *Parser) parseIterable() (ast.Expr, error) {
	lo, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.match(lexer.RANGE) {
		return lo, nil
	}
	hi, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Pos: lo.NodePos(), Left: lo, Op: ast.RANGE, Right: hi}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	startToken := p.advance()

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Pos: startToken.Pos, Cond: cond, Body: body}, nil
}

func (p *Parser) parseSwitch() (ast.Stmt, error) {
	startToken := p.advance()

	subject, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LEFT_BRACE); err != nil {
		return nil, err
	}

	stmt := &ast.SwitchStmt{Pos: startToken.Pos, Subject: subject}
	for !p.check(lexer.RIGHT_BRACE) {
		c, err := p.parseCase()
		if err != nil {
			return nil, err
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	p.advance()

	return stmt, nil
}

func (p *Parser) parseCase() (*ast.Case, error) {
	c := &ast.Case{Pos: p.tok.Pos}
	switch {
	case p.check(lexer.CASE):
		p.advance()
		pattern, err := p.consumeIdent("case pattern")
		if err != nil {
			return nil, err
		}
		c.Pattern = pattern
	case p.check(lexer.DEFAULT):
		p.advance()
		c.Default = true
	default:
		return nil, p.errorExpected("'case', 'default' or '}'")
	}

	if _, err := p.consume(lexer.COLON); err != nil {
		return nil, err
	}

	for !p.check(lexer.CASE) && !p.check(lexer.DEFAULT) && !p.check(lexer.RIGHT_BRACE) {
		if p.isAtEnd() {
			return nil, p.errorExpected("'}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		c.Body = append(c.Body, stmt)
	}
	return c, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	startToken := p.advance()

	stmt := &ast.ReturnStmt{Pos: startToken.Pos}
	if !p.check(lexer.SEMICOLON) {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if _, err := p.consume(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.consume(lexer.LEFT_BRACE)
	if err != nil {
		return nil, err
	}

	block := &ast.Block{Pos: open.Pos}
	for !p.check(lexer.RIGHT_BRACE) {
		if p.isAtEnd() {
			return nil, p.errorExpected("'}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	p.advance()

	return block, nil
}

// parseCondition parses the parenthesized `( expr )` after if, while and switch.
func (p *Parser) parseCondition() (ast.Expr, error) {
	if _, err := p.consume(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}
	p.exprLev++
	cond, err := p.parseExpr()
	p.exprLev--
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	return cond, nil
}
