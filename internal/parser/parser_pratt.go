package parser

import (
	"pecan/internal/ast"
	"pecan/internal/lexer"
)

// All binary operators are left-associative; a higher number binds tighter.
var binaryPrecedence = map[lexer.TokenType]int{
	lexer.OR:  1,
	lexer.AND: 2,

	lexer.EQUAL_EQUAL: 3, lexer.BANG_EQUAL: 3,
	lexer.LESS: 4, lexer.LESS_EQUAL: 4, lexer.GREATER: 4, lexer.GREATER_EQUAL: 4,

	lexer.PIPE:      5,
	lexer.CARET:     6,
	lexer.AMPERSAND: 7,
	lexer.SHL:       8, lexer.SHR: 8,

	lexer.PLUS: 9, lexer.MINUS: 9,
	lexer.STAR: 10, lexer.SLASH: 10, lexer.PERCENT: 10,
}

var binaryOperators = map[lexer.TokenType]ast.Operator{
	lexer.OR:            ast.OR,
	lexer.AND:           ast.AND,
	lexer.EQUAL_EQUAL:   ast.EQUAL,
	lexer.BANG_EQUAL:    ast.NOT_EQUAL,
	lexer.LESS:          ast.LESS,
	lexer.LESS_EQUAL:    ast.LESS_EQUAL,
	lexer.GREATER:       ast.GREATER,
	lexer.GREATER_EQUAL: ast.GREATER_EQUAL,
	lexer.PIPE:          ast.BIT_OR,
	lexer.CARET:         ast.BIT_XOR,
	lexer.AMPERSAND:     ast.BIT_AND,
	lexer.SHL:           ast.SHL,
	lexer.SHR:           ast.SHR,
	lexer.PLUS:          ast.ADD,
	lexer.MINUS:         ast.SUB,
	lexer.STAR:          ast.MUL,
	lexer.SLASH:         ast.DIV,
	lexer.PERCENT:       ast.MOD,
}

var unaryOperators = map[lexer.TokenType]ast.Operator{
	lexer.NOT:       ast.NOT,
	lexer.MINUS:     ast.NEG,
	lexer.TILDE:     ast.BIT_NOT,
	lexer.AMPERSAND: ast.ADDRESS,
	lexer.STAR:      ast.DEREF,
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parsePrattExpr(1)
}

func (p *Parser) parsePrattExpr(minPrec int) (ast.Expr, error) {
	expr, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}

	for p.hasTok {
		prec, ok := binaryPrecedence[p.tok.Type]
		if !ok || prec < minPrec {
			break
		}

		opToken := p.advance()
		right, err := p.parsePrattExpr(prec + 1)
		if err != nil {
			return nil, err
		}

		expr = &ast.BinaryExpr{
			Pos:   expr.NodePos(),
			Left:  expr,
			Op:    binaryOperators[opToken.Type],
			Right: right,
		}
	}

	return expr, nil
}

func (p *Parser) parseUnaryExpr() (ast.Expr, error) {
	if p.hasTok {
		if op, ok := unaryOperators[p.tok.Type]; ok {
			opToken := p.advance()
			p.allowRange = false
			operand, err := p.parseUnaryExpr()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryExpr{Pos: opToken.Pos, Op: op, Operand: operand}, nil
		}
	}

	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	return p.parsePostfixExpr(expr)
}

func (p *Parser) parsePostfixExpr(expr ast.Expr) (ast.Expr, error) {
	for p.hasTok {
		switch p.tok.Type {
		case lexer.LEFT_PAREN:
			p.advance()
			args, err := p.parseExprList(lexer.RIGHT_PAREN)
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{Pos: expr.NodePos(), Callee: expr, Args: args}

		case lexer.LEFT_BRACKET:
			p.advance()
			p.exprLev++
			index, err := p.parseExpr()
			p.exprLev--
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(lexer.RIGHT_BRACKET); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{Pos: expr.NodePos(), Target: expr, Index: index}

		case lexer.DOT:
			p.advance()
			field, err := p.consumeIdent("field name")
			if err != nil {
				return nil, err
			}
			expr = &ast.FieldAccessExpr{Pos: expr.NodePos(), Target: expr, Field: field.Name}

		case lexer.ARROW:
			// p->f is (*p).f
			p.advance()
			field, err := p.consumeIdent("field name")
			if err != nil {
				return nil, err
			}
			deref := &ast.UnaryExpr{Pos: expr.NodePos(), Op: ast.DEREF, Operand: expr}
			expr = &ast.FieldAccessExpr{Pos: expr.NodePos(), Target: deref, Field: field.Name}

		default:
			return expr, nil
		}
	}

	return expr, nil
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, error) {
	allowRange := p.allowRange
	p.allowRange = false

	if p.isAtEnd() {
		return nil, p.errorExpected("expression")
	}

	tok := p.tok
	switch tok.Type {
	case lexer.INT:
		p.advance()
		return &ast.IntLit{Pos: tok.Pos, Value: tok.Int}, nil
	case lexer.FLOAT:
		p.advance()
		return &ast.FloatLit{Pos: tok.Pos, Value: tok.Float}, nil
	case lexer.STRING:
		p.advance()
		return &ast.StringLit{Pos: tok.Pos, Value: tok.Lexeme}, nil
	case lexer.CHAR:
		p.advance()
		return &ast.CharLit{Pos: tok.Pos, Value: tok.Char}, nil

	case lexer.IDENT:
		p.advance()
		if p.check(lexer.LEFT_BRACE) && p.exprLev >= 0 {
			return p.parseStructLiteralExpr(tok)
		}
		return &ast.IdentExpr{Pos: tok.Pos, Name: tok.Lexeme}, nil

	case lexer.LEFT_PAREN:
		p.advance()
		p.exprLev++
		expr, err := p.parseParenExpr(tok, allowRange)
		p.exprLev--
		return expr, err

	case lexer.LEFT_BRACKET:
		p.advance()
		elements, err := p.parseExprList(lexer.RIGHT_BRACKET)
		if err != nil {
			return nil, err
		}
		return &ast.ListLit{Pos: tok.Pos, Elements: elements}, nil
	}

	return nil, p.errorExpected("expression")
}

// parseParenExpr parses what follows an opening `(`: the unit value, a
// grouping, a tuple, or, when allowRange is set, a range `(lo..hi)`.
func (p *Parser) parseParenExpr(open lexer.Token, allowRange bool) (ast.Expr, error) {
	if p.match(lexer.RIGHT_PAREN) {
		return &ast.TupleLit{Pos: open.Pos}, nil
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	switch {
	case allowRange && p.check(lexer.RANGE):
		p.advance()
		hi, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RIGHT_PAREN); err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Pos: first.NodePos(), Left: first, Op: ast.RANGE, Right: hi}, nil

	case p.match(lexer.COMMA):
		rest, err := p.parseExprList(lexer.RIGHT_PAREN)
		if err != nil {
			return nil, err
		}
		return &ast.TupleLit{Pos: open.Pos, Elements: append([]ast.Expr{first}, rest...)}, nil
	}

	if _, err := p.consume(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	return first, nil
}

// parseExprList parses comma-separated expressions up to and including the
// closing token. A trailing comma is accepted.
func (p *Parser) parseExprList(closing lexer.TokenType) ([]ast.Expr, error) {
	p.exprLev++
	defer func() { p.exprLev-- }()

	var list []ast.Expr
	for !p.check(closing) {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list = append(list, expr)

		if !p.match(lexer.COMMA) {
			break
		}
	}

	if _, err := p.consume(closing); err != nil {
		return nil, err
	}
	return list, nil
}

// parseStructLiteralExpr parses `Name { .field = value, ... }` with the name
// already consumed.
func (p *Parser) parseStructLiteralExpr(name lexer.Token) (ast.Expr, error) {
	p.advance()
	p.exprLev++
	defer func() { p.exprLev-- }()

	lit := &ast.StructLit{Pos: name.Pos, Name: name.Lexeme}
	for !p.check(lexer.RIGHT_BRACE) {
		dot, err := p.consume(lexer.DOT)
		if err != nil {
			return nil, err
		}
		field, err := p.consumeIdent("field name")
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
		lit.Fields = append(lit.Fields, &ast.FieldInit{Pos: dot.Pos, Name: field.Name, Value: value})

		if !p.match(lexer.COMMA) {
			break
		}
	}

	if _, err := p.consume(lexer.RIGHT_BRACE); err != nil {
		return nil, err
	}
	return lit, nil
}
