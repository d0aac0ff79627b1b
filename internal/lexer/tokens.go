package lexer

import (
	"fmt"

	plexer "github.com/alecthomas/participle/v2/lexer"
)

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	CHAR_TOKEN

	// Identifiers + literals
	IDENT
	INT
	FLOAT
	STRING
	CHAR

	// Keywords
	LET
	MUT
	IF
	ELSE
	FOR
	IN
	WHILE
	RETURN
	FN
	STRUCT
	ENUM
	FLAG
	SWITCH
	CASE
	DEFAULT
	AND
	OR
	NOT

	// Assignment operators
	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	SHL_ASSIGN
	SHR_ASSIGN
	AMPERSAND_ASSIGN
	CARET_ASSIGN
	PIPE_ASSIGN

	// Operators
	EQUAL_EQUAL
	BANG_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL
	SHL
	SHR
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	AMPERSAND
	PIPE
	CARET
	TILDE
	RANGE
	DOT
	ARROW

	// Separators
	SEMICOLON
	COMMA
	COLON

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACKET
	RIGHT_BRACKET
	LEFT_BRACE
	RIGHT_BRACE
)

var tokenNames = [...]string{
	ILLEGAL:    "ILLEGAL",
	CHAR_TOKEN: "CHAR_TOKEN",

	IDENT:  "IDENT",
	INT:    "INT",
	FLOAT:  "FLOAT",
	STRING: "STRING",
	CHAR:   "CHAR",

	LET:     "let",
	MUT:     "mut",
	IF:      "if",
	ELSE:    "else",
	FOR:     "for",
	IN:      "in",
	WHILE:   "while",
	RETURN:  "return",
	FN:      "fn",
	STRUCT:  "struct",
	ENUM:    "enum",
	FLAG:    "flag",
	SWITCH:  "switch",
	CASE:    "case",
	DEFAULT: "default",
	AND:     "and",
	OR:      "or",
	NOT:     "not",

	ASSIGN:           "=",
	PLUS_ASSIGN:      "+=",
	MINUS_ASSIGN:     "-=",
	STAR_ASSIGN:      "*=",
	SLASH_ASSIGN:     "/=",
	PERCENT_ASSIGN:   "%=",
	SHL_ASSIGN:       "<<=",
	SHR_ASSIGN:       ">>=",
	AMPERSAND_ASSIGN: "&=",
	CARET_ASSIGN:     "^=",
	PIPE_ASSIGN:      "|=",

	EQUAL_EQUAL:   "==",
	BANG_EQUAL:    "!=",
	LESS:          "<",
	LESS_EQUAL:    "<=",
	GREATER:       ">",
	GREATER_EQUAL: ">=",
	SHL:           "<<",
	SHR:           ">>",
	PLUS:          "+",
	MINUS:         "-",
	STAR:          "*",
	SLASH:         "/",
	PERCENT:       "%",
	AMPERSAND:     "&",
	PIPE:          "|",
	CARET:         "^",
	TILDE:         "~",
	RANGE:         "..",
	DOT:           ".",
	ARROW:         "->",

	SEMICOLON: ";",
	COMMA:     ",",
	COLON:     ":",

	LEFT_PAREN:    "(",
	RIGHT_PAREN:   ")",
	LEFT_BRACKET:  "[",
	RIGHT_BRACKET: "]",
	LEFT_BRACE:    "{",
	RIGHT_BRACE:   "}",
}

// String returns the source spelling for keywords and punctuation, and the
// class name for literal and special tokens.
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) && tokenNames[tt] != "" {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsKeyword reports whether tt is one of the reserved words.
func (tt TokenType) IsKeyword() bool {
	return tt >= LET && tt <= NOT
}

// IsAssignOp reports whether tt is "=" or one of the compound-assignment forms.
func (tt TokenType) IsAssignOp() bool {
	return tt >= ASSIGN && tt <= PIPE_ASSIGN
}

// Position is shared with the AST and with participle's error contract.
type Position = plexer.Position

// Token is one lexical unit. Lexeme is a substring of the scanned source; for
// STRING it holds the raw contents between the quotes.
type Token struct {
	Type   TokenType
	Lexeme string
	Int    int64
	Float  float64
	Char   rune
	Pos    Position
}

// Describe renders the token for error messages, e.g. `identifier "foo"` or `';'`.
func (t Token) Describe() string {
	switch t.Type {
	case IDENT:
		return fmt.Sprintf("identifier %q", t.Lexeme)
	case INT, FLOAT:
		return fmt.Sprintf("number %s", t.Lexeme)
	case STRING:
		return fmt.Sprintf("string %q", t.Lexeme)
	case CHAR:
		return fmt.Sprintf("character %q", t.Char)
	case CHAR_TOKEN:
		return fmt.Sprintf("unexpected character %q", t.Char)
	}
	if t.Type.IsKeyword() {
		return fmt.Sprintf("keyword '%s'", t.Type)
	}
	return fmt.Sprintf("'%s'", t.Type)
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %s", t.Pos.Line, t.Pos.Column, t.Type, t.Lexeme)
}

var keywords = map[string]TokenType{
	"let":     LET,
	"mut":     MUT,
	"if":      IF,
	"else":    ELSE,
	"for":     FOR,
	"in":      IN,
	"while":   WHILE,
	"return":  RETURN,
	"fn":      FN,
	"struct":  STRUCT,
	"enum":    ENUM,
	"flag":    FLAG,
	"switch":  SWITCH,
	"case":    CASE,
	"default": DEFAULT,
	"and":     AND,
	"or":      OR,
	"not":     NOT,
}

// LookupIdent reclassifies identifier text that matches a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Keywords returns the reserved words in declaration order.
func Keywords() []string {
	var words []string
	for tt := LET; tt <= NOT; tt++ {
		words = append(words, tokenNames[tt])
	}
	return words
}
