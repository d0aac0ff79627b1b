package parser

import (
	"errors"
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pecan/internal/lexer"
)

func parseErr(t *testing.T, err error) *ParseError {
	t.Helper()
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
	return pe
}

func TestTruncatedLetFails(t *testing.T) {
	stmt, err := ParseStatement("let foo:")
	assert.Nil(t, stmt)

	pe := parseErr(t, err)
	assert.Equal(t, UnexpectedEOF, pe.Kind)
	assert.Equal(t, "type", pe.Expected)
	assert.Nil(t, pe.Got)
	assert.Equal(t, "1:9: unexpected end of input, expected type", pe.Error())
}

func TestMissingSemicolon(t *testing.T) {
	_, err := ParseStatement("let x: I64 = 1")
	pe := parseErr(t, err)
	assert.Equal(t, UnexpectedEOF, pe.Kind)
	assert.Equal(t, "';'", pe.Expected)
}

func TestTokenMismatch(t *testing.T) {
	_, err := ParseStatement("let x: I64 = 1 2;")
	pe := parseErr(t, err)
	assert.Equal(t, TokenMismatch, pe.Kind)
	require.NotNil(t, pe.Got)
	assert.Equal(t, lexer.INT, pe.Got.Type)
	assert.Equal(t, "1:16: expected ';', got number 2", pe.Error())
}

func TestMismatchMessages(t *testing.T) {
	tests := []struct {
		source  string
		message string
	}{
		{"let 42", "expected variable name, got number 42"},
		{"fn (", "expected function name, got '('"},
		{"struct S { a I64 }", "expected ':', got identifier \"I64\""},
		{"if x {}", "expected '(', got identifier \"x\""},
		{"if (x) {} else return;", "expected '{' or 'if', got keyword 'return'"},
		{"switch (x) { return; }", "expected 'case', 'default' or '}', got keyword 'return'"},
		{"for i in xs {}", "expected ':', got keyword 'in'"},
		{"let v: Vec2 = Vec2 { x = 1 };", "expected '.', got identifier \"x\""},
		{"@;", "expected expression, got unexpected character '@'"},
		{"let x: 5 = 1;", "expected type, got number 5"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := ParseStatement(tt.source)
			pe := parseErr(t, err)
			assert.Equal(t, TokenMismatch, pe.Kind)
			assert.Equal(t, tt.message, pe.Message())
		})
	}
}

func TestUnclosedBlock(t *testing.T) {
	_, err := Parse("main.pc", "fn main() {\n  print(1);\n")
	pe := parseErr(t, err)
	assert.Equal(t, UnexpectedEOF, pe.Kind)
	assert.Equal(t, "'}'", pe.Expected)
	assert.Equal(t, "main.pc", pe.Pos.Filename)
	assert.Equal(t, 3, pe.Pos.Line)
}

func TestMalformedLiteralError(t *testing.T) {
	_, err := ParseExpr("2asd")
	pe := parseErr(t, err)
	assert.Equal(t, MalformedLiteral, pe.Kind)
	require.NotNil(t, pe.Scan)

	var scanErr *lexer.ScanError
	assert.True(t, errors.As(err, &scanErr))
	assert.Equal(t, 1, pe.Pos.Column)
	assert.Equal(t, 4, pe.Length())
}

func TestMalformedLiteralMidFile(t *testing.T) {
	_, err := Parse("main.pc", "let a: I64 = 1;\nlet b: I64 = 0b102;\n")
	pe := parseErr(t, err)
	assert.Equal(t, MalformedLiteral, pe.Kind)
	assert.Equal(t, 2, pe.Pos.Line)
	assert.Equal(t, 14, pe.Pos.Column)
}

func TestMalformedLiteralAfterCompleteStatement(t *testing.T) {
	// The lexer fails between statements, after the parser has a full tree.
	_, err := Parse("", "a = 1; 00x1")
	pe := parseErr(t, err)
	assert.Equal(t, MalformedLiteral, pe.Kind)
}

func TestTrailingInputRejected(t *testing.T) {
	_, err := ParseExpr("nu?ll")
	pe := parseErr(t, err)
	assert.Equal(t, TokenMismatch, pe.Kind)
	assert.Equal(t, "end of input", pe.Expected)
	assert.Equal(t, "ll", pe.Got.Lexeme)

	_, err = ParseStatement("a = 1; b = 2;")
	assert.Error(t, err)
}

func TestParseErrorSatisfiesParticiple(t *testing.T) {
	_, err := ParseStatement("let foo:")

	var perr participle.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "unexpected end of input, expected type", perr.Message())
	assert.Equal(t, 1, perr.Position().Line)
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, "E0100", (&ParseError{Kind: TokenMismatch}).Code())
	assert.Equal(t, "E0101", (&ParseError{Kind: UnexpectedEOF}).Code())
	assert.Equal(t, "E0102", (&ParseError{Kind: MalformedLiteral}).Code())
}

func TestErrorLength(t *testing.T) {
	_, err := ParseStatement("let x: I64 = 1 foo;")
	pe := parseErr(t, err)
	assert.Equal(t, 3, pe.Length())

	assert.Equal(t, 1, (&ParseError{Kind: UnexpectedEOF}).Length())
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "token mismatch", TokenMismatch.String())
	assert.Equal(t, "unexpected end of input", UnexpectedEOF.String())
	assert.Equal(t, "malformed literal", MalformedLiteral.String())
}
