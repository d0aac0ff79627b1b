package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"pecan/internal/errors"
	"pecan/internal/lexer"
)

type ErrorKind int

const (
	// TokenMismatch: the next token was not the one the grammar requires.
	TokenMismatch ErrorKind = iota
	// UnexpectedEOF: the input ended in the middle of a construct.
	UnexpectedEOF
	// MalformedLiteral: the lexer stopped at a literal it could not scan.
	MalformedLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case TokenMismatch:
		return "token mismatch"
	case UnexpectedEOF:
		return "unexpected end of input"
	case MalformedLiteral:
		return "malformed literal"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is the single error a failed parse returns. Got is nil when the
// token stream had already ended.
type ParseError struct {
	Kind     ErrorKind
	Expected string
	Got      *lexer.Token
	Pos      lexer.Position
	Scan     *lexer.ScanError
}

var _ participle.Error = (*ParseError)(nil)

func (e *ParseError) Message() string {
	switch e.Kind {
	case UnexpectedEOF:
		return fmt.Sprintf("unexpected end of input, expected %s", e.Expected)
	case MalformedLiteral:
		if e.Scan != nil {
			return e.Scan.Message
		}
		return "malformed literal"
	}

	got := "end of input"
	if e.Got != nil {
		got = e.Got.Describe()
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, got)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

func (e *ParseError) Position() lexer.Position {
	return e.Pos
}

func (e *ParseError) Unwrap() error {
	if e.Scan == nil {
		return nil
	}
	return e.Scan
}

// Code is the diagnostic code reported for this error.
func (e *ParseError) Code() string {
	switch e.Kind {
	case UnexpectedEOF:
		return errors.ErrorUnexpectedEOF
	case MalformedLiteral:
		return errors.ErrorMalformedLiteral
	default:
		return errors.ErrorUnexpectedToken
	}
}

// Length is the number of source bytes the error points at.
func (e *ParseError) Length() int {
	switch {
	case e.Scan != nil && e.Scan.Length > 0:
		return e.Scan.Length
	case e.Got != nil && len(e.Got.Lexeme) > 0:
		return len(e.Got.Lexeme)
	default:
		return 1
	}
}

// Diagnostic renders the error with suggestions for the CLI and editor.
func (e *ParseError) Diagnostic() errors.CompilerError {
	switch e.Kind {
	case UnexpectedEOF:
		return errors.UnexpectedEOF(e.Expected, e.Pos)
	case MalformedLiteral:
		return errors.MalformedLiteral(e.Message(), e.Pos, e.Length())
	}

	got, lexeme := "end of input", ""
	if e.Got != nil {
		got, lexeme = e.Got.Describe(), e.Got.Lexeme
	}
	return errors.UnexpectedToken(e.Expected, got, lexeme, e.Pos)
}
