package errors

import (
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"

	"pecan/internal/ast"
	"pecan/internal/lexer"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	err CompilerError
}

func NewDiagnostic(code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *DiagnosticBuilder) WithReplacement(message, replacement string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
	})
	return b
}

func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// UnexpectedToken creates an error for a token the grammar does not allow.
// got is the token as described to the user; lexeme is its source text.
func UnexpectedToken(expected, got, lexeme string, pos ast.Position) CompilerError {
	builder := NewDiagnostic(ErrorUnexpectedToken, fmt.Sprintf("expected %s, got %s", expected, got), pos).
		WithLength(max(1, len(lexeme)))

	if similar := findSimilarNames(lexeme, lexer.Keywords()); len(similar) > 0 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean the keyword '%s'?", similar[0]))
	}

	switch expected {
	case "';'":
		builder = builder.WithSuggestion("statements end with ';'")
	case "end of input":
		builder = builder.WithNote("only a single statement or expression is accepted here")
	case "type":
		builder = builder.WithHelp("types are written Name, &T, [T], (A, B) or ()")
	}

	return builder.Build()
}

// UnexpectedEOF creates an error for input that stops mid-construct
func UnexpectedEOF(expected string, pos ast.Position) CompilerError {
	builder := NewDiagnostic(ErrorUnexpectedEOF, fmt.Sprintf("unexpected end of input, expected %s", expected), pos)

	switch expected {
	case "'}'":
		builder = builder.WithNote("a block was opened but never closed")
	case "')'", "']'":
		builder = builder.WithNote(fmt.Sprintf("a bracket was opened but never closed with %s", expected))
	}

	return builder.Build()
}

// MalformedLiteral creates an error for a literal the lexer rejected
func MalformedLiteral(message string, pos ast.Position, length int) CompilerError {
	builder := NewDiagnostic(ErrorMalformedLiteral, message, pos).
		WithLength(max(1, length))

	switch {
	case strings.Contains(message, "numeric"):
		builder = builder.WithNote("integer literals are decimal or use a 0x, 0o or 0b prefix").
			WithHelp("identifiers cannot start with a digit")
	case strings.Contains(message, "out of range"):
		builder = builder.WithNote("integer literals must fit in a signed 64-bit value")
	case strings.Contains(message, "character literal"):
		builder = builder.WithHelp(`character literals hold one character or an escape like '\n'`)
	}

	return builder.Build()
}

// SourceUnreadable reports a file the tools could not read.
func SourceUnreadable(path string, err error) CompilerError {
	return NewDiagnostic(ErrorSourceUnreadable, fmt.Sprintf("cannot read %s: %v", path, err), ast.Position{Filename: path}).
		WithLength(0).
		Build()
}

// diagnoser is implemented by errors that know how to describe themselves.
type diagnoser interface {
	Diagnostic() CompilerError
}

// FromError converts any error from the front end into a diagnostic. Lexer
// errors and errors carrying a participle position keep their location;
// anything else is reported without one.
func FromError(err error) CompilerError {
	var d diagnoser
	if goerrors.As(err, &d) {
		return d.Diagnostic()
	}

	var serr *lexer.ScanError
	if goerrors.As(err, &serr) {
		return MalformedLiteral(serr.Message, serr.Pos, serr.Length)
	}

	var perr participle.Error
	if goerrors.As(err, &perr) {
		code := ErrorUnexpectedToken
		if c, ok := perr.(interface{ Code() string }); ok {
			code = c.Code()
		}
		builder := NewDiagnostic(code, perr.Message(), perr.Position())
		if l, ok := perr.(interface{ Length() int }); ok {
			builder = builder.WithLength(l.Length())
		}
		return builder.Build()
	}

	return CompilerError{Level: Error, Message: err.Error()}
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		if levenshteinDistance(target, candidate) <= 1 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

func levenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
