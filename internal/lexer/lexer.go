package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// ScanError describes the malformed input that ended a token stream early.
type ScanError struct {
	Message string
	Pos     Position
	Length  int // how many bytes of source the error covers
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Lexer produces tokens on demand. It is not rewindable: once a token has been
// returned, a fresh Lexer must be constructed to scan it again.
type Lexer struct {
	filename string
	source   string
	start    int
	current  int
	line     int
	column   int
	startPos Position
	err      *ScanError
	done     bool
}

func New(filename, source string) *Lexer {
	return &Lexer{
		filename: filename,
		source:   source,
		line:     1,
		column:   1,
	}
}

// Next returns the next token in source order. The second result is false once
// the input is exhausted or a malformed literal was met; Err tells the two apart.
func (l *Lexer) Next() (Token, bool) {
	if l.done {
		return Token{}, false
	}

	l.skipTrivia()
	if l.isAtEnd() {
		l.done = true
		return Token{}, false
	}

	l.start = l.current
	l.startPos = l.position()

	tok, ok := l.scanToken()
	if !ok {
		l.done = true
		return Token{}, false
	}
	return tok, true
}

// Err returns the *ScanError that ended the stream, or nil.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

// Position reports where the lexer currently stands in the source.
func (l *Lexer) Position() Position {
	return l.position()
}

// Tokenize drains a fresh lexer over source.
func Tokenize(filename, source string) ([]Token, error) {
	l := New(filename, source)
	var tokens []Token
	for {
		tok, ok := l.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, l.Err()
}

func (l *Lexer) scanToken() (Token, bool) {
	c := l.advance()
	switch c {
	case '(':
		return l.makeToken(LEFT_PAREN), true
	case ')':
		return l.makeToken(RIGHT_PAREN), true
	case '[':
		return l.makeToken(LEFT_BRACKET), true
	case ']':
		return l.makeToken(RIGHT_BRACKET), true
	case '{':
		return l.makeToken(LEFT_BRACE), true
	case '}':
		return l.makeToken(RIGHT_BRACE), true
	case ';':
		return l.makeToken(SEMICOLON), true
	case ',':
		return l.makeToken(COMMA), true
	case ':':
		return l.makeToken(COLON), true
	case '~':
		return l.makeToken(TILDE), true

	case '=':
		return l.either('=', EQUAL_EQUAL, ASSIGN), true
	case '+':
		return l.either('=', PLUS_ASSIGN, PLUS), true
	case '*':
		return l.either('=', STAR_ASSIGN, STAR), true
	case '/':
		return l.either('=', SLASH_ASSIGN, SLASH), true
	case '%':
		return l.either('=', PERCENT_ASSIGN, PERCENT), true
	case '&':
		return l.either('=', AMPERSAND_ASSIGN, AMPERSAND), true
	case '|':
		return l.either('=', PIPE_ASSIGN, PIPE), true
	case '^':
		return l.either('=', CARET_ASSIGN, CARET), true
	case '.':
		return l.either('.', RANGE, DOT), true
	case '-':
		return l.scanMinusOperator(), true
	case '!':
		return l.scanBangOperator(c), true
	case '<':
		return l.scanShiftOperator('<', LESS, LESS_EQUAL, SHL, SHL_ASSIGN), true
	case '>':
		return l.scanShiftOperator('>', GREATER, GREATER_EQUAL, SHR, SHR_ASSIGN), true

	case '"':
		return l.scanString()
	case '\'':
		return l.scanChar()
	}

	switch {
	case isDigit(c):
		return l.scanNumber(c)
	case isIdentStart(c):
		return l.scanIdentifier(), true
	}

	tok := l.makeToken(CHAR_TOKEN)
	tok.Char = c
	return tok, true
}

func (l *Lexer) either(next rune, matched, otherwise TokenType) Token {
	if l.matchNext(next) {
		return l.makeToken(matched)
	}
	return l.makeToken(otherwise)
}

func (l *Lexer) scanMinusOperator() Token {
	if l.matchNext('=') {
		return l.makeToken(MINUS_ASSIGN)
	}
	if l.matchNext('>') {
		return l.makeToken(ARROW)
	}
	return l.makeToken(MINUS)
}

func (l *Lexer) scanBangOperator(c rune) Token {
	if l.matchNext('=') {
		return l.makeToken(BANG_EQUAL)
	}
	tok := l.makeToken(CHAR_TOKEN)
	tok.Char = c
	return tok
}

// scanShiftOperator resolves `<`, `<=`, `<<`, `<<=` (and the `>` family).
func (l *Lexer) scanShiftOperator(c rune, bare, orEqual, shift, shiftAssign TokenType) Token {
	if l.matchNext('=') {
		return l.makeToken(orEqual)
	}
	if l.matchNext(c) {
		return l.either('=', shiftAssign, shift)
	}
	return l.makeToken(bare)
}

func (l *Lexer) scanIdentifier() Token {
	for isIdentPart(l.peek()) {
		l.advance()
	}

	// One trailing '?' or '!' belongs to the name, unless the '!' starts "!=".
	switch l.peek() {
	case '?':
		l.advance()
	case '!':
		if l.peekNext() != '=' {
			l.advance()
		}
	}

	text := l.source[l.start:l.current]
	return l.makeToken(LookupIdent(text))
}

func (l *Lexer) scanNumber(first rune) (Token, bool) {
	if first == '0' {
		switch l.peek() {
		case 'x':
			return l.scanRadix(16)
		case 'o':
			return l.scanRadix(8)
		case 'b':
			return l.scanRadix(2)
		}
	}

	for isDigit(l.peek()) {
		l.advance()
	}

	tt := INT
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
		tt = FLOAT
	}

	if isIdentStart(l.peek()) {
		bad := l.peek()
		l.skipWord()
		return l.fail(fmt.Sprintf("malformed numeric literal: unexpected %q after digits", bad))
	}

	tok := l.makeToken(tt)
	if tt == FLOAT {
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return l.fail(fmt.Sprintf("malformed float literal %s", tok.Lexeme))
		}
		tok.Float = v
		return tok, true
	}

	v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		return l.fail(fmt.Sprintf("integer literal %s out of range", tok.Lexeme))
	}
	tok.Int = v
	return tok, true
}

func (l *Lexer) scanRadix(base int) (Token, bool) {
	l.advance() // the x, o or b

	digits := l.current
	for isDigitOf(l.peek(), base) {
		l.advance()
	}
	if l.current == digits {
		return l.fail(fmt.Sprintf("malformed numeric literal: expected base-%d digit after %s", base, l.source[l.start:l.current]))
	}
	if isIdentPart(l.peek()) {
		bad := l.peek()
		l.skipWord()
		return l.fail(fmt.Sprintf("malformed numeric literal: unexpected %q in base-%d literal", bad, base))
	}

	tok := l.makeToken(INT)
	v, err := strconv.ParseInt(l.source[digits:l.current], base, 64)
	if err != nil {
		return l.fail(fmt.Sprintf("integer literal %s out of range", tok.Lexeme))
	}
	tok.Int = v
	return tok, true
}

// scanString keeps the contents verbatim. A backslash protects the character
// after it from terminating the literal, so `\"` can appear inside.
func (l *Lexer) scanString() (Token, bool) {
	for {
		if l.isAtEnd() {
			return l.fail("unterminated string literal")
		}
		c := l.advance()
		if c == '"' {
			break
		}
		if c == '\\' {
			if l.isAtEnd() {
				return l.fail("unterminated string literal")
			}
			l.advance()
		}
	}

	return Token{
		Type:   STRING,
		Lexeme: l.source[l.start+1 : l.current-1],
		Pos:    l.startPos,
	}, true
}

var charEscapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

func (l *Lexer) scanChar() (Token, bool) {
	if l.isAtEnd() {
		return l.fail("unterminated character literal")
	}

	c := l.advance()
	switch c {
	case '\\':
		if l.isAtEnd() {
			return l.fail("unterminated character literal")
		}
		e := l.advance()
		v, ok := charEscapes[e]
		if !ok {
			return l.fail(fmt.Sprintf("unknown escape sequence \\%c in character literal", e))
		}
		c = v
	case '\n':
		return l.fail("newline in character literal")
	}

	if !l.matchNext('\'') {
		return l.fail("character literal must hold exactly one character")
	}

	tok := l.makeToken(CHAR)
	tok.Char = c
	return tok, true
}

// skipTrivia consumes whitespace and // line comments.
func (l *Lexer) skipTrivia() {
	for !l.isAtEnd() {
		c := l.peek()
		switch {
		case unicode.IsSpace(c):
			l.advance()
		case c == '/' && l.peekNext() == '/':
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// skipWord consumes the rest of a malformed literal so the error spans all of it.
func (l *Lexer) skipWord() {
	for isIdentPart(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) fail(message string) (Token, bool) {
	l.err = &ScanError{
		Message: message,
		Pos:     l.startPos,
		Length:  l.current - l.start,
	}
	return Token{}, false
}

func (l *Lexer) makeToken(tt TokenType) Token {
	return Token{
		Type:   tt,
		Lexeme: l.source[l.start:l.current],
		Pos:    l.startPos,
	}
}

func (l *Lexer) advance() rune {
	c, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) matchNext(expected rune) bool {
	if l.isAtEnd() || l.peek() != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	c, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return c
}

func (l *Lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+size >= len(l.source) {
		return 0
	}
	c, _ := utf8.DecodeRuneInString(l.source[l.current+size:])
	return c
}

func (l *Lexer) position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.current,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isDigitOf(c rune, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return '0' <= c && c <= '7'
	case 16:
		return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
	}
	return isDigit(c)
}

func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || unicode.IsDigit(c)
}
