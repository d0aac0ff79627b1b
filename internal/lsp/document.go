package lsp

import (
	"sort"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"pecan/internal/ast"
	"pecan/internal/parser"
)

// document is an open editor buffer. LSP positions count UTF-16 code units,
// the front end counts bytes (Offset) and runes (Column); lines bridges them.
type document struct {
	uri   protocol.DocumentUri
	path  string
	text  string
	lines []int // byte offset of each line start

	file *ast.File // nil while the buffer does not parse
	err  error
}

func newDocument(uri protocol.DocumentUri, path, text string) *document {
	doc := &document{uri: uri, path: path}
	doc.setText(text)
	return doc
}

func (d *document) setText(text string) {
	d.text = text
	d.lines = lineOffsets(text)
	d.file, d.err = parser.Parse(d.path, text)
}

// applyChange splices text into the buffer between two LSP positions.
func (d *document) applyChange(r protocol.Range, text string) {
	start := d.offsetOf(r.Start)
	end := d.offsetOf(r.End)
	if end < start {
		start, end = end, start
	}
	d.setText(d.text[:start] + text + d.text[end:])
}

func lineOffsets(text string) []int {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

// offsetOf converts an LSP position to a byte offset, clamping to the line.
func (d *document) offsetOf(p protocol.Position) int {
	line := int(p.Line)
	if line >= len(d.lines) {
		return len(d.text)
	}

	i := d.lines[line]
	need := int(p.Character)
	for i < len(d.text) && need > 0 {
		r, size := utf8.DecodeRuneInString(d.text[i:])
		if r == '\n' || r == '\r' {
			break
		}
		need -= utf16Len(r)
		i += size
	}
	return i
}

// position converts a byte offset to an LSP position.
func (d *document) position(offset int) protocol.Position {
	offset = max(0, min(offset, len(d.text)))
	line := sort.Search(len(d.lines), func(i int) bool { return d.lines[i] > offset }) - 1

	character := 0
	for i := d.lines[line]; i < offset; {
		r, size := utf8.DecodeRuneInString(d.text[i:])
		character += utf16Len(r)
		i += size
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(character)}
}

// span returns the range covering length bytes from pos, kept on one line.
func (d *document) span(pos ast.Position, length int) protocol.Range {
	start := pos.Offset
	if pos.Line > 0 && pos.Line <= len(d.lines) && start < d.lines[pos.Line-1] {
		// Offset was not tracked; fall back to line and rune column.
		start = d.lines[pos.Line-1]
		for col := 1; col < pos.Column && start < len(d.text) && d.text[start] != '\n'; col++ {
			_, size := utf8.DecodeRuneInString(d.text[start:])
			start += size
		}
	}
	start = max(0, min(start, len(d.text)))

	end := min(start+max(length, 0), len(d.text))
	for i := start; i < end; i++ {
		if d.text[i] == '\n' {
			end = i
			break
		}
	}

	return protocol.Range{Start: d.position(start), End: d.position(end)}
}
