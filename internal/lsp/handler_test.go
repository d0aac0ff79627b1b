package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pecan/internal/lsp"
)

const fibSource = `fn fib(n: I64) -> I64 {
    if (n < 2) {
        return n;
    }
    return fib(n - 1) + fib(n - 2);
}
`

type recorder struct {
	published []*protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (r *recorder) last(t *testing.T) *protocol.PublishDiagnosticsParams {
	t.Helper()
	require.NotEmpty(t, r.published, "no diagnostics were published")
	return r.published[len(r.published)-1]
}

func fileURI(t *testing.T, name string) string {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err)
	return "file://" + filepath.ToSlash(abs)
}

func open(t *testing.T, h *lsp.PecanHandler, ctx *glsp.Context, uri, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "pecan", Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func change(t *testing.T, h *lsp.PecanHandler, ctx *glsp.Context, uri string, changes ...any) {
	t.Helper()
	err := h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: changes,
	})
	require.NoError(t, err)
}

func TestInitializeAdvertisesLegend(t *testing.T) {
	h := lsp.NewPecanHandler()
	result, err := h.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	res, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	options, ok := res.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	assert.Equal(t, lsp.SemanticTokenTypes, options.Legend.TokenTypes)
	assert.Equal(t, lsp.SemanticTokenModifiers, options.Legend.TokenModifiers)
}

func TestDidOpenValidDocumentPublishesNothing(t *testing.T) {
	h := lsp.NewPecanHandler()
	rec := &recorder{}
	uri := fileURI(t, "fib.pc")

	open(t, h, rec.context(), uri, fibSource)

	published := rec.last(t)
	assert.Equal(t, uri, published.URI)
	assert.NotNil(t, published.Diagnostics)
	assert.Empty(t, published.Diagnostics)
}

func TestDidOpenReportsTokenMismatch(t *testing.T) {
	h := lsp.NewPecanHandler()
	rec := &recorder{}
	uri := fileURI(t, "bad.pc")

	open(t, h, rec.context(), uri, "let x: I64 = 1 2;")

	diagnostics := rec.last(t).Diagnostics
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 15},
		End:   protocol.Position{Line: 0, Character: 16},
	}, d.Range)
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.NotNil(t, d.Code)
	assert.Equal(t, "E0100", d.Code.Value)
	require.NotNil(t, d.Source)
	assert.Equal(t, "pecan", *d.Source)
	assert.Contains(t, d.Message, "expected ';', got number 2")
	assert.Contains(t, d.Message, "help: statements end with ';'")
}

func TestDidOpenReportsUnclosedBlock(t *testing.T) {
	h := lsp.NewPecanHandler()
	rec := &recorder{}
	uri := fileURI(t, "open.pc")

	open(t, h, rec.context(), uri, "fn main() {\n")

	diagnostics := rec.last(t).Diagnostics
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "E0101", diagnostics[0].Code.Value)
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, diagnostics[0].Range.Start)
	assert.Contains(t, diagnostics[0].Message, "note: a block was opened but never closed")
}

func TestDidOpenReportsMalformedLiteralSpan(t *testing.T) {
	h := lsp.NewPecanHandler()
	rec := &recorder{}
	uri := fileURI(t, "lit.pc")

	open(t, h, rec.context(), uri, "let a: I64 = 1;\nlet b: I64 = 2asd;")

	diagnostics := rec.last(t).Diagnostics
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "E0102", diagnostics[0].Code.Value)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 13},
		End:   protocol.Position{Line: 1, Character: 17},
	}, diagnostics[0].Range)
}

func TestDidChangeWholeDocumentClearsDiagnostics(t *testing.T) {
	h := lsp.NewPecanHandler()
	rec := &recorder{}
	ctx := rec.context()
	uri := fileURI(t, "edit.pc")

	open(t, h, ctx, uri, "let x: I64 = 1")
	require.Len(t, rec.last(t).Diagnostics, 1)

	change(t, h, ctx, uri, protocol.TextDocumentContentChangeEventWhole{Text: "let x: I64 = 1;"})
	assert.Empty(t, rec.last(t).Diagnostics)
	assert.Len(t, rec.published, 2)
}

func TestDidChangeAppliesRangeEdits(t *testing.T) {
	h := lsp.NewPecanHandler()
	rec := &recorder{}
	ctx := rec.context()
	uri := fileURI(t, "range.pc")

	open(t, h, ctx, uri, "let x: I64 = 1;\nlet y: I64 = 2;\n")
	require.Empty(t, rec.last(t).Diagnostics)

	// Delete the second semicolon.
	change(t, h, ctx, uri, protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 1, Character: 14},
			End:   protocol.Position{Line: 1, Character: 15},
		},
		Text: "",
	})

	diagnostics := rec.last(t).Diagnostics
	require.Len(t, diagnostics, 1)
	assert.Contains(t, diagnostics[0].Message, "expected ';'")

	// Put it back.
	change(t, h, ctx, uri, protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 1, Character: 14},
			End:   protocol.Position{Line: 1, Character: 14},
		},
		Text: ";",
	})
	assert.Empty(t, rec.last(t).Diagnostics)
}

func TestSemanticTokensForOpenDocument(t *testing.T) {
	h := lsp.NewPecanHandler()
	rec := &recorder{}
	ctx := rec.context()
	uri := fileURI(t, "fib.pc")
	open(t, h, ctx, uri, fibSource)

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 10)

	assertToken(t, &decoded[0], 1, 4, 3, "function", []string{"declaration"})
	assertToken(t, &decoded[1], 1, 8, 1, "parameter", []string{"declaration"})
	assertToken(t, &decoded[2], 1, 11, 3, "type", nil)
	assertToken(t, &decoded[3], 1, 19, 3, "type", nil)
	assertToken(t, &decoded[4], 2, 9, 1, "variable", nil)
	assertToken(t, &decoded[5], 3, 16, 1, "variable", nil)
	assertToken(t, &decoded[6], 5, 12, 3, "function", nil)
	assertToken(t, &decoded[7], 5, 16, 1, "variable", nil)
	assertToken(t, &decoded[8], 5, 25, 3, "function", nil)
	assertToken(t, &decoded[9], 5, 29, 1, "variable", nil)
}

func TestSemanticTokensDeclarations(t *testing.T) {
	source := `struct Vec2 { x: F64, y: F64 }
flag Features { Feature1, Feature2 }
fn main() {
    let mut i: I64 = 0;
    let v: Vec2 = Vec2 { .x = 1.0, .y = 2.0 };
    for k: I64 in 0..3 { i += k; }
    switch (i) { case Feature1: return; default: return; }
}
`
	h := lsp.NewPecanHandler()
	ctx := (&recorder{}).context()
	uri := fileURI(t, "decl.pc")
	open(t, h, ctx, uri, source)

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)

	find := func(line, char uint32) *DecodedToken {
		for i := range decoded {
			if decoded[i].Line == line && decoded[i].Char == char {
				return &decoded[i]
			}
		}
		t.Fatalf("no token at %d:%d", line, char)
		return nil
	}

	assertToken(t, find(1, 8), 1, 8, 4, "type", []string{"declaration"})
	assertToken(t, find(1, 15), 1, 15, 1, "property", []string{"declaration"})
	assertToken(t, find(2, 6), 2, 6, 8, "type", []string{"declaration"})
	assertToken(t, find(2, 17), 2, 17, 8, "enumMember", []string{"declaration"})
	assertToken(t, find(3, 4), 3, 4, 4, "function", []string{"declaration"})
	assertToken(t, find(4, 13), 4, 13, 1, "variable", []string{"declaration"})
	assertToken(t, find(5, 9), 5, 9, 1, "variable", []string{"declaration", "readonly"})
	assertToken(t, find(5, 19), 5, 19, 4, "type", nil)
	assertToken(t, find(6, 9), 6, 9, 1, "variable", []string{"declaration"})
	assertToken(t, find(7, 23), 7, 23, 8, "enumMember", nil)
}

func TestSemanticTokensCountUTF16(t *testing.T) {
	h := lsp.NewPecanHandler()
	ctx := (&recorder{}).context()
	uri := fileURI(t, "emoji.pc")
	open(t, h, ctx, uri, `let s: Str = "😀"; let t: I64 = 0;`)

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 4)

	assertToken(t, &decoded[2], 1, 24, 1, "variable", []string{"declaration", "readonly"})
	assertToken(t, &decoded[3], 1, 27, 3, "type", nil)
}

func TestSemanticTokensReadsUnopenedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.pc")
	require.NoError(t, os.WriteFile(path, []byte(fibSource), 0o644))
	uri := "file://" + filepath.ToSlash(path)

	h := lsp.NewPecanHandler()
	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Len(t, tokens.Data, 50)
}

func TestSemanticTokensBrokenDocument(t *testing.T) {
	h := lsp.NewPecanHandler()
	ctx := (&recorder{}).context()
	uri := fileURI(t, "broken.pc")
	open(t, h, ctx, uri, "fn main( {")

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.NotNil(t, tokens.Data)
	assert.Empty(t, tokens.Data)
}

func TestSemanticTokensMissingFile(t *testing.T) {
	h := lsp.NewPecanHandler()
	_, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: fileURI(t, "missing.pc")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestDidCloseForgetsDocument(t *testing.T) {
	h := lsp.NewPecanHandler()
	ctx := (&recorder{}).context()
	uri := fileURI(t, "gone.pc")
	open(t, h, ctx, uri, fibSource)

	require.NoError(t, h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))

	// The buffer was never saved, so there is nothing to fall back to.
	_, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.Error(t, err)
}

func TestDidChangeAfterCloseIsIgnored(t *testing.T) {
	h := lsp.NewPecanHandler()
	rec := &recorder{}
	ctx := rec.context()
	uri := fileURI(t, "closed.pc")
	open(t, h, ctx, uri, fibSource)

	require.NoError(t, h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	published := len(rec.published)

	change(t, h, ctx, uri, protocol.TextDocumentContentChangeEventWhole{Text: "let x: I64 = 1 2;"})
	assert.Len(t, rec.published, published)

	// The late edit must not bring the document back into the cache.
	_, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.Error(t, err)
}

func TestCompletion(t *testing.T) {
	h := lsp.NewPecanHandler()
	ctx := (&recorder{}).context()
	uri := fileURI(t, "complete.pc")
	open(t, h, ctx, uri, fibSource+"enum Bool { False, True }\n")

	result, err := h.TextDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	require.NoError(t, err)

	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok)

	items := map[string]protocol.CompletionItem{}
	for _, item := range list.Items {
		items[item.Label] = item
	}

	for _, kw := range []string{"let", "mut", "switch", "flag", "not"} {
		require.Contains(t, items, kw)
		assert.Equal(t, protocol.CompletionItemKindKeyword, *items[kw].Kind)
	}

	require.Contains(t, items, "fib")
	assert.Equal(t, protocol.CompletionItemKindFunction, *items["fib"].Kind)
	assert.Equal(t, "fn fib(n: I64) -> I64", *items["fib"].Detail)

	require.Contains(t, items, "True")
	assert.Equal(t, protocol.CompletionItemKindEnumMember, *items["True"].Kind)
	assert.Equal(t, "Bool", *items["True"].Detail)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if raw[i+4]&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1,
			Char:      char + 1,
			Length:    raw[i+2],
			Type:      lsp.SemanticTokenTypes[raw[i+3]],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	t.Helper()
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
