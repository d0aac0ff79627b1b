package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pecan/internal/ast"
	"pecan/internal/lexer"
)

var log = commonlog.GetLogger("pecan.lsp")

// PecanHandler implements the LSP server handlers for pecan source files
type PecanHandler struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentUri]*document
}

// NewPecanHandler creates and returns a new PecanHandler instance
func NewPecanHandler() *PecanHandler {
	return &PecanHandler{
		docs: make(map[protocol.DocumentUri]*document),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *PecanHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *PecanHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *PecanHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *PecanHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen caches the buffer sent by the editor and publishes its diagnostics
func (h *PecanHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("opened %s", uri)

	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	doc := newDocument(uri, path, params.TextDocument.Text)

	h.mu.Lock()
	h.docs[uri] = doc
	diagnostics := doc.diagnostics()
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, diagnostics)
	return nil
}

// TextDocumentDidChange applies edits to the cached buffer and republishes diagnostics
func (h *PecanHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("changed %s", uri)

	h.mu.Lock()
	doc, ok := h.docs[uri]
	if !ok {
		h.mu.Unlock()
		log.Debugf("ignoring change to %s, document is not open", uri)
		return nil
	}
	for _, change := range params.ContentChanges {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			doc.setText(change.Text)
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				doc.setText(change.Text)
			} else {
				doc.applyChange(*change.Range, change.Text)
			}
		}
	}
	diagnostics := doc.diagnostics()
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, diagnostics)
	return nil
}

// TextDocumentDidClose drops the cached buffer
func (h *PecanHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.docs, params.TextDocument.URI)

	return nil
}

// TextDocumentCompletion offers the keywords plus the names declared in the document
func (h *PecanHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	items := []protocol.CompletionItem{}

	keywordKind := protocol.CompletionItemKindKeyword
	for _, kw := range lexer.Keywords() {
		items = append(items, protocol.CompletionItem{Label: kw, Kind: &keywordKind})
	}

	h.mu.RLock()
	doc := h.docs[params.TextDocument.URI]
	var file *ast.File
	if doc != nil {
		file = doc.file
	}
	h.mu.RUnlock()

	items = append(items, declaredNames(file)...)

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// declaredNames lists the top-level declarations of file as completion items.
func declaredNames(file *ast.File) []protocol.CompletionItem {
	if file == nil {
		return nil
	}

	var items []protocol.CompletionItem
	add := func(name string, kind protocol.CompletionItemKind, detail string) {
		items = append(items, protocol.CompletionItem{Label: name, Kind: &kind, Detail: ptrString(detail)})
	}

	for _, stmt := range file.Stmts {
		switch s := stmt.(type) {
		case *ast.FuncDecl:
			add(s.Name.Name, protocol.CompletionItemKindFunction, signature(s))
		case *ast.StructDecl:
			add(s.Name.Name, protocol.CompletionItemKindStruct, "struct")
		case *ast.EnumDecl:
			add(s.Name.Name, protocol.CompletionItemKindEnum, "enum")
			for _, v := range s.Variants {
				add(v.Name, protocol.CompletionItemKindEnumMember, s.Name.Name)
			}
		case *ast.FlagDecl:
			add(s.Name.Name, protocol.CompletionItemKindEnum, "flag")
			for _, v := range s.Variants {
				add(v.Name, protocol.CompletionItemKindEnumMember, s.Name.Name)
			}
		case *ast.LetStmt:
			add(s.Name.Name, protocol.CompletionItemKindVariable, s.Type.String())
		}
	}
	return items
}

func signature(f *ast.FuncDecl) string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("fn %s(%s) -> %s", f.Name.Name, strings.Join(params, ", "), f.Return)
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *PecanHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	uri := params.TextDocument.URI
	log.Debugf("semantic tokens for %s", uri)

	doc, err := h.getOrLoad(uri)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	tokens := collectSemanticTokens(doc, doc.file)
	h.mu.RUnlock()

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(tokens),
	}, nil
}

// getOrLoad returns the cached document, reading it from disk when the
// editor asks about a file it never opened.
func (h *PecanHandler) getOrLoad(uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.docs[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if doc, ok := h.docs[uri]; ok {
		return doc, nil
	}
	doc = newDocument(uri, path, string(content))
	h.docs[uri] = doc
	return doc, nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	log.Debugf("publishing %d diagnostic(s) for %s", len(diagnostics), uri)

	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
