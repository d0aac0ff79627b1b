package lsp

import (
	"sort"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"pecan/internal/ast"
)

// SemanticTokenTypes is the legend advertised to clients; token types are
// indices into it.
var SemanticTokenTypes = []string{
	"type",
	"function",
	"variable",
	"parameter",
	"property",
	"enumMember",
}

// SemanticTokenModifiers is the modifier legend; modifiers form a bitmask.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

const (
	modDeclaration = 1 << iota
	modReadonly
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions in UTF-16 code units
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens classifies the names in file, sorted by position.
// A parent claims a name before its children see it, so a callee is a
// function rather than a plain variable reference.
func collectSemanticTokens(doc *document, file *ast.File) []SemanticToken {
	if file == nil {
		return nil
	}

	seen := make(map[int]bool)
	var tokens []SemanticToken
	emit := func(pos ast.Position, name, tokenType string, modifiers int) {
		if name == "" || seen[pos.Offset] {
			return
		}
		seen[pos.Offset] = true

		r := doc.span(pos, len(name))
		if r.End.Character <= r.Start.Character {
			return
		}
		tokens = append(tokens, SemanticToken{
			Line:           r.Start.Line,
			StartChar:      r.Start.Character,
			Length:         r.End.Character - r.Start.Character,
			TokenType:      indexOf(tokenType, SemanticTokenTypes),
			TokenModifiers: modifiers,
		})
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncDecl:
			emit(n.Name.Pos, n.Name.Name, "function", modDeclaration)
			for _, p := range n.Params {
				emit(p.Name.Pos, p.Name.Name, "parameter", modDeclaration)
			}
		case *ast.StructDecl:
			emit(n.Name.Pos, n.Name.Name, "type", modDeclaration)
			for _, m := range n.Members {
				emit(m.Name.Pos, m.Name.Name, "property", modDeclaration)
			}
		case *ast.EnumDecl:
			emit(n.Name.Pos, n.Name.Name, "type", modDeclaration)
			for _, v := range n.Variants {
				emit(v.Pos, v.Name, "enumMember", modDeclaration)
			}
		case *ast.FlagDecl:
			emit(n.Name.Pos, n.Name.Name, "type", modDeclaration)
			for _, v := range n.Variants {
				emit(v.Pos, v.Name, "enumMember", modDeclaration)
			}
		case *ast.LetStmt:
			mods := modDeclaration
			if !n.Mutable {
				mods |= modReadonly
			}
			emit(n.Name.Pos, n.Name.Name, "variable", mods)
		case *ast.ForStmt:
			emit(n.Var.Pos, n.Var.Name, "variable", modDeclaration)
		case *ast.Case:
			if !n.Default {
				emit(n.Pattern.Pos, n.Pattern.Name, "enumMember", 0)
			}
		case *ast.CallExpr:
			if callee, ok := n.Callee.(*ast.IdentExpr); ok {
				emit(callee.Pos, callee.Name, "function", 0)
			}
		case *ast.StructLit:
			emit(n.Pos, n.Name, "type", 0)
		case *ast.NamedType:
			emit(n.Pos, n.Name, "type", 0)
		case *ast.IdentExpr:
			emit(n.Pos, n.Name, "variable", 0)
		}
		return true
	})

	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].StartChar < tokens[j].StartChar
	})
	return tokens
}

// encodeSemanticTokens packs tokens into the LSP wire format using
// delta-line, delta-start compression.
func encodeSemanticTokens(tokens []SemanticToken) []protocol.UInteger {
	data := []protocol.UInteger{}
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
