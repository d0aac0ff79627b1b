package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"pecan/internal/errors"
)

const diagnosticSource = "pecan"

// diagnostics turns the buffer's parse failure into LSP diagnostics. The parser stops at
// the first problem, so there is at most one; a nil error yields an empty list
// so publishing it clears stale markers.
func (d *document) diagnostics() []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if d.err == nil {
		return diagnostics
	}

	diag := errors.FromError(d.err)

	message := diag.Message
	var extra []string
	for _, s := range diag.Suggestions {
		extra = append(extra, "help: "+s.Message)
	}
	for _, note := range diag.Notes {
		extra = append(extra, "note: "+note)
	}
	if diag.HelpText != "" {
		extra = append(extra, "help: "+diag.HelpText)
	}
	if len(extra) > 0 {
		message += "\n" + strings.Join(extra, "\n")
	}

	diagnostic := protocol.Diagnostic{
		Range:    d.span(diag.Position, diag.Length),
		Severity: ptrSeverity(severityOf(diag.Level)),
		Source:   ptrString(diagnosticSource),
		Message:  message,
	}
	if diag.Code != "" {
		diagnostic.Code = &protocol.IntegerOrString{Value: diag.Code}
	}

	return append(diagnostics, diagnostic)
}

func severityOf(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	}
	return protocol.DiagnosticSeverityError
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
