// Package lspstub is the seam between cmd/lumac's -lsp flag and a
// language-server front end, which spec.md §1 places deliberately out
// of scope. spec.md §7 does specify how diagnostics would cross that
// seam ("the same sink converts to a diagnostics array with
// zero-based positions and severity mapping"), so this package
// implements that one conversion and leaves the protocol server
// itself to an external collaborator.
package lspstub

import "github.com/luma-lang/lumac/internal/diag"

// Severity mirrors the LSP DiagnosticSeverity enum's first three
// values (Error, Warning, Information) referenced by spec.md §7.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
)

// Position is zero-based, per the LSP specification, unlike
// internal/diag's one-based Diagnostic.Line/Column.
type Position struct {
	Line      int
	Character int
}

// Diagnostic is one sink entry converted to LSP shape.
type Diagnostic struct {
	Range    [2]Position
	Severity Severity
	Message  string
	Source   string
}

// FromSink converts every diagnostic in sink to LSP form. A
// diagnostic with Span 0 becomes a zero-width range at its start
// position.
func FromSink(sink *diag.Sink) []Diagnostic {
	all := sink.All()
	out := make([]Diagnostic, 0, len(all))
	for _, d := range all {
		start := Position{Line: d.Line - 1, Character: d.Column - 1}
		end := start
		end.Character += d.Span
		out = append(out, Diagnostic{
			Range:    [2]Position{start, end},
			Severity: severityOf(d),
			Message:  d.Message,
			Source:   "lumac",
		})
	}
	return out
}

func severityOf(d *diag.Diagnostic) Severity {
	if d.Severity == diag.Warning {
		return SeverityWarning
	}
	return SeverityError
}

// Server is the seam a real language-server front end would
// implement; cmd/lumac's -lsp flag depends on this interface so
// wiring in a real server never touches flag-handling code.
type Server interface {
	// Serve runs the LSP server loop until the client disconnects.
	Serve() error
}
