package diag

// LSPDiagnostic is the zero-based-position shape the language-server
// front end (internal/lspstub) consumes; it is intentionally a plain
// struct rather than importing an LSP protocol package, since the
// language server itself is an external collaborator out of scope
// here (spec §1 Non-goals) and this repo only needs to produce the
// data that collaborator would serialize.
type LSPDiagnostic struct {
	Line      int // zero-based
	Character int // zero-based
	Severity  string
	Message   string
}

// ToLSP converts every recorded diagnostic to LSP-style zero-based
// positions and a textual severity ("Error"/"Warning").
func (s *Sink) ToLSP() []LSPDiagnostic {
	out := make([]LSPDiagnostic, 0, len(s.diags))
	for _, d := range s.diags {
		sev := "Error"
		if d.Severity == Warning {
			sev = "Warning"
		}
		out = append(out, LSPDiagnostic{
			Line:      max(0, d.Line-1),
			Character: max(0, d.Column-1),
			Severity:  sev,
			Message:   d.Message,
		})
	}
	return out
}
