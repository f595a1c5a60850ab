// Package diag implements the compiler's diagnostic sink: every
// phase (lexer, parser, module graph, emitter) records failures here
// instead of aborting the process, so one invocation can surface every
// error in a file rather than stopping at the first. Fatal aborts
// happen only at the phase boundaries the driver checks explicitly.
package diag

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"

	"github.com/luma-lang/lumac/internal/token"
)

// Kind is the closed taxonomy of diagnostic kinds.
type Kind int

const (
	SyntaxError Kind = iota
	TypeError
	UndefinedSymbol
	DuplicateDefinition
	InvalidAssignment
	IncompatibleTypes
	PrivateAccess
	IndexOutOfRange
	MissingField
	UnknownModule
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case TypeError:
		return "TypeError"
	case UndefinedSymbol:
		return "UndefinedSymbol"
	case DuplicateDefinition:
		return "DuplicateDefinition"
	case InvalidAssignment:
		return "InvalidAssignment"
	case IncompatibleTypes:
		return "IncompatibleTypes"
	case PrivateAccess:
		return "PrivateAccess"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case MissingField:
		return "MissingField"
	case UnknownModule:
		return "UnknownModule"
	default:
		return "Diagnostic"
	}
}

// Severity distinguishes hard errors from warnings; both share the
// same shape.
type Severity int

const (
	Error Severity = iota
	Warning
)

// Diagnostic is one structured compiler message.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	File     string
	Message  string
	Line     int
	Column   int
	Span     int // token length in bytes/runes, 0 when not applicable
	Help     string
}

// Error satisfies the error interface so a Diagnostic can be wrapped
// directly into a multierr chain.
func (d *Diagnostic) Error() string {
	var sb strings.Builder
	if d.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: ", d.File, d.Line, d.Column)
	}
	sb.WriteString(d.Message)
	return sb.String()
}

// Sink accumulates diagnostics across an entire phase. Zero value is
// ready to use.
type Sink struct {
	diags []*Diagnostic
	err   error
}

// Report records d and folds it into the sink's accumulated error via
// multierr, mirroring the "errors accumulate, never abort mid-phase"
// propagation policy.
func (s *Sink) Report(d *Diagnostic) {
	s.diags = append(s.diags, d)
	if d.Severity == Error {
		s.err = multierr.Append(s.err, d)
	}
}

func (s *Sink) Errorf(kind Kind, pos token.Position, file, help string, format string, args ...any) {
	s.Report(&Diagnostic{
		Kind: kind, Severity: Error, File: file,
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line, Column: pos.Column, Help: help,
	})
}

func (s *Sink) Warnf(kind Kind, pos token.Position, file, help string, format string, args ...any) {
	s.Report(&Diagnostic{
		Kind: kind, Severity: Warning, File: file,
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line, Column: pos.Column, Help: help,
	})
}

// HasErrors reports whether any error-severity diagnostic has been
// recorded. The driver calls this at every phase boundary.
func (s *Sink) HasErrors() bool { return s.err != nil }

// Err returns the accumulated multierr chain, or nil.
func (s *Sink) Err() error { return s.err }

// All returns every diagnostic recorded so far, in report order.
func (s *Sink) All() []*Diagnostic { return s.diags }

// Print writes every diagnostic to w in the teacher-style
// "file:line:col: error: message" form ("warning" for a warning), with
// a source snippet and caret, and
// a "Help:" line when Help is set.
func (s *Sink) Print(w *os.File) {
	for _, d := range s.diags {
		prefix := "error"
		if d.Severity == Warning {
			prefix = "warning"
		}
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", d.File, d.Line, d.Column, prefix, d.Message)
		if snip := SourceSnippet(d.File, d.Line, d.Column); snip != "" {
			fmt.Fprint(w, snip)
		}
		if d.Help != "" {
			fmt.Fprintf(w, "  Help: %s\n", d.Help)
		}
	}
}

// SourceSnippet renders the offending source line with a caret under
// the reported column, matching the teacher's sourceSnippet helper.
func SourceSnippet(filename string, line, col int) string {
	if filename == "" || line <= 0 {
		return ""
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return ""
	}
	lines := strings.Split(string(data), "\n")
	if line > len(lines) {
		return ""
	}

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", line))
	pad := strings.Repeat(" ", width)

	fmt.Fprintf(&sb, "%s |\n", pad)
	fmt.Fprintf(&sb, "%*d | %s\n", width, line, lines[line-1])
	if col > 0 {
		fmt.Fprintf(&sb, "%s | %s^\n", pad, strings.Repeat(" ", col-1))
	}
	return sb.String()
}

// ClosestMatch returns the candidate nearest to name by edit distance,
// or "" when nothing is within the threshold — backs "did you mean"
// suggestions for UndefinedSymbol/UnknownModule/MissingField.
func ClosestMatch(name string, candidates []string) string {
	best := ""
	bestDist := 3 // max distance 2, matching the teacher's threshold
	for _, c := range candidates {
		if d := levenshtein(name, c); d < bestDist {
			bestDist, best = d, c
		}
	}
	return best
}

func levenshtein(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr := make([]int, lb+1)
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, min(prev[j]+1, prev[j-1]+cost))
		}
		prev = curr
	}
	return prev[lb]
}
