// Package driver orchestrates the whole pipeline described in
// spec.md §2 and §7: discover every module transitively reachable
// from a source file, lex, parse, wire the module graph, emit, then
// link — checking for accumulated diagnostics at each phase boundary
// and aborting before the next phase, mirroring
// _examples/rubiojr-rugo/compiler/compiler.go's Compile/Build/Run
// orchestration shape (substituting this language's own lex/parse/
// emit/link phases for rugo's parse-to-Go-source-then-`go build`
// shape).
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luma-lang/lumac/internal/arena"
	"github.com/luma-lang/lumac/internal/diag"
	"github.com/luma-lang/lumac/internal/emit"
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/lexer"
	"github.com/luma-lang/lumac/internal/modgraph"
	"github.com/luma-lang/lumac/internal/parser"
	"github.com/luma-lang/lumac/internal/stdpath"
	"github.com/luma-lang/lumac/internal/token"
)

// Exit codes per spec.md §6.
const (
	ExitSuccess      = 0
	ExitUsage        = 1
	ExitFileNotFound = 2
	ExitOutOfMemory  = 3
	ExitLexerError   = 4
	ExitParserError  = 5
	ExitRuntimeError = 6
	ExitUnknown      = 99
)

// Options mirrors the cmd/lumac flags that affect a build, independent
// of how they were parsed off the command line.
type Options struct {
	OutputName string
	Save       bool
	Clean      bool
	NoSanitize bool
	LinkExtra  []string
	OptLevel   int // 0-3, default 2
}

// Result is what a successful Compile call produces.
type Result struct {
	BinaryPath string
	ObjectDir  string
}

// Outcome bundles the process exit code a CLI should use with any
// diagnostics the sink accumulated, regardless of whether the build
// ultimately succeeded (a successful build can still have warnings).
type Outcome struct {
	ExitCode    int
	Result      *Result
	Diagnostics []*diag.Diagnostic
}

// sourceFile is one discovered, lexed file: its module name, its
// token stream, and the path it came from (for diagnostics and the
// module's backend filename).
type sourceFile struct {
	name string
	path string
	toks []token.Token
}

// Compile runs the full pipeline for the module reached from
// mainPath and returns the outcome the CLI should report.
func Compile(mainPath string, opts Options) *Outcome {
	if opts.OptLevel < 0 || opts.OptLevel > 3 {
		opts.OptLevel = 2
	}

	absMain, err := filepath.Abs(mainPath)
	if err != nil {
		return &Outcome{ExitCode: ExitUsage}
	}
	if opts.Clean {
		cleanArtifacts(absMain)
	}
	if info, err := os.Stat(absMain); err != nil || info.IsDir() {
		return &Outcome{ExitCode: ExitFileNotFound}
	}

	pool := &arena.Pool{}
	mainModuleName := moduleNameFor(absMain)

	// --- Phase 1: discovery + lexing ---
	lexSink := &diag.Sink{}
	files, order, err := discoverAndLex(mainModuleName, absMain, lexSink)
	if err != nil {
		lexSink.Errorf(diag.SyntaxError, token.Position{}, absMain, "", "%v", err)
	}
	if lexSink.HasErrors() {
		return &Outcome{ExitCode: ExitLexerError, Diagnostics: lexSink.All()}
	}

	// --- Phase 2: parsing ---
	parseSink := &diag.Sink{}
	var prog lumair.Program
	bodies := make(map[string][]lumair.Stmt)
	for _, name := range order {
		sf := files[name]
		p := parser.New(pool, parseSink, sf.path, sf.toks)
		m := p.ParseModule(name)
		prog.Modules = append(prog.Modules, m)
		bodies[name] = m.Body
	}
	if parseSink.HasErrors() {
		return &Outcome{ExitCode: ExitParserError, Diagnostics: parseSink.All()}
	}

	// --- Phase 3: module graph ---
	graphSink := &diag.Sink{}
	graph := modgraph.New()
	graph.Register(&prog, mainModuleName, graphSink)
	graph.WireImports(&prog, graphSink)
	emitOrder := graph.Order(graphSink)
	if graphSink.HasErrors() {
		// Per spec.md §8 scenario 6, a use-dependency cycle is reported
		// and bucketed with the other front-end rejections.
		return &Outcome{ExitCode: ExitParserError, Diagnostics: graphSink.All()}
	}

	// --- Phase 4: emission ---
	emitSink := &diag.Sink{}
	for _, unit := range emitOrder {
		e := emit.New(emitSink, &graph.Modules, unit, files[unit.Name].path)
		e.EmitModuleBody(bodies[unit.Name])
	}
	if emitSink.HasErrors() {
		return &Outcome{ExitCode: ExitRuntimeError, Diagnostics: emitSink.All()}
	}

	// --- Phase 5: write IR + link ---
	result, err := writeAndLink(emitOrder, absMain, opts)
	if err != nil {
		emitSink.Errorf(diag.SyntaxError, token.Position{}, absMain, "", "%v", err)
		return &Outcome{ExitCode: ExitUnknown, Diagnostics: emitSink.All()}
	}

	return &Outcome{ExitCode: ExitSuccess, Result: result}
}

// moduleNameFor derives a module's name from its file path: the base
// name with its extension stripped, matching the one-file-one-module
// convention a `use name;` directive's name must agree with.
func moduleNameFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// discoverAndLex performs a breadth-first walk of the `use` graph at
// the token level (before any IR exists): lex a file, scan its raw
// tokens for `use` directives, resolve each to a file via
// internal/stdpath, and queue it if not already discovered. The walk
// order becomes the parse order; modgraph's Graph.Order (pass 3) is what
// actually determines emission order once imports are wired.
func discoverAndLex(mainModuleName, mainPath string, sink *diag.Sink) (map[string]*sourceFile, []string, error) {
	files := make(map[string]*sourceFile)
	var order []string

	type work struct {
		name string
		path string
	}
	queue := []work{{name: mainModuleName, path: mainPath}}

	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]
		if _, ok := files[w.name]; ok {
			continue
		}
		src, err := os.ReadFile(w.path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", w.path, err)
		}
		toks := lexer.New(w.path, string(src)).Tokenize()
		for _, t := range toks {
			if t.Kind == token.Illegal {
				sink.Errorf(diag.SyntaxError, t.Pos, w.path, "", "illegal token: %s", t.Text)
			}
		}
		files[w.name] = &sourceFile{name: w.name, path: w.path, toks: toks}
		order = append(order, w.name)

		for _, useName := range scanUseDirectives(toks) {
			if _, ok := files[useName]; ok {
				continue
			}
			resolved, err := stdpath.Resolve(useName, filepath.Dir(w.path))
			if err != nil {
				sink.Errorf(diag.UnknownModule, token.Position{}, w.path, "", "%v", err)
				continue
			}
			queue = append(queue, work{name: useName, path: resolved})
		}
	}
	return files, order, nil
}

// scanUseDirectives walks a raw token stream (no parser state needed)
// looking for `use <path> [as <alias>] ;` and returns each path's
// "::"-joined module name, matching internal/parser's Use.ModuleName
// encoding.
func scanUseDirectives(toks []token.Token) []string {
	var names []string
	for i := 0; i < len(toks); i++ {
		if toks[i].Kind != token.KwUse {
			continue
		}
		var parts []string
		j := i + 1
		for j < len(toks) && toks[j].Kind == token.Ident {
			parts = append(parts, toks[j].Text)
			j++
			if j < len(toks) && toks[j].Kind == token.ColonColon {
				j++
				continue
			}
			break
		}
		if len(parts) > 0 {
			names = append(names, strings.Join(parts, "::"))
		}
		i = j
	}
	return names
}

// cleanArtifacts removes the build directory -clean asks to be wiped
// before a fresh build, per spec.md §6.
func cleanArtifacts(mainPath string) {
	os.RemoveAll(buildDir(mainPath))
}

func buildDir(mainPath string) string {
	return filepath.Join(filepath.Dir(mainPath), "."+moduleNameFor(mainPath)+".build")
}
