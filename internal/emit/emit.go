// Package emit lowers internal/ir into backend SSA IR built with
// github.com/llir/llvm/ir — one *types.Module per source module, with
// a single dispatch function per node category (expression, statement,
// type) switching on Go's dynamic type via a type switch, each
// handler free to recurse back into the dispatcher for sub-nodes.
package emit

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
	lumatypes "github.com/luma-lang/lumac/internal/types"
)

// Emitter lowers one module's IR into its backend module. It is
// reused function-by-function within the module; per-function state
// (the defer stack, break/continue targets, the current block) lives
// on fn, set up by emitFuncBody.
type Emitter struct {
	Sink    *diag.Sink
	Modules *lumatypes.ModuleList
	Mod     *lumatypes.Module // module currently being emitted
	File    string

	fn *funcScope

	runtime    runtimeDecls
	funcBodies []pendingBody // in source order, one entry per function with a body
	hasBody    map[string]bool
	strCounter int
}

// pendingBody pairs an already-declared backend function with the
// parameter names and statement body to emit into it. Decoupling this
// from *lumair.FuncDecl lets an injected struct-method receiver
// (internal/emit/struct.go) reuse the same emission path as an
// ordinary top-level function.
type pendingBody struct {
	Fn     *ir.Func
	Params []string
	Body   []lumair.Stmt
}

// funcScope holds the state that is only meaningful while emitting one
// function body.
type funcScope struct {
	llfn    *ir.Func
	block   *ir.Block
	defers  []lumair.Stmt // LIFO stack, spec.md §3.5
	breakTo []*ir.Block
	contTo  []*ir.Block
	locals  lumatypes.SymbolList // function-local names shadow module symbols
}

// New returns an Emitter ready to process mod, reporting diagnostics
// to sink and resolving cross-module references through modules.
func New(sink *diag.Sink, modules *lumatypes.ModuleList, mod *lumatypes.Module, file string) *Emitter {
	return &Emitter{Sink: sink, Modules: modules, Mod: mod, File: file}
}

// EmitModuleBody emits every non-Use statement of a module's body in
// source order, per the single-threaded, source-order ordering
// guarantee in spec.md §5.
func (e *Emitter) EmitModuleBody(body []lumair.Stmt) {
	// Two passes: first register every struct/enum/func *signature* so
	// forward references across the file resolve regardless of
	// declaration order, then emit bodies. This mirrors the opaque-
	// struct-first, body-later requirement (spec.md §3.4) generalized
	// to functions and enums.
	for _, stmt := range body {
		e.predeclare(stmt)
	}
	// Impl blocks are registered after every struct has at least its
	// opaque form predeclared, so `impl foo -> Bar` resolves regardless
	// of whether Bar's declaration appears earlier or later in the file.
	for _, stmt := range body {
		if im, ok := stmt.(*lumair.Impl); ok {
			e.predeclareImpl(im)
		}
	}
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *lumair.Use:
			continue
		case *lumair.FuncDecl:
			continue // bodies are emitted below, once per distinct name
		case *lumair.Impl:
			continue // methods are emitted below via funcBodies
		case *lumair.StructDecl:
			e.emitStructDecl(s)
		case *lumair.EnumDecl:
			e.emitEnumDecl(s)
		default:
			e.emitStmt(stmt)
		}
	}
	for _, pb := range e.funcBodies {
		e.emitFuncBody(pb)
	}
}

// predeclare registers top-level names before any body is emitted.
func (e *Emitter) predeclare(stmt lumair.Stmt) {
	switch s := stmt.(type) {
	case *lumair.StructDecl:
		e.predeclareStruct(s)
	case *lumair.EnumDecl:
		e.predeclareEnum(s)
	case *lumair.FuncDecl:
		e.predeclareFunc(s)
	}
}

// runtimeDecls holds each lazily-declared host runtime function or
// intrinsic (printf, floor, etc.) in its own field, so each is
// declared at most once per module.
type runtimeDecls struct {
	printf  *ir.Func
	scanf   *ir.Func
	malloc  *ir.Func
	free    *ir.Func
	floor   *ir.Func
	system  *ir.Func
	syscall *ir.Func
}

var i8ptr = types.NewPointer(types.I8)

func (e *Emitter) mod() *ir.Module { return e.Mod.Backend }
