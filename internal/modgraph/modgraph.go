// Package modgraph registers module declarations, wires their `use`
// imports, and computes a dependency-respecting emission order —
// spec's three-pass module graph algorithm.
package modgraph

import (
	"fmt"

	"github.com/llir/llvm/ir"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/token"
	"github.com/luma-lang/lumac/internal/types"
)

// Graph owns every registered module plus the use-edges discovered
// during wiring, and produces the final emission order.
type Graph struct {
	Modules types.ModuleList
	edges   map[string][]edge // source module name -> its use edges
	order   []*types.Module
}

type edge struct {
	target *types.Module
	alias  string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{edges: make(map[string][]edge)}
}

// Register runs Pass 1: walk every module node, creating one
// compilation unit per declaration and inserting it into the module
// list. A duplicate module name is a DuplicateDefinition diagnostic.
func (g *Graph) Register(prog *lumair.Program, mainModule string, sink *diag.Sink) {
	for _, m := range prog.Modules {
		if g.Modules.Lookup(m.Name) != nil {
			sink.Errorf(diag.DuplicateDefinition, m.Pos(), "", "",
				"module %q is declared more than once", m.Name)
			continue
		}
		unit := &types.Module{
			Name:    m.Name,
			Backend: ir.NewModule(),
			IsMain:  m.Name == mainModule,
		}
		g.Modules.Insert(unit)
	}
}

// WireImports runs Pass 2: scan each module's body for Use statements
// and record the (source, target, alias) relationship. Code emission
// does not happen here.
func (g *Graph) WireImports(prog *lumair.Program, sink *diag.Sink) {
	for _, m := range prog.Modules {
		unit := g.Modules.Lookup(m.Name)
		if unit == nil {
			continue // registration already reported the duplicate
		}
		for _, stmt := range m.Body {
			use, ok := stmt.(*lumair.Use)
			if !ok {
				continue
			}
			if use.ModuleName == m.Name {
				sink.Warnf(diag.UnknownModule, use.Pos(), "", "",
					"module %q imports itself", m.Name)
				continue
			}
			target := g.Modules.Lookup(use.ModuleName)
			if target == nil {
				sink.Errorf(diag.UnknownModule, use.Pos(), "",
					suggestModule(use.ModuleName, prog),
					"unknown module %q", use.ModuleName)
				continue
			}
			if importIdempotent(g.edges[m.Name], target, use.Alias) {
				continue // duplicate import, silently ignored
			}
			unit.Imports = append(unit.Imports, types.Import{Target: target, Alias: use.Alias})
			g.edges[m.Name] = append(g.edges[m.Name], edge{target: target, alias: use.Alias})
		}
	}
}

func importIdempotent(existing []edge, target *types.Module, alias string) bool {
	for _, e := range existing {
		if e.target == target && e.alias == alias {
			return true
		}
	}
	return false
}

func suggestModule(name string, prog *lumair.Program) string {
	names := make([]string, 0, len(prog.Modules))
	for _, m := range prog.Modules {
		names = append(names, m.Name)
	}
	if m := diag.ClosestMatch(name, names); m != "" {
		return fmt.Sprintf("did you mean %q?", m)
	}
	return ""
}

// Order runs Pass 3: a depth-first post-order traversal over the
// use-edges with a processed-set, so every module appears after all
// of its dependencies. A module reachable from itself through a
// cycle of use-edges is a diagnostic and is excluded from the
// returned order (no object file is written for it).
func (g *Graph) Order(sink *diag.Sink) []*types.Module {
	processed := make(map[*types.Module]bool)
	onStack := make(map[*types.Module]bool)
	var order []*types.Module

	var visit func(m *types.Module) bool
	visit = func(m *types.Module) bool {
		if processed[m] {
			return true
		}
		if onStack[m] {
			sink.Errorf(diag.DuplicateDefinition, token.Position{}, "", "",
				"module %q participates in a use-dependency cycle", m.Name)
			return false
		}
		onStack[m] = true
		for _, e := range g.edges[m.Name] {
			if !visit(e.target) {
				onStack[m] = false
				return false
			}
		}
		onStack[m] = false
		processed[m] = true
		order = append(order, m)
		return true
	}

	for _, m := range g.Modules.All() {
		if !processed[m] {
			visit(m)
		}
	}
	g.order = order
	return order
}
