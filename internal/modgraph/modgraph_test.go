package modgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luma-lang/lumac/internal/arena"
	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/token"
)

func moduleWithUses(pool *arena.Pool, name string, uses ...string) *lumair.Module {
	var body []lumair.Stmt
	for _, u := range uses {
		body = append(body, lumair.NewUse(pool, token.Position{}, u, ""))
	}
	return lumair.NewModule(pool, token.Position{}, name, body)
}

func TestOrder_AcyclicDependencyOrderPutsDependenciesFirst(t *testing.T) {
	pool := &arena.Pool{}
	prog := &lumair.Program{Modules: []*lumair.Module{
		moduleWithUses(pool, "a", "b"),
		moduleWithUses(pool, "b", "c"),
		moduleWithUses(pool, "c"),
	}}

	sink := &diag.Sink{}
	g := New()
	g.Register(prog, "a", sink)
	g.WireImports(prog, sink)
	require.False(t, sink.HasErrors())

	order := g.Order(sink)
	require.False(t, sink.HasErrors())
	require.Len(t, order, 3)

	var names []string
	for _, m := range order {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"c", "b", "a"}, names)
}

func TestOrder_CycleIsReportedAndExcluded(t *testing.T) {
	pool := &arena.Pool{}
	prog := &lumair.Program{Modules: []*lumair.Module{
		moduleWithUses(pool, "a", "b"),
		moduleWithUses(pool, "b", "a"),
	}}

	sink := &diag.Sink{}
	g := New()
	g.Register(prog, "a", sink)
	g.WireImports(prog, sink)
	require.False(t, sink.HasErrors())

	order := g.Order(sink)
	assert.True(t, sink.HasErrors())
	assert.Empty(t, order)
}

func TestRegister_DuplicateModuleNameIsDiagnosed(t *testing.T) {
	pool := &arena.Pool{}
	prog := &lumair.Program{Modules: []*lumair.Module{
		moduleWithUses(pool, "a"),
		moduleWithUses(pool, "a"),
	}}

	sink := &diag.Sink{}
	g := New()
	g.Register(prog, "a", sink)
	assert.True(t, sink.HasErrors())
	assert.Len(t, g.Modules.All(), 1)
}

func TestWireImports_SelfImportWarnsAndIsNotAnEdge(t *testing.T) {
	pool := &arena.Pool{}
	prog := &lumair.Program{Modules: []*lumair.Module{
		moduleWithUses(pool, "a", "a"),
	}}

	sink := &diag.Sink{}
	g := New()
	g.Register(prog, "a", sink)
	g.WireImports(prog, sink)

	require.False(t, sink.HasErrors(), "self-import is a warning, not an error")
	require.Len(t, sink.All(), 1)
	assert.Equal(t, diag.Warning, sink.All()[0].Severity)

	unit := g.Modules.Lookup("a")
	assert.Empty(t, unit.Imports)
}

func TestWireImports_UnknownModuleSuggestsClosestMatch(t *testing.T) {
	pool := &arena.Pool{}
	prog := &lumair.Program{Modules: []*lumair.Module{
		moduleWithUses(pool, "a", "serverr"),
		moduleWithUses(pool, "server"),
	}}

	sink := &diag.Sink{}
	g := New()
	g.Register(prog, "a", sink)
	g.WireImports(prog, sink)

	require.True(t, sink.HasErrors())
	d := sink.All()[0]
	assert.Equal(t, diag.UnknownModule, d.Kind)
	assert.Contains(t, d.Help, "server")
}

func TestWireImports_DuplicateImportOfSameTargetIsIgnored(t *testing.T) {
	pool := &arena.Pool{}
	prog := &lumair.Program{Modules: []*lumair.Module{
		moduleWithUses(pool, "a", "b", "b"),
		moduleWithUses(pool, "b"),
	}}

	sink := &diag.Sink{}
	g := New()
	g.Register(prog, "a", sink)
	g.WireImports(prog, sink)
	require.False(t, sink.HasErrors())

	unit := g.Modules.Lookup("a")
	assert.Len(t, unit.Imports, 1)
}
