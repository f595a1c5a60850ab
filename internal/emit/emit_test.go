package emit

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luma-lang/lumac/internal/arena"
	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/token"
	"github.com/luma-lang/lumac/internal/types"
)

func newEmitter() (*Emitter, *diag.Sink) {
	sink := &diag.Sink{}
	mod := &types.Module{Name: "m", Backend: ir.NewModule()}
	modules := &types.ModuleList{}
	modules.Insert(mod)
	return New(sink, modules, mod, "m.lx"), sink
}

func TestEmitEnumDecl_MembersFoldToSequentialOrdinals(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()
	en := lumair.NewEnumDecl(pool, token.Position{}, "Color", []string{"Red", "Green", "Blue"}, true)

	e.predeclareEnum(en)
	e.emitEnumDecl(en)
	require.False(t, sink.HasErrors())

	for i, member := range en.Members {
		sym := e.Mod.Symbols.Lookup("Color." + member)
		require.NotNil(t, sym, "missing symbol for %s", member)
		g, ok := sym.Value.(*ir.Global)
		require.True(t, ok)
		init, ok := g.Init.(*constant.Int)
		require.True(t, ok)
		assert.Equal(t, int64(i), init.X.Int64())
		assert.True(t, g.Immutable)
	}
}

func TestPredeclareStruct_SelfReferentialPointerFieldResolves(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()

	ptrToSelf := lumair.NewPointerType(pool, token.Position{}, lumair.NewBasicType(pool, token.Position{}, "Node"))
	fields := []*lumair.FieldDecl{
		lumair.NewFieldDecl(pool, token.Position{}, "v", lumair.NewBasicType(pool, token.Position{}, "int"), nil, true),
		lumair.NewFieldDecl(pool, token.Position{}, "next", ptrToSelf, nil, true),
	}
	sd := lumair.NewStructDecl(pool, token.Position{}, "Node", fields, nil, true)

	e.predeclareStruct(sd)
	require.False(t, sink.HasErrors())
	info := e.Mod.Structs.Lookup("Node")
	require.NotNil(t, info)

	e.emitStructDecl(sd)
	require.False(t, sink.HasErrors())
	require.Len(t, info.Fields, 2)
	assert.Equal(t, "next", info.Fields[1].Name)
	_, isPtr := info.Fields[1].Type.(*lltypes.PointerType)
	assert.True(t, isPtr)
}

func TestPredeclareStruct_DuplicateNameIsDiagnosed(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()
	sd1 := lumair.NewStructDecl(pool, token.Position{}, "Dup", nil, nil, true)
	sd2 := lumair.NewStructDecl(pool, token.Position{}, "Dup", nil, nil, true)

	e.predeclareStruct(sd1)
	e.predeclareStruct(sd2)
	assert.True(t, sink.HasErrors())
}

func TestPredeclareFunc_ForwardDeclarationThenMatchingDefinitionShareOneBackendFunc(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()

	intType := lumair.NewBasicType(pool, token.Position{}, "int")
	fwd := lumair.NewFuncDecl(pool, token.Position{}, "add",
		[]string{"a", "b"}, []lumair.Type{intType, intType}, nil, intType, nil, true)
	def := lumair.NewFuncDecl(pool, token.Position{}, "add",
		[]string{"a", "b"}, []lumair.Type{intType, intType}, nil, intType,
		[]lumair.Stmt{lumair.NewReturn(pool, token.Position{}, lumair.NewIdent(pool, token.Position{}, "a"))}, true)

	e.predeclareFunc(fwd)
	e.predeclareFunc(def)
	require.False(t, sink.HasErrors())

	sym := e.Mod.Symbols.Lookup("add")
	require.NotNil(t, sym)
	require.Len(t, e.funcBodies, 1)
	assert.Same(t, sym.Value.(*ir.Func), e.funcBodies[0].Fn)
}

func TestPredeclareFunc_MismatchedRedeclarationSignatureIsDiagnosed(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()

	intType := lumair.NewBasicType(pool, token.Position{}, "int")
	doubleType := lumair.NewBasicType(pool, token.Position{}, "double")
	fwd := lumair.NewFuncDecl(pool, token.Position{}, "f", nil, nil, nil, intType, nil, true)
	mismatched := lumair.NewFuncDecl(pool, token.Position{}, "f", nil, nil, nil, doubleType, nil, true)

	e.predeclareFunc(fwd)
	e.predeclareFunc(mismatched)
	assert.True(t, sink.HasErrors())
}

func TestPredeclareFunc_SecondBodyForSameNameIsDiagnosed(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()

	intType := lumair.NewBasicType(pool, token.Position{}, "int")
	retA := lumair.NewReturn(pool, token.Position{}, lumair.NewIntLit(pool, token.Position{}, "1"))
	retB := lumair.NewReturn(pool, token.Position{}, lumair.NewIntLit(pool, token.Position{}, "2"))
	first := lumair.NewFuncDecl(pool, token.Position{}, "f", nil, nil, nil, intType, []lumair.Stmt{retA}, true)
	second := lumair.NewFuncDecl(pool, token.Position{}, "f", nil, nil, nil, intType, []lumair.Stmt{retB}, true)

	e.predeclareFunc(first)
	e.predeclareFunc(second)
	assert.True(t, sink.HasErrors())
	assert.Len(t, e.funcBodies, 1)
}

func TestPredeclareImpl_RegistersMethodOnEveryTargetStruct(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()

	dog := lumair.NewStructDecl(pool, token.Position{}, "Dog", nil, nil, true)
	cat := lumair.NewStructDecl(pool, token.Position{}, "Cat", nil, nil, true)
	e.predeclareStruct(dog)
	e.predeclareStruct(cat)
	require.False(t, sink.HasErrors())

	intType := lumair.NewBasicType(pool, token.Position{}, "int")
	speak := lumair.NewFuncDecl(pool, token.Position{}, "speak", nil, nil, nil, intType,
		[]lumair.Stmt{lumair.NewReturn(pool, token.Position{}, lumair.NewIntLit(pool, token.Position{}, "0"))}, true)
	im := lumair.NewImpl(pool, token.Position{}, []*lumair.FuncDecl{speak}, []string{"Dog", "Cat"})

	e.predeclareImpl(im)
	require.False(t, sink.HasErrors())

	assert.NotNil(t, e.Mod.Symbols.Lookup("Dog.speak"))
	assert.NotNil(t, e.Mod.Symbols.Lookup("Cat.speak"))
	assert.Len(t, e.funcBodies, 2)
}

func TestPredeclareImpl_UnknownTargetIsDiagnosed(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()

	intType := lumair.NewBasicType(pool, token.Position{}, "int")
	speak := lumair.NewFuncDecl(pool, token.Position{}, "speak", nil, nil, nil, intType, []lumair.Stmt{}, true)
	im := lumair.NewImpl(pool, token.Position{}, []*lumair.FuncDecl{speak}, []string{"Ghost"})

	e.predeclareImpl(im)
	assert.True(t, sink.HasErrors())
}
