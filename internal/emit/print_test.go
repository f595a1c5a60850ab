package emit

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luma-lang/lumac/internal/arena"
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/token"
)

// withFuncScope gives e a throwaway function body to emit instructions
// into, mirroring what emitFuncBody sets up for a real function.
func withFuncScope(e *Emitter) {
	fn := e.mod().NewFunc("scratch", lltypes.Void)
	block := fn.NewBlock("")
	e.fn = &funcScope{llfn: fn, block: block}
}

func TestEmitPrint_EmptyPrintlnEmitsOnlyANewlineFormat(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()
	withFuncScope(e)

	s := lumair.NewPrint(pool, token.Position{}, nil, true)
	e.emitPrint(s)
	require.False(t, sink.HasErrors())

	last := e.fn.block.Insts[len(e.fn.block.Insts)-1]
	call, ok := last.(*ir.InstCall)
	require.True(t, ok)
	assert.Len(t, call.Args, 1) // format string only, no value arguments
	assert.NotNil(t, e.runtime.printf)
}

func TestEmitPrint_IntAndBoolArgumentsEachProduceOneValueArg(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()
	withFuncScope(e)

	exprs := []lumair.Expr{
		lumair.NewIntLit(pool, token.Position{}, "42"),
		lumair.NewBoolLit(pool, token.Position{}, true),
	}
	s := lumair.NewPrint(pool, token.Position{}, exprs, false)
	e.emitPrint(s)
	require.False(t, sink.HasErrors())

	last := e.fn.block.Insts[len(e.fn.block.Insts)-1]
	call, ok := last.(*ir.InstCall)
	require.True(t, ok)
	assert.Len(t, call.Args, 3) // format string + int value + bool select result
}

func TestEmitSizeof_TypeFoldsPrimitiveWidthsAtCompileTime(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()
	withFuncScope(e)

	fields := []*lumair.FieldDecl{
		lumair.NewFieldDecl(pool, token.Position{}, "a", lumair.NewBasicType(pool, token.Position{}, "int"), nil, true),
		lumair.NewFieldDecl(pool, token.Position{}, "b", lumair.NewBasicType(pool, token.Position{}, "i32"), nil, true),
	}
	sd := lumair.NewStructDecl(pool, token.Position{}, "Pair", fields, nil, true)
	e.predeclareStruct(sd)
	e.emitStructDecl(sd)
	require.False(t, sink.HasErrors())

	n := lumair.NewSizeofType(pool, token.Position{}, lumair.NewBasicType(pool, token.Position{}, "Pair"))
	v := e.emitSizeof(n)
	ci, ok := v.(*constant.Int)
	require.True(t, ok)
	assert.Equal(t, int64(12), ci.X.Int64()) // 8 (int) + 4 (i32)
}

func TestEmitAlloc_LazilyDeclaresMallocOnce(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()
	withFuncScope(e)

	n1 := lumair.NewAlloc(pool, token.Position{}, lumair.NewIntLit(pool, token.Position{}, "8"))
	n2 := lumair.NewAlloc(pool, token.Position{}, lumair.NewIntLit(pool, token.Position{}, "16"))
	e.emitAlloc(n1)
	first := e.runtime.malloc
	e.emitAlloc(n2)
	require.False(t, sink.HasErrors())
	assert.Same(t, first, e.runtime.malloc) // declared once, reused
}

func TestEmitFree_CoercesPointerArgumentToI8Ptr(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()
	withFuncScope(e)

	ptrType := lumair.NewPointerType(pool, token.Position{}, lumair.NewBasicType(pool, token.Position{}, "int"))
	decl := lumair.NewVarDecl(pool, token.Position{}, "p", ptrType, nil, true, true)
	e.emitVarDecl(decl)
	require.False(t, sink.HasErrors())

	n := lumair.NewFree(pool, token.Position{}, lumair.NewIdent(pool, token.Position{}, "p"))
	call, ok := e.emitFree(n).(*ir.InstCall)
	require.True(t, ok)
	require.False(t, sink.HasErrors())
	assert.NotNil(t, e.runtime.free)
	require.Len(t, call.Args, 1)
	assert.True(t, call.Args[0].Type().Equal(i8ptr))
}

func TestEmitSystem_ReturnsI32CallResult(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()
	withFuncScope(e)

	cmd := lumair.NewStringLit(pool, token.Position{}, "ls")
	n := lumair.NewSystem(pool, token.Position{}, cmd)
	v := e.emitSystem(n)
	require.False(t, sink.HasErrors())
	assert.Equal(t, lltypes.I32, v.Type())
	assert.NotNil(t, e.runtime.system)
}

func TestEmitInput_IntTargetDeclaresScanfAndLoadsAllocatedLocal(t *testing.T) {
	pool := &arena.Pool{}
	e, sink := newEmitter()
	withFuncScope(e)

	n := lumair.NewInput(pool, token.Position{}, lumair.NewBasicType(pool, token.Position{}, "int"), nil)
	v := e.emitInput(n)
	require.False(t, sink.HasErrors())
	assert.Equal(t, lltypes.I64, v.Type())
	assert.NotNil(t, e.runtime.scanf)
}
