package emit

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/types"
)

// emitFuncBody materializes one function's entry block, parameter
// allocas, and statement body, then closes every fall-through exit
// with the deferred-statement epilogue (spec.md §3.5, §4.3 "Function
// epilogue"). Each `return` site inlines its own copy of the LIFO
// defer-unwind rather than branching to one shared cleanup block —
// functionally identical ordering, simpler control flow to build by
// hand.
func (e *Emitter) emitFuncBody(pb pendingBody) {
	entry := pb.Fn.NewBlock(pb.Fn.Name() + ".entry")
	e.fn = &funcScope{llfn: pb.Fn, block: entry}

	for i, p := range pb.Fn.Params {
		alloca := entry.NewAlloca(p.Typ)
		alloca.SetName(pb.Params[i] + ".addr")
		entry.NewStore(p, alloca)
		sym := &types.Symbol{Name: pb.Params[i], Value: alloca, Type: p.Typ}
		if ptr, ok := p.Typ.(*lltypes.PointerType); ok {
			sym.ElemType = ptr.ElemType
		}
		e.fn.locals.Insert(sym)
	}

	for _, stmt := range pb.Body {
		e.emitStmt(stmt)
	}

	if e.fn.block.Term == nil {
		e.emitReturnEpilogue(nil)
	}
	e.fn = nil
}

// emitReturnEpilogue unwinds the current defer stack in LIFO order,
// then terminates the current block with `ret`. retVal is nil for a
// bare/implicit return, in which case a void function emits `ret
// void` and a non-void function emits a zero value of its return
// type (the parser/type-checker is assumed to reject a genuinely
// missing value on a non-void path; this is the documented "fall
// back to zero" behavior for the aborted-diagnostic case).
func (e *Emitter) emitReturnEpilogue(retVal ir.Value) {
	for i := len(e.fn.defers) - 1; i >= 0; i-- {
		e.emitStmt(e.fn.defers[i])
	}
	ret := e.fn.llfn.Sig.RetType
	if ret == lltypes.Void {
		e.fn.block.NewRet(nil)
		return
	}
	if retVal == nil {
		retVal = zeroValue(ret)
	}
	e.fn.block.NewRet(retVal)
}

func zeroValue(t lltypes.Type) ir.Value {
	switch tt := t.(type) {
	case *lltypes.IntType:
		return constant.NewInt(tt, 0)
	case *lltypes.FloatType:
		return constant.NewFloat(tt, 0)
	case *lltypes.PointerType:
		return constant.NewNull(tt)
	default:
		return constant.NewZeroInitializer(t)
	}
}

// lookupSymbol searches the current block-local scope, then the
// module's own symbol table. It never searches other modules — that
// is the member resolver's job (internal/emit/member.go) when `a::b`
// or an import has already bound the name locally.
func (e *Emitter) lookupSymbol(name string) *types.Symbol {
	if e.fn != nil {
		if s := e.fn.locals.Lookup(name); s != nil {
			return s
		}
	}
	return e.Mod.Symbols.Lookup(name)
}
