package emit

import (
	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
)

// emitAssign handles every lvalue target shape: identifier (store to
// its alloca/global), deref (store through pointer), index
// (array-element or pointer-element store, coercing the value to the
// resolved element type), struct-member (store to a GEP'd field).
func (e *Emitter) emitAssign(n *lumair.Assign) ir.Value {
	val := e.emitExpr(n.Value)

	switch target := n.Target.(type) {
	case *lumair.Ident:
		sym := e.lookupSymbol(target.Name)
		if sym == nil {
			e.Sink.Errorf(diag.UndefinedSymbol, target.Pos(), e.File, "",
				"undefined identifier %q", target.Name)
			return val
		}
		val = e.coerce(val, elemTypeOf(sym.Value))
		e.fn.block.NewStore(val, sym.Value)
		return val

	case *lumair.Unary:
		if target.Op != lumair.OpDeref {
			break
		}
		ptr := e.emitExpr(target.Operand)
		pt, ok := ptr.Type().(*lltypes.PointerType)
		if !ok {
			e.Sink.Errorf(diag.InvalidAssignment, n.Pos(), e.File, "", "cannot dereference a non-pointer")
			return val
		}
		val = e.coerce(val, pt.ElemType)
		e.fn.block.NewStore(val, ptr)
		return val

	case *lumair.Index:
		return e.emitIndexStore(target, val)

	case *lumair.Member:
		return e.emitMemberStore(target, val)
	}

	e.Sink.Errorf(diag.InvalidAssignment, n.Pos(), e.File, "", "invalid assignment target")
	return val
}

func elemTypeOf(v ir.Value) lltypes.Type {
	if a, ok := v.(*ir.InstAlloca); ok {
		return a.ElemType
	}
	if g, ok := v.(*ir.Global); ok {
		return g.ContentType
	}
	return v.Type()
}
