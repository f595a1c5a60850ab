package emit

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
)

// emitIndex handles `object[index]`. Arrays emit a two-index GEP
// [0, i] and load the element; a loaded array element is returned as
// the array value itself so chained indexing keeps working. Pointers
// resolve their element type from the symbol's recorded ElemType —
// the cast-expression and prior-member fallbacks spec.md lists are
// folded into elementTypeOf below; there is no name-pattern fallback
// (DESIGN.md open-question decision 2): an unresolved element type is
// always a hard diagnostic.
func (e *Emitter) emitIndex(n *lumair.Index) ir.Value {
	idx := e.coerce(e.emitExpr(n.Index), lltypes.I64)

	if ident, ok := n.Object.(*lumair.Ident); ok {
		sym := e.lookupSymbol(ident.Name)
		if sym != nil {
			if _, isArray := elemTypeOf(sym.Value).(*lltypes.ArrayType); isArray {
				gep := e.fn.block.NewGetElementPtr(elemTypeOf(sym.Value), sym.Value,
					constant.NewInt(lltypes.I64, 0), idx)
				at := elemTypeOf(sym.Value).(*lltypes.ArrayType)
				return e.fn.block.NewLoad(at.ElemType, gep)
			}
		}
	}

	obj := e.emitExpr(n.Object)
	if at, ok := obj.Type().(*lltypes.ArrayType); ok {
		// An array value (e.g. the loaded element of an outer array) is
		// spilled to a temporary so it can be indexed in place.
		tmp := e.fn.block.NewAlloca(at)
		e.fn.block.NewStore(obj, tmp)
		gep := e.fn.block.NewGetElementPtr(at, tmp, constant.NewInt(lltypes.I64, 0), idx)
		return e.fn.block.NewLoad(at.ElemType, gep)
	}
	elem := e.elementTypeOf(n.Object, obj)
	if elem == nil {
		e.Sink.Errorf(diag.TypeError, n.Pos(), e.File, "",
			"cannot determine the element type of this pointer index")
		return constant.NewInt(lltypes.I64, 0)
	}
	gep := e.fn.block.NewGetElementPtr(elem, obj, idx)
	return e.fn.block.NewLoad(elem, gep)
}

func (e *Emitter) emitIndexStore(n *lumair.Index, val ir.Value) ir.Value {
	idx := e.coerce(e.emitExpr(n.Index), lltypes.I64)

	if ident, ok := n.Object.(*lumair.Ident); ok {
		sym := e.lookupSymbol(ident.Name)
		if sym != nil {
			if at, isArray := elemTypeOf(sym.Value).(*lltypes.ArrayType); isArray {
				gep := e.fn.block.NewGetElementPtr(at, sym.Value, constant.NewInt(lltypes.I64, 0), idx)
				val = e.coerce(val, at.ElemType)
				e.fn.block.NewStore(val, gep)
				return val
			}
		}
	}

	obj := e.emitExpr(n.Object)
	elem := e.elementTypeOf(n.Object, obj)
	if elem == nil {
		e.Sink.Errorf(diag.TypeError, n.Pos(), e.File, "",
			"cannot determine the element type of this pointer index")
		return val
	}
	if _, scalar := elem.(*lltypes.StructType); scalar {
		if _, srcPtr := val.Type().(*lltypes.PointerType); !srcPtr {
			e.Sink.Errorf(diag.IncompatibleTypes, n.Pos(), e.File, "",
				"cannot store a scalar value into a struct-pointer element")
			return val
		}
	}
	gep := e.fn.block.NewGetElementPtr(elem, obj, idx)
	val = e.coerce(val, elem)
	e.fn.block.NewStore(val, gep)
	return val
}

// elementTypeOf resolves the pointee type of obj: first via the
// symbol's recorded ElemType when objExpr is a plain identifier, then
// from obj's own pointer type, otherwise nil.
func (e *Emitter) elementTypeOf(objExpr lumair.Expr, obj ir.Value) lltypes.Type {
	if ident, ok := objExpr.(*lumair.Ident); ok {
		if sym := e.lookupSymbol(ident.Name); sym != nil && sym.ElemType != nil {
			return sym.ElemType
		}
	}
	if pt, ok := obj.Type().(*lltypes.PointerType); ok {
		return pt.ElemType
	}
	return nil
}
