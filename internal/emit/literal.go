package emit

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
)

// emitStringLit emits value as a module-private constant global with
// unnamed_addr, returning a pointer to its first byte.
func (e *Emitter) emitStringLit(value string) ir.Value {
	e.strCounter++
	data := constant.NewCharArrayFromString(value + "\x00")
	g := e.mod().NewGlobalDef(fmt.Sprintf(".str.%d", e.strCounter), data)
	g.Linkage = ir.LinkagePrivate
	g.Immutable = true
	g.UnnamedAddr = ir.UnnamedAddrUnnamedAddr
	zero := constant.NewInt(lltypes.I64, 0)
	return constant.NewGetElementPtr(data.Typ, g, zero, zero)
}

func (e *Emitter) emitArrayLit(n *lumair.ArrayLit) ir.Value {
	if len(n.Elements) == 0 {
		e.Sink.Errorf(diag.TypeError, n.Pos(), e.File, "", "empty array literal has no inferrable element type")
		return constant.NewInt(lltypes.I64, 0)
	}
	elems := make([]ir.Value, len(n.Elements))
	for i, el := range n.Elements {
		elems[i] = e.emitExpr(el)
	}
	elemType := elems[0].Type()
	arrType := lltypes.NewArray(uint64(len(elems)), elemType)
	alloca := e.fn.block.NewAlloca(arrType)
	for i, v := range elems {
		gep := e.fn.block.NewGetElementPtr(arrType, alloca,
			constant.NewInt(lltypes.I64, 0), constant.NewInt(lltypes.I64, int64(i)))
		e.fn.block.NewStore(e.coerce(v, elemType), gep)
	}
	return e.fn.block.NewLoad(arrType, alloca)
}

func (e *Emitter) emitStructLit(n *lumair.StructLit) ir.Value {
	info := e.Mod.Structs.Lookup(n.StructName)
	if info == nil {
		e.Sink.Errorf(diag.UnknownModule, n.Pos(), e.File, "", "unknown struct %q", n.StructName)
		return constant.NewInt(lltypes.I64, 0)
	}
	alloca := e.fn.block.NewAlloca(info.Backend)
	for _, fi := range n.Fields {
		idx := info.FieldIndex(fi.Name)
		if idx < 0 {
			e.Sink.Errorf(diag.MissingField, n.Pos(), e.File, "", "struct %q has no field %q", info.Name, fi.Name)
			continue
		}
		val := e.coerce(e.emitExpr(fi.Value), info.Fields[idx].Type)
		gep := e.fn.block.NewGetElementPtr(info.Backend, alloca,
			constant.NewInt(lltypes.I64, 0), zeroValue32(idx))
		e.fn.block.NewStore(val, gep)
	}
	return e.fn.block.NewLoad(info.Backend, alloca)
}
