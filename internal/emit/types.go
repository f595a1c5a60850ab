package emit

import (
	"fmt"

	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
)

// basicTypes maps the primitive type-name keywords to their backend
// representation. Widths match spec.md's literal-default table.
var basicTypes = map[string]lltypes.Type{
	"void":   lltypes.Void,
	"bool":   lltypes.I1,
	"char":   lltypes.I8,
	"i8":     lltypes.I8,
	"i16":    lltypes.I16,
	"i32":    lltypes.I32,
	"int":    lltypes.I64,
	"i64":    lltypes.I64,
	"float":  lltypes.Float,
	"double": lltypes.Double,
}

// resolveType lowers an ir.Type node to its backend type. elem is set
// to the element type only when t is a pointer type node (nil for
// every other node), so callers can populate a Symbol's ElemType at
// the creation site rather than reconstruct it later.
func (e *Emitter) resolveType(t lumair.Type) (typ lltypes.Type, elem lltypes.Type) {
	switch n := t.(type) {
	case *lumair.BasicType:
		if bt, ok := basicTypes[n.Name]; ok {
			return bt, nil
		}
		if info := e.Mod.Structs.Lookup(n.Name); info != nil {
			return info.Backend, nil
		}
		e.Sink.Errorf(diag.UnknownModule, n.Pos(), e.File, "",
			"unknown type %q", n.Name)
		return lltypes.I64, nil
	case *lumair.PointerType:
		et, _ := e.resolveType(n.Elem)
		return lltypes.NewPointer(et), et
	case *lumair.ArrayType:
		et, _ := e.resolveType(n.Elem)
		size := e.constIntValue(n.Size)
		return lltypes.NewArray(uint64(size), et), nil
	case *lumair.FuncType:
		params := make([]lltypes.Type, len(n.Params))
		for i, p := range n.Params {
			params[i], _ = e.resolveType(p)
		}
		ret, _ := e.resolveType(n.Return)
		return lltypes.NewFunc(ret, params...), nil
	case *lumair.StructRefType:
		if info := e.Mod.Structs.Lookup(n.Name); info != nil {
			return info.Backend, nil
		}
		e.Sink.Errorf(diag.UnknownModule, n.Pos(), e.File, "",
			"unknown struct %q", n.Name)
		return lltypes.I64, nil
	case *lumair.ResolutionType:
		// ns::Type — resolve the struct in the named module.
		if len(n.Path) == 2 {
			if mod := e.Modules.Lookup(n.Path[0]); mod != nil {
				if info := mod.Structs.Lookup(n.Path[1]); info != nil {
					return info.Backend, nil
				}
			}
		}
		e.Sink.Errorf(diag.UnknownModule, n.Pos(), e.File, "",
			"unresolved type path %v", n.Path)
		return lltypes.I64, nil
	default:
		e.Sink.Errorf(diag.TypeError, t.Pos(), e.File, "", "unhandled type node %T", t)
		return lltypes.I64, nil
	}
}

// constIntValue evaluates a compile-time-constant integer expression
// for use as an array size. Only literal and simple binary-arithmetic
// forms are accepted; anything else is a diagnostic and 0 is assumed.
func (e *Emitter) constIntValue(expr lumair.Expr) int64 {
	switch n := expr.(type) {
	case *lumair.IntLit:
		var v int64
		fmt.Sscanf(n.Value, "%d", &v)
		return v
	case *lumair.Binary:
		l, r := e.constIntValue(n.Left), e.constIntValue(n.Right)
		switch n.Op {
		case lumair.OpAdd:
			return l + r
		case lumair.OpSub:
			return l - r
		case lumair.OpMul:
			return l * r
		case lumair.OpDiv:
			if r == 0 {
				return 0
			}
			return l / r
		}
	}
	e.Sink.Errorf(diag.TypeError, expr.Pos(), e.File, "",
		"array size must be a compile-time constant expression")
	return 0
}

// isFloatType reports whether t is a floating-point backend type.
func isFloatType(t lltypes.Type) bool {
	switch t {
	case lltypes.Float, lltypes.Double:
		return true
	}
	return false
}
