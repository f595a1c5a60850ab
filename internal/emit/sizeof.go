package emit

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	lumair "github.com/luma-lang/lumac/internal/ir"
)

// emitSizeof lowers `sizeof(T)` or `sizeof(expr)` to a compile-time
// i64 constant: the target type (or the emitted expression's own
// type) is summed via primitiveSize below, never queried from the
// backend's own data layout.
func (e *Emitter) emitSizeof(n *lumair.Sizeof) ir.Value {
	if n.TargetType != nil {
		t, _ := e.resolveType(n.TargetType)
		return constant.NewInt(lltypes.I64, primitiveSize(t))
	}
	v := e.emitExpr(n.TargetExpr)
	return constant.NewInt(lltypes.I64, primitiveSize(v.Type()))
}

// primitiveSize computes sizeof(t) by summing primitive widths rather
// than querying the backend's own data-layout — this is a deliberate
// divergence from an ABI-correct `sizeof` (no padding, no alignment).
// spec.md's open question on this point is resolved in DESIGN.md:
// kept exactly as specified, since the suite's struct-recursion
// property (test property 6) is defined against this arithmetic, not
// against the target platform's real struct layout. A production
// compiler would ask the backend's DataLayout for this instead.
func primitiveSize(t lltypes.Type) int64 {
	switch tt := t.(type) {
	case *lltypes.IntType:
		return int64((tt.BitSize + 7) / 8)
	case *lltypes.FloatType:
		if tt == lltypes.Float {
			return 4
		}
		return 8
	case *lltypes.PointerType:
		return 8
	case *lltypes.ArrayType:
		return int64(tt.Len) * primitiveSize(tt.ElemType)
	case *lltypes.StructType:
		var total int64
		for _, f := range tt.Fields {
			total += primitiveSize(f)
		}
		return total
	default:
		return 8
	}
}
