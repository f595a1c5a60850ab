package emit

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	lumair "github.com/luma-lang/lumac/internal/ir"
)

// rangeType is the two-field {start, end} struct every `start..end`
// expression produces (spec.md's Range value shape).
var rangeType = lltypes.NewStruct(lltypes.I64, lltypes.I64)

// emitRange builds a Range value through an alloca/store/load triple
// rather than an insertvalue chain, matching how every other
// aggregate literal in this emitter (emitStructLit, emitArrayLit) is
// built.
func (e *Emitter) emitRange(n *lumair.Range) ir.Value {
	start := e.coerce(e.emitExpr(n.Start), lltypes.I64)
	end := e.coerce(e.emitExpr(n.End), lltypes.I64)

	alloca := e.fn.block.NewAlloca(rangeType)
	zero := constant.NewInt(lltypes.I64, 0)
	e.fn.block.NewStore(start, e.fn.block.NewGetElementPtr(rangeType, alloca, zero, zeroValue32(0)))
	e.fn.block.NewStore(end, e.fn.block.NewGetElementPtr(rangeType, alloca, zero, zeroValue32(1)))
	return e.fn.block.NewLoad(rangeType, alloca)
}
