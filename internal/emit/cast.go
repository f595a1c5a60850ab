package emit

import (
	"github.com/llir/llvm/ir"

	lumair "github.com/luma-lang/lumac/internal/ir"
)

// emitCast lowers `value as T` to the coercion that would run if T
// were the natural target type of an assignment — coerce already
// handles every int/float/pointer conversion pair the cast expression
// needs, so the cast itself is a thin wrapper picking the target
// backend type and deferring to it.
func (e *Emitter) emitCast(n *lumair.Cast) ir.Value {
	target, _ := e.resolveType(n.Target)
	v := e.emitExpr(n.Value)
	return e.coerce(v, target)
}
