package emit

import (
	"github.com/llir/llvm/ir"

	lumair "github.com/luma-lang/lumac/internal/ir"
)

// emitSystem lowers `system(command)` to a lazily-declared call
// against the host runtime's `system(3)` entry point, returning its
// i32 exit-status result directly.
func (e *Emitter) emitSystem(n *lumair.System) ir.Value {
	fn := e.lazySystem()
	cmd := e.coerce(e.emitExpr(n.Command), i8ptr)
	return e.fn.block.NewCall(fn, cmd)
}
