package emit

import (
	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	lumair "github.com/luma-lang/lumac/internal/ir"
)

// emitAlloc lowers `alloc(size)` to a lazily-declared malloc call,
// returning the raw i8* the host allocator hands back; whatever
// pointer-element-type cast is needed happens at the assignment site
// that receives this value (internal/emit/coerce.go), not here.
func (e *Emitter) emitAlloc(n *lumair.Alloc) ir.Value {
	fn := e.lazyMalloc()
	size := e.coerce(e.emitExpr(n.Size), lltypes.I64)
	return e.fn.block.NewCall(fn, size)
}

// emitFree lowers `free(ptr)` to a lazily-declared free call, casting
// the pointer to i8* first since the host allocator is untyped.
func (e *Emitter) emitFree(n *lumair.Free) ir.Value {
	fn := e.lazyFree()
	ptr := e.coerce(e.emitExpr(n.Ptr), i8ptr)
	return e.fn.block.NewCall(fn, ptr)
}
