package emit

import (
	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
)

// Host runtime entry points the emitter declares on demand, never
// up front, so a module that never prints or allocates carries no
// unused external declarations.

func (e *Emitter) lazyPrintf() *ir.Func {
	if e.runtime.printf == nil {
		fn := e.mod().NewFunc("printf", lltypes.I32, ir.NewParam("fmt", i8ptr))
		fn.Sig.Variadic = true
		fn.Linkage = ir.LinkageExternal
		e.runtime.printf = fn
	}
	return e.runtime.printf
}

func (e *Emitter) lazyScanf() *ir.Func {
	if e.runtime.scanf == nil {
		fn := e.mod().NewFunc("scanf", lltypes.I32, ir.NewParam("fmt", i8ptr))
		fn.Sig.Variadic = true
		fn.Linkage = ir.LinkageExternal
		e.runtime.scanf = fn
	}
	return e.runtime.scanf
}

func (e *Emitter) lazyMalloc() *ir.Func {
	if e.runtime.malloc == nil {
		fn := e.mod().NewFunc("malloc", i8ptr, ir.NewParam("size", lltypes.I64))
		fn.Linkage = ir.LinkageExternal
		e.runtime.malloc = fn
	}
	return e.runtime.malloc
}

func (e *Emitter) lazyFree() *ir.Func {
	if e.runtime.free == nil {
		fn := e.mod().NewFunc("free", lltypes.Void, ir.NewParam("ptr", i8ptr))
		fn.Linkage = ir.LinkageExternal
		e.runtime.free = fn
	}
	return e.runtime.free
}

func (e *Emitter) lazyFloor() *ir.Func {
	if e.runtime.floor == nil {
		fn := e.mod().NewFunc("floor", lltypes.Double, ir.NewParam("x", lltypes.Double))
		fn.Linkage = ir.LinkageExternal
		e.runtime.floor = fn
	}
	return e.runtime.floor
}

func (e *Emitter) lazySystem() *ir.Func {
	if e.runtime.system == nil {
		fn := e.mod().NewFunc("system", lltypes.I32, ir.NewParam("command", i8ptr))
		fn.Linkage = ir.LinkageExternal
		e.runtime.system = fn
	}
	return e.runtime.system
}
