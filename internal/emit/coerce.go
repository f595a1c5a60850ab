package emit

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
)

// coerce converts v to target via the narrowest safe backend
// conversion: int widen/narrow via sign-extend/truncate, float
// widen/narrow via fpext/fptrunc, int<->float via signed conversion,
// pointer<->pointer via bitcast. A value already of the right type is
// returned unchanged.
func (e *Emitter) coerce(v ir.Value, target lltypes.Type) ir.Value {
	src := v.Type()
	if src.Equal(target) {
		return v
	}
	switch t := target.(type) {
	case *lltypes.IntType:
		switch s := src.(type) {
		case *lltypes.IntType:
			if t.BitSize > s.BitSize {
				return e.fn.block.NewSExt(v, t)
			}
			return e.fn.block.NewTrunc(v, t)
		case *lltypes.FloatType:
			_ = s
			return e.fn.block.NewFPToSI(v, t)
		case *lltypes.PointerType:
			return e.fn.block.NewPtrToInt(v, t)
		}
	case *lltypes.FloatType:
		switch src.(type) {
		case *lltypes.IntType:
			return e.fn.block.NewSIToFP(v, t)
		case *lltypes.FloatType:
			if t == lltypes.Double {
				return e.fn.block.NewFPExt(v, t)
			}
			return e.fn.block.NewFPTrunc(v, t)
		}
	case *lltypes.PointerType:
		switch src.(type) {
		case *lltypes.PointerType:
			return e.fn.block.NewBitCast(v, t)
		case *lltypes.IntType:
			return e.fn.block.NewIntToPtr(v, t)
		}
	}
	return e.fn.block.NewBitCast(v, target)
}

func (e *Emitter) coerceBool(v ir.Value) ir.Value {
	if v.Type() == lltypes.I1 {
		return v
	}
	if it, ok := v.Type().(*lltypes.IntType); ok {
		return e.fn.block.NewICmp(enum.IPredNE, v, constant.NewInt(it, 0))
	}
	return v
}

func (e *Emitter) toFloat(v ir.Value) ir.Value {
	if isFloatType(v.Type()) {
		return v
	}
	return e.fn.block.NewSIToFP(v, lltypes.Double)
}

func (e *Emitter) matchFloatWidth(l, r ir.Value) (ir.Value, ir.Value) {
	if l.Type() == lltypes.Double {
		return l, e.fn.block.NewFPExt(r, lltypes.Double)
	}
	return e.fn.block.NewFPExt(l, lltypes.Double), r
}
