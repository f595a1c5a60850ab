package emit

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
)

// emitPrint lowers `print`/`println` to a single lazily-declared libc
// printf call: one conversion specifier per argument, chosen by the
// backend type of that argument's already-emitted value (spec.md
// §4.3 "Print"), followed by a trailing newline when Newline is set.
func (e *Emitter) emitPrint(s *lumair.Print) {
	fn := e.lazyPrintf()

	var format string
	args := make([]ir.Value, 1, len(s.Exprs)*2+1)
	for _, expr := range s.Exprs {
		v := e.emitExpr(expr)
		spec, vals := e.printSpec(expr, v)
		format += spec
		args = append(args, vals...)
	}
	if s.Newline {
		format += "\n"
	}
	args[0] = e.emitStringLit(format)
	e.fn.block.NewCall(fn, args...)
}

// printSpec picks printf's conversion specifier(s) for one
// already-emitted value: integer width to %d/%lld, bool to %s via a
// select on "true"/"false", float to %.6f (promoted to double, since
// printf's variadic calling convention always receives floats as
// double), double to %.6lf, pointer (string literals included) to
// %s, and a Range struct to "%lld..%lld" over its extracted fields.
func (e *Emitter) printSpec(expr lumair.Expr, v ir.Value) (string, []ir.Value) {
	switch t := v.Type().(type) {
	case *lltypes.IntType:
		if t == lltypes.I1 {
			trueStr := e.emitStringLit("true")
			falseStr := e.emitStringLit("false")
			return "%s", []ir.Value{e.fn.block.NewSelect(v, trueStr, falseStr)}
		}
		if t.BitSize == 64 {
			return "%lld", []ir.Value{v}
		}
		return "%d", []ir.Value{v}
	case *lltypes.FloatType:
		if t == lltypes.Double {
			return "%.6lf", []ir.Value{v}
		}
		return "%.6f", []ir.Value{e.fn.block.NewFPExt(v, lltypes.Double)}
	case *lltypes.PointerType:
		return "%s", []ir.Value{v}
	case *lltypes.StructType:
		if t.Equal(rangeType) {
			start := e.fn.block.NewExtractValue(v, 0)
			end := e.fn.block.NewExtractValue(v, 1)
			return "%lld..%lld", []ir.Value{start, end}
		}
	}
	e.Sink.Errorf(diag.TypeError, expr.Pos(), e.File, "", "print does not support this expression's type")
	return "%d", []ir.Value{constant.NewInt(lltypes.I64, 0)}
}
