package emit

import (
	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
)

// emitInput lowers `input(T [, prompt])` to: an optional prompt
// printed through the lazily-declared printf, then a scanf call
// reading into a freshly allocated local of type T through a format
// string chosen by T, followed by a load of that local (spec.md §4.3
// "input").
func (e *Emitter) emitInput(n *lumair.Input) ir.Value {
	if n.Prompt != nil {
		p := e.emitExpr(n.Prompt)
		printf := e.lazyPrintf()
		e.fn.block.NewCall(printf, e.emitStringLit("%s"), p)
	}

	bt, _ := e.resolveType(n.Target)
	spec, ok := scanSpec(bt)
	if !ok {
		e.Sink.Errorf(diag.TypeError, n.Pos(), e.File, "", "input does not support this target type")
		return zeroValue(bt)
	}

	alloca := e.fn.block.NewAlloca(bt)
	scanf := e.lazyScanf()
	e.fn.block.NewCall(scanf, e.emitStringLit(spec), alloca)
	return e.fn.block.NewLoad(bt, alloca)
}

// scanSpec picks scanf's conversion specifier for a target type.
// Unlike printf, scanf's float/double specifiers are not
// interchangeable with each other: %f reads into a float*, %lf into
// a double*, so the choice must match the target exactly.
func scanSpec(t lltypes.Type) (string, bool) {
	switch tt := t.(type) {
	case *lltypes.IntType:
		switch {
		case tt == lltypes.I1:
			return "%d", true
		case tt == lltypes.I8:
			return "%c", true
		case tt.BitSize == 64:
			return "%lld", true
		default:
			return "%d", true
		}
	case *lltypes.FloatType:
		if tt == lltypes.Double {
			return "%lf", true
		}
		return "%f", true
	}
	return "", false
}
