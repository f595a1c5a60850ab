package emit

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/types"
)

// emitGlobalVarDecl emits a file-scope `var`/`const` as a backend
// global. The initializer must be a compile-time constant: the
// emitter has no function body to run arbitrary expression code in at
// module-load time, and the language has no static-initializer pass.
func (e *Emitter) emitGlobalVarDecl(s *lumair.VarDecl) {
	var bt, et lltypes.Type
	if s.Type != nil {
		bt, et = e.resolveType(s.Type)
	}

	var init constant.Constant
	if s.Init != nil {
		v := e.emitExpr(s.Init)
		c, ok := v.(constant.Constant)
		if !ok {
			e.Sink.Errorf(diag.TypeError, s.Pos(), e.File, "",
				"global %q initializer must be a compile-time constant", s.Name)
			return
		}
		init = c
		if bt == nil {
			bt = c.Type()
		}
	}
	if bt == nil {
		e.Sink.Errorf(diag.TypeError, s.Pos(), e.File, "",
			"cannot infer type of global %q without an initializer", s.Name)
		return
	}
	if init == nil {
		init = constant.NewZeroInitializer(bt)
	}

	g := e.mod().NewGlobalDef(s.Name, init)
	if s.Public {
		g.Linkage = ir.LinkageExternal
	} else {
		g.Linkage = ir.LinkageInternal
	}
	g.Immutable = !s.Mutable

	sym := &types.Symbol{Name: s.Name, Value: g, Type: bt, ElemType: et}
	e.Mod.Symbols.Insert(sym)
}
