package emit

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/types"
)

// emitEnumDecl materializes each member as a module-scoped i64 global
// constant initialized to its ordinal, with linkage matching the
// enum's visibility, and records it in the symbol table as
// "EnumName.Member" for qualified lookup (the member-access resolver
// looks that name up for `EnumName::Member`); the bare member name is
// not bound.
func (e *Emitter) emitEnumDecl(en *lumair.EnumDecl) {
	linkage := ir.LinkageInternal
	if en.Public {
		linkage = ir.LinkageExternal
	}
	for i, member := range en.Members {
		g := e.mod().NewGlobalDef(en.Name+"."+member, constant.NewInt(lltypes.I64, int64(i)))
		g.Linkage = linkage
		g.Immutable = true
		sym := &types.Symbol{Name: en.Name + "." + member, Value: g, Type: lltypes.I64}
		e.Mod.Symbols.Insert(sym)
	}
}
