package emit

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/types"
)

// resolveMember is the enhanced member-access resolver (spec.md
// §4.4), the hardest disambiguation in the emitter. The parser never
// decided field vs. method vs. module/enum for either `.` or `::` —
// it only recorded which operator was written. Every one of those
// cases is untangled here.
//
// forCall is true only when the caller (emitCall) is about to invoke
// the resolved value; for a runtime `.` method it makes the resolver
// return the method's function value instead of loading a field.
// emitCall recovers the receiver pointer itself through structReceiver
// and prepends it as call argument 0 (the type-checker that would
// normally do that is an out-of-scope external collaborator here).
func (e *Emitter) resolveMember(n *lumair.Member, forCall bool) ir.Value {
	// Rule 1: a complex (non-identifier) object is always struct access.
	if _, isIdent := n.Object.(*lumair.Ident); !isIdent {
		if _, isMember := n.Object.(*lumair.Member); !isMember {
			return e.emitStructFieldAccess(n, forCall)
		}
	}

	if n.IsCompileTime {
		return e.resolveCompileTimeMember(n)
	}
	return e.resolveRuntimeMember(n, forCall)
}

// resolveCompileTimeMember handles `a::b`, including chained
// `mod::Type::Member` paths (n.Object itself a Member).
func (e *Emitter) resolveCompileTimeMember(n *lumair.Member) ir.Value {
	if inner, ok := n.Object.(*lumair.Member); ok && inner.IsCompileTime {
		// mod::Type::Member — descend: look up "Type.Member" in the
		// named module first, then the current module, then every
		// other module.
		modName, ok := inner.Object.(*lumair.Ident)
		if !ok {
			e.Sink.Errorf(diag.UnknownModule, n.Pos(), e.File, "", "malformed module-qualified path")
			return zeroValue(lltypes.I64)
		}
		qualified := inner.Name + "." + n.Name
		if mod := e.Modules.Lookup(modName.Name); mod != nil {
			if sym := mod.Symbols.Lookup(qualified); sym != nil {
				return e.loadQualified(sym)
			}
		}
		if sym := e.Mod.Symbols.Lookup(qualified); sym != nil {
			return e.loadQualified(sym)
		}
		for _, mod := range e.Modules.All() {
			if sym := mod.Symbols.Lookup(qualified); sym != nil {
				return e.loadQualified(sym)
			}
		}
		e.Sink.Errorf(diag.MissingField, n.Pos(), e.File, "", "unresolved path %s::%s::%s", modName.Name, inner.Name, n.Name)
		return zeroValue(lltypes.I64)
	}

	ident, ok := n.Object.(*lumair.Ident)
	if !ok {
		e.Sink.Errorf(diag.UnknownModule, n.Pos(), e.File, "", "malformed compile-time member access")
		return zeroValue(lltypes.I64)
	}
	qualified := ident.Name + "." + n.Name

	if sym := e.Mod.Symbols.Lookup(qualified); sym != nil {
		return e.loadQualified(sym)
	}

	// Not found locally — scan other modules for a symbol literally
	// named n.Name (not qualified) and import it as an external decl
	// under the qualified alias.
	for _, mod := range e.Modules.All() {
		if mod == e.Mod {
			continue
		}
		if sym := mod.Symbols.Lookup(n.Name); sym != nil && sym.IsFunc {
			return e.importExternal(qualified, sym)
		}
	}

	e.Sink.Errorf(diag.UnknownModule, n.Pos(), e.File, e.suggestName(ident.Name),
		"unresolved symbol %q", qualified)
	return zeroValue(lltypes.I64)
}

func (e *Emitter) loadQualified(sym *types.Symbol) ir.Value {
	if sym.IsFunc || sym.Value == nil {
		return sym.Value
	}
	return e.fn.block.NewLoad(elemTypeOf(sym.Value), sym.Value)
}

// importExternal creates an external declaration in the current
// module's backend for a public symbol found in another module,
// per the Symbol import contract (spec.md §4.2): same signature,
// external linkage, bound under the qualified alias name.
func (e *Emitter) importExternal(qualified string, src *types.Symbol) ir.Value {
	if existing := e.Mod.Symbols.Lookup(qualified); existing != nil {
		return existing.Value // idempotent duplicate import
	}
	srcFn := src.Value.(*ir.Func)
	decl := e.mod().NewFunc(srcFn.Name(), srcFn.Sig.RetType, srcFn.Params...)
	decl.Linkage = ir.LinkageExternal
	e.Mod.Symbols.Insert(&types.Symbol{Name: qualified, Value: decl, Type: decl.Sig, IsFunc: true})
	return decl
}

// resolveRuntimeMember handles `a.b`: struct field/method access when
// a is a local struct-typed (or pointer-to-struct) symbol; a
// "use `a::b` instead" diagnostic when a names a module; otherwise
// "undefined identifier".
func (e *Emitter) resolveRuntimeMember(n *lumair.Member, forCall bool) ir.Value {
	ident := n.Object.(*lumair.Ident)
	if e.Modules.Lookup(ident.Name) != nil {
		e.Sink.Errorf(diag.InvalidAssignment, n.Pos(), e.File, "use \"::\" for module-qualified access",
			"did you mean %s::%s?", ident.Name, n.Name)
		return zeroValue(lltypes.I64)
	}
	sym := e.lookupSymbol(ident.Name)
	if sym == nil {
		e.Sink.Errorf(diag.UndefinedSymbol, n.Pos(), e.File, e.suggestName(ident.Name),
			"undefined identifier %q", ident.Name)
		return zeroValue(lltypes.I64)
	}
	if e.structInfoOf(sym) != nil {
		return e.emitStructFieldAccess(n, forCall)
	}
	e.Sink.Errorf(diag.UndefinedSymbol, n.Pos(), e.File, "", "%q is not a struct", ident.Name)
	return zeroValue(lltypes.I64)
}

// structInfoOf finds the StructInfo backing sym's principal type
// (directly or through one level of pointer indirection).
func (e *Emitter) structInfoOf(sym *types.Symbol) *types.StructInfo {
	t := elemTypeOf(sym.Value)
	if pt, ok := t.(*lltypes.PointerType); ok {
		t = pt.ElemType
	}
	st, ok := t.(*lltypes.StructType)
	if !ok {
		return nil
	}
	for _, info := range e.Mod.Structs.All() {
		if info.Backend == st {
			return info
		}
	}
	return nil
}

// emitStructFieldAccess loads a struct field, or — when forCall is
// true and the name resolves to a method instead of a field — returns
// the method's function value (the receiver pointer is recovered by
// emitCall through structReceiver, not here).
func (e *Emitter) emitStructFieldAccess(n *lumair.Member, forCall bool) ir.Value {
	objPtr, info := e.structReceiver(n.Object)
	if info == nil {
		e.Sink.Errorf(diag.TypeError, n.Pos(), e.File, "", "member access on a non-struct value")
		return zeroValue(lltypes.I64)
	}
	if forCall {
		if sym := e.Mod.Symbols.Lookup(info.Name + "." + n.Name); sym != nil && sym.IsFunc {
			return sym.Value
		}
	}
	idx := info.FieldIndex(n.Name)
	if idx < 0 {
		e.Sink.Errorf(diag.MissingField, n.Pos(), e.File, "", "struct %q has no field %q", info.Name, n.Name)
		return zeroValue(lltypes.I64)
	}
	field := info.Fields[idx]
	gep := e.fn.block.NewGetElementPtr(info.Backend, objPtr,
		zeroValue(lltypes.I64), zeroValue32(idx))
	return e.fn.block.NewLoad(field.Type, gep)
}

// emitMemberStore stores val into a struct field reached through
// `target.field = val`.
func (e *Emitter) emitMemberStore(n *lumair.Member, val ir.Value) ir.Value {
	objPtr, info := e.structReceiver(n.Object)
	if info == nil {
		e.Sink.Errorf(diag.TypeError, n.Pos(), e.File, "", "member assignment on a non-struct value")
		return val
	}
	idx := info.FieldIndex(n.Name)
	if idx < 0 {
		e.Sink.Errorf(diag.MissingField, n.Pos(), e.File, "", "struct %q has no field %q", info.Name, n.Name)
		return val
	}
	field := info.Fields[idx]
	val = e.coerce(val, field.Type)
	gep := e.fn.block.NewGetElementPtr(info.Backend, objPtr, zeroValue(lltypes.I64), zeroValue32(idx))
	e.fn.block.NewStore(val, gep)
	return val
}

// structReceiver evaluates expr to a pointer-to-struct value and
// returns it with the matching StructInfo. When expr names a symbol
// whose storage holds a pointer to a struct, that pointer is loaded;
// for a by-value struct local or global the alloca/global itself is
// returned.
func (e *Emitter) structReceiver(expr lumair.Expr) (ir.Value, *types.StructInfo) {
	if ident, ok := expr.(*lumair.Ident); ok {
		sym := e.lookupSymbol(ident.Name)
		if sym == nil {
			return nil, nil
		}
		info := e.structInfoOf(sym)
		if info == nil {
			return nil, nil
		}
		// sym.Value is the alloca/global *holding* the struct (or a
		// pointer to one); GEP needs a pointer to the struct itself.
		if _, isPtrField := elemTypeOf(sym.Value).(*lltypes.PointerType); isPtrField {
			return e.fn.block.NewLoad(elemTypeOf(sym.Value), sym.Value), info
		}
		return sym.Value, info
	}
	v := e.emitExpr(expr)
	if pt, ok := v.Type().(*lltypes.PointerType); ok {
		if st, ok := pt.ElemType.(*lltypes.StructType); ok {
			for _, info := range e.Mod.Structs.All() {
				if info.Backend == st {
					return v, info
				}
			}
		}
	}
	return nil, nil
}

func zeroValue32(n int) ir.Value { return constant.NewInt(lltypes.I32, int64(n)) }
