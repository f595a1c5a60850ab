package emit

import (
	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/types"
)

// predeclareStruct creates the struct as opaque first and registers
// it immediately, so sibling declarations (including the struct's own
// self-referential pointer fields) can resolve its name before the
// body is known. The body is filled in by emitStructDecl once every
// field type has resolved.
func (e *Emitter) predeclareStruct(s *lumair.StructDecl) {
	if e.Mod.Structs.Lookup(s.Name) != nil {
		e.Sink.Errorf(diag.DuplicateDefinition, s.Pos(), e.File, "",
			"struct %q is already declared", s.Name)
		return
	}
	backend := lltypes.NewStruct()
	backend.TypeName = s.Name
	e.Mod.Structs.Insert(&types.StructInfo{Name: s.Name, Backend: backend, Public: s.Public})
	e.Mod.Symbols.Insert(&types.Symbol{Name: s.Name, Type: backend})
}

func (e *Emitter) predeclareEnum(en *lumair.EnumDecl) {
	if e.Mod.Enums.Lookup(en.Name) != nil {
		e.Sink.Errorf(diag.DuplicateDefinition, en.Pos(), e.File, "",
			"enum %q is already declared", en.Name)
		return
	}
	e.Mod.Enums.Insert(&types.EnumInfo{Name: en.Name, Members: en.Members, Public: en.Public})
	e.Mod.Symbols.Insert(&types.Symbol{Name: en.Name, Type: lltypes.I64})
}

// predeclareFunc registers a function's prototype. A forward
// declaration (no Body) and a single definition sharing the same name
// and signature are reconciled into one backend *ir.Func; mismatched
// signatures or a second body are diagnostics (test property 3).
func (e *Emitter) predeclareFunc(f *lumair.FuncDecl) {
	ret, _ := e.resolveType(f.Return)
	params := make([]*ir.Param, len(f.ParamTypes))
	paramTypes := make([]lltypes.Type, len(f.ParamTypes))
	for i, pt := range f.ParamTypes {
		bt, _ := e.resolveType(pt)
		paramTypes[i] = bt
		params[i] = ir.NewParam(f.Params[i], bt)
	}

	if e.hasBody == nil {
		e.hasBody = make(map[string]bool)
	}

	if existing := e.Mod.Symbols.Lookup(f.Name); existing != nil && existing.IsFunc {
		prev := existing.Value.(*ir.Func)
		if !signaturesMatch(prev, ret, paramTypes) {
			e.Sink.Errorf(diag.DuplicateDefinition, f.Pos(), e.File, "",
				"redeclaration of %q does not match previous signature", f.Name)
			return
		}
		if f.Body != nil {
			if e.hasBody[f.Name] {
				e.Sink.Errorf(diag.DuplicateDefinition, f.Pos(), e.File, "",
					"function %q already has a body", f.Name)
				return
			}
			e.hasBody[f.Name] = true
			e.funcBodies = append(e.funcBodies, pendingBody{Fn: prev, Params: f.Params, Body: f.Body})
		}
		return
	}

	fn := e.mod().NewFunc(f.Name, ret, params...)
	sym := &types.Symbol{Name: f.Name, Value: fn, Type: fn.Sig, IsFunc: true}
	e.Mod.Symbols.Insert(sym)
	if f.Body != nil {
		e.hasBody[f.Name] = true
		e.funcBodies = append(e.funcBodies, pendingBody{Fn: fn, Params: f.Params, Body: f.Body})
	}
}

// predeclareMethod is predeclareFunc's counterpart for a struct
// method: the receiver's backend pointer type is already known (the
// pointer to the struct's backend *types.StructType), so no name
// lookup through resolveType is
// needed for the injected `self` parameter. Registered under the
// qualified name "Struct.method" in the owning module's symbol table.
func (e *Emitter) predeclareMethod(structName string, recv lltypes.Type, f *lumair.FuncDecl) {
	qualified := structName + "." + f.Name
	ret, _ := e.resolveType(f.Return)

	params := make([]*ir.Param, len(f.ParamTypes)+1)
	params[0] = ir.NewParam("self", recv)
	paramTypes := make([]lltypes.Type, len(f.ParamTypes)+1)
	paramTypes[0] = recv
	for i, pt := range f.ParamTypes {
		bt, _ := e.resolveType(pt)
		paramTypes[i+1] = bt
		params[i+1] = ir.NewParam(f.Params[i], bt)
	}

	fn := e.mod().NewFunc(qualified, ret, params...)
	e.Mod.Symbols.Insert(&types.Symbol{Name: qualified, Value: fn, Type: fn.Sig, IsFunc: true})
	if e.hasBody == nil {
		e.hasBody = make(map[string]bool)
	}
	e.hasBody[qualified] = true
	allParams := append([]string{"self"}, f.Params...)
	e.funcBodies = append(e.funcBodies, pendingBody{Fn: fn, Params: allParams, Body: f.Body})
}

// predeclareImpl lowers `impl fn1, fn2 -> Struct1, Struct2` to the
// identical path a struct's own field-declared method body takes
// (DESIGN.md open-question decision 4): every listed function is
// registered as a method of every listed struct, each with its own
// injected `self` receiver and its own qualified "Struct.fn" symbol.
func (e *Emitter) predeclareImpl(im *lumair.Impl) {
	for _, target := range im.Targets {
		info := e.Mod.Structs.Lookup(target)
		if info == nil {
			e.Sink.Errorf(diag.UnknownModule, im.Pos(), e.File, "",
				"impl target %q is not a declared struct", target)
			continue
		}
		recv := lltypes.NewPointer(info.Backend)
		for _, f := range im.Funcs {
			e.predeclareMethod(target, recv, f)
		}
	}
}

// signaturesMatch compares return type and parameter types only —
// parameter names are deliberately excluded (DESIGN.md open-question
// decision 3).
func signaturesMatch(fn *ir.Func, ret lltypes.Type, params []lltypes.Type) bool {
	if fn.Sig.RetType.String() != ret.String() {
		return false
	}
	if len(fn.Params) != len(params) {
		return false
	}
	for i, p := range fn.Params {
		if p.Typ.String() != params[i].String() {
			return false
		}
	}
	return true
}
