package emit

import (
	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/types"
)

// emitStructDecl finishes what predeclareStruct started: resolve every
// field's type now that all sibling structs are registered, reject
// duplicate field names and empty structs, set the backend struct's
// body, then emit every attached method as an independent function
// with an injected `self: *Struct` receiver.
func (e *Emitter) emitStructDecl(s *lumair.StructDecl) {
	info := e.Mod.Structs.Lookup(s.Name)
	if info == nil {
		return // predeclareStruct already reported the duplicate
	}

	var fields []types.FieldInfo
	var methods []*lumair.FieldDecl
	seen := map[string]bool{}

	register := func(fd *lumair.FieldDecl, public bool) {
		if fd.Method != nil {
			methods = append(methods, fd)
			return
		}
		if seen[fd.Name] {
			e.Sink.Errorf(diag.DuplicateDefinition, fd.Pos(), e.File, "",
				"duplicate field %q in struct %q", fd.Name, s.Name)
			return
		}
		seen[fd.Name] = true
		bt, et := e.resolveType(fd.Type)
		fields = append(fields, types.FieldInfo{Name: fd.Name, Type: bt, ElemType: et, Public: public})
	}
	for _, fd := range s.PublicMembers {
		register(fd, true)
	}
	for _, fd := range s.PrivateMembers {
		register(fd, false)
	}

	if len(fields) == 0 {
		e.Sink.Errorf(diag.TypeError, s.Pos(), e.File, "",
			"struct %q has no data fields", s.Name)
		return
	}

	backendFields := make([]ir.Type, len(fields))
	for i, f := range fields {
		backendFields[i] = f.Type
	}
	info.Backend.Fields = backendFields
	info.Fields = fields

	recv := lltypes.NewPointer(info.Backend)
	for _, fd := range methods {
		e.predeclareMethod(s.Name, recv, fd.Method)
	}
}
