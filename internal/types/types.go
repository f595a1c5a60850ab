// Package types holds the compiler's symbol table and struct registry
// — the bookkeeping layer that sits between the parsed internal/ir
// tree and the internal/emit lowering pass. Both structures are kept
// as singly-linked lists with linear lookup, matching the data model:
// a single source file rarely declares more than a few hundred names,
// so list-scan lookup is simpler than a map and good enough.
package types

import "github.com/llir/llvm/ir"

// Symbol binds a source-level name within one module to its backend
// value, principal type, and — when the principal type is a pointer —
// the pointee's element type. ElemType is supplied at the call site
// that creates the symbol, so lookups read it directly rather than
// recovering it from the backend value. This
// implementation never reconstructs an element type from a variable's
// name: the name-substring fallbacks the design notes call out as
// fragile are not reproduced here (see DESIGN.md's "element type"
// open-question entry).
type Symbol struct {
	Name      string
	Value     ir.Value  // nil for a pure namespace marker (enum/struct type name)
	Type      ir.Type   // principal type
	ElemType  ir.Type   // pointee type; nil unless Type is a pointer type
	IsFunc    bool
	Next      *Symbol
}

// SymbolList is the insertion-ordered, linearly-searched symbol table
// owned by one module compilation unit. Insert appends and Lookup
// walks from the head, so when two symbols share a name the one
// inserted first is found.
type SymbolList struct {
	head *Symbol
	tail *Symbol
}

// Insert appends sym in declaration order. Appending (not prepending)
// matches the data model's "insertion order preserved" contract;
// shadowing within a single list is not meaningful here since the
// parser never nests scopes inside the symbol list — function-local
// names live in a separate SymbolList per function body
// (internal/emit's funcScope.locals), which is searched before the
// module's table.
func (l *SymbolList) Insert(sym *Symbol) {
	if l.tail == nil {
		l.head, l.tail = sym, sym
		return
	}
	l.tail.Next = sym
	l.tail = sym
}

// Lookup finds the first symbol with the given name, or nil.
func (l *SymbolList) Lookup(name string) *Symbol {
	for s := l.head; s != nil; s = s.Next {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// All returns every symbol in insertion order. Used by diagnostics'
// "did you mean" suggestion search.
func (l *SymbolList) All() []*Symbol {
	var out []*Symbol
	for s := l.head; s != nil; s = s.Next {
		out = append(out, s)
	}
	return out
}

// FieldInfo is one struct field: its name, declared type, optional
// element type (when Type is a pointer), and visibility.
type FieldInfo struct {
	Name     string
	Type     ir.Type
	ElemType ir.Type
	Public   bool
}

// StructInfo is the registry entry for one user-defined struct type.
// Backend is created opaque (types.NewStruct with no fields set) at
// first declaration and given a body once every field's type has
// resolved, which is what lets a struct reference itself through a
// pointer field.
type StructInfo struct {
	Name    string
	Backend *ir.StructType
	Fields  []FieldInfo
	Public  bool
	Next    *StructInfo
}

// FieldIndex returns the zero-based position of a named field, or -1.
func (s *StructInfo) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Field returns the named field's info, or nil.
func (s *StructInfo) Field(name string) *FieldInfo {
	i := s.FieldIndex(name)
	if i < 0 {
		return nil
	}
	return &s.Fields[i]
}

// StructList is the singly-linked registry of every struct type
// declared in one module, in declaration order.
type StructList struct {
	head *StructInfo
	tail *StructInfo
}

func (l *StructList) Insert(info *StructInfo) {
	if l.tail == nil {
		l.head, l.tail = info, info
		return
	}
	l.tail.Next = info
	l.tail = info
}

func (l *StructList) Lookup(name string) *StructInfo {
	for s := l.head; s != nil; s = s.Next {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (l *StructList) All() []*StructInfo {
	var out []*StructInfo
	for s := l.head; s != nil; s = s.Next {
		out = append(out, s)
	}
	return out
}

// EnumInfo records a declared enum's ordered member names; each
// member is also inserted into the module's SymbolList as an
// integer-typed constant symbol (see internal/emit's enum-decl
// handling), so EnumInfo itself only backs name resolution and
// "::"-qualified member lookup, not code generation directly.
type EnumInfo struct {
	Name    string
	Members []string
	Public  bool
	Next    *EnumInfo
}

// EnumList mirrors StructList for enum declarations.
type EnumList struct {
	head *EnumInfo
	tail *EnumInfo
}

func (l *EnumList) Insert(info *EnumInfo) {
	if l.tail == nil {
		l.head, l.tail = info, info
		return
	}
	l.tail.Next = info
	l.tail = info
}

func (l *EnumList) Lookup(name string) *EnumInfo {
	for e := l.head; e != nil; e = e.Next {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (l *EnumList) All() []*EnumInfo {
	var out []*EnumInfo
	for e := l.head; e != nil; e = e.Next {
		out = append(out, e)
	}
	return out
}

// Ordinal returns the zero-based ordinal of member within e, or -1.
func (e *EnumInfo) Ordinal(member string) int {
	for i, m := range e.Members {
		if m == member {
			return i
		}
	}
	return -1
}
