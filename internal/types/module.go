package types

import "github.com/llir/llvm/ir"

// Module is one compilation unit: a single source module's symbol
// table, struct/enum registries, and the backend module handle it
// emits into. One Module produces exactly one object file.
type Module struct {
	Name     string
	Backend  *ir.Module
	Symbols  SymbolList
	Structs  StructList
	Enums    EnumList
	IsMain   bool

	// Imports records, in Use-statement order, the modules this one
	// depends on, as wired by internal/modgraph's WireImports. Emission
	// order is computed from the graph's own edge list, not from this
	// field.
	Imports []Import

	Next *Module
}

// Import is one `use target [as alias]` resolved against the module
// graph; Alias is the empty string when none was given.
type Import struct {
	Target *Module
	Alias  string
}

// ModuleList is the singly-linked list of every module in the
// program, held by the code-generation context. Lookup by name is a
// linear scan, matching the data model's stated cost.
type ModuleList struct {
	head *Module
	tail *Module
}

func (l *ModuleList) Insert(m *Module) {
	if l.tail == nil {
		l.head, l.tail = m, m
		return
	}
	l.tail.Next = m
	l.tail = m
}

func (l *ModuleList) Lookup(name string) *Module {
	for m := l.head; m != nil; m = m.Next {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (l *ModuleList) All() []*Module {
	var out []*Module
	for m := l.head; m != nil; m = m.Next {
		out = append(out, m)
	}
	return out
}
