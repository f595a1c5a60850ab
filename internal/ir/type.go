package ir

import (
	"github.com/luma-lang/lumac/internal/arena"
	"github.com/luma-lang/lumac/internal/token"
)

// BasicType is a named primitive or user type (`int`, `double`,
// `MyStruct`).
type BasicType struct {
	baseType
	Name string
}

// PointerType is `*T`.
type PointerType struct {
	baseType
	Elem Type
}

// ArrayType is `[T; N]`; Size is a constant expression, evaluated by
// the emitter rather than the parser (spec keeps type parsing
// separate from expression evaluation).
type ArrayType struct {
	baseType
	Elem Type
	Size Expr
}

// FuncType is the type of a function value: `fn(T1, T2) R`.
type FuncType struct {
	baseType
	Params []Type
	Return Type
}

// StructRefType names a struct type directly by its short name,
// without a module path (`Node` as opposed to `ns::Node`).
type StructRefType struct {
	baseType
	Name string
}

// ResolutionType is a `::`-qualified path (`ns::Type` or
// `ns::Outer::Inner`), kept as a flat ordered name list; resolution
// against the module/name environment happens at emission time, not
// during parsing.
type ResolutionType struct {
	baseType
	Path []string
}

func (BasicType) typ()      {}
func (PointerType) typ()    {}
func (ArrayType) typ()      {}
func (FuncType) typ()       {}
func (StructRefType) typ()  {}
func (ResolutionType) typ() {}

func NewBasicType(pool *arena.Pool, pos token.Position, name string) *BasicType {
	n := arena.Alloc[BasicType](pool)
	n.Line, n.Col = at(pos)
	n.Name = name
	return n
}

func NewPointerType(pool *arena.Pool, pos token.Position, elem Type) *PointerType {
	n := arena.Alloc[PointerType](pool)
	n.Line, n.Col = at(pos)
	n.Elem = elem
	return n
}

func NewArrayType(pool *arena.Pool, pos token.Position, elem Type, size Expr) *ArrayType {
	n := arena.Alloc[ArrayType](pool)
	n.Line, n.Col = at(pos)
	n.Elem, n.Size = elem, size
	return n
}

func NewFuncType(pool *arena.Pool, pos token.Position, params []Type, ret Type) *FuncType {
	n := arena.Alloc[FuncType](pool)
	n.Line, n.Col = at(pos)
	n.Params, n.Return = params, ret
	return n
}

func NewStructRefType(pool *arena.Pool, pos token.Position, name string) *StructRefType {
	n := arena.Alloc[StructRefType](pool)
	n.Line, n.Col = at(pos)
	n.Name = name
	return n
}

func NewResolutionType(pool *arena.Pool, pos token.Position, path []string) *ResolutionType {
	n := arena.Alloc[ResolutionType](pool)
	n.Line, n.Col = at(pos)
	n.Path = path
	return n
}
