// Package ir defines the tagged node tree produced by the parser and
// consumed by the code emitter: expressions, statements, and types,
// each represented as its own Go type implementing a shared marker
// interface (a sum type via interface dispatch rather than a C-style
// tagged union). Every node carries its originating line/column;
// synthetic nodes (introduced by the compiler itself, never by the
// parser) carry a zero Position.
//
// Nodes are allocated out of an arena.Pool and are not mutated after
// construction.
package ir

import "github.com/luma-lang/lumac/internal/token"

// Node is implemented by every IR node.
type Node interface {
	node()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	Pos() token.Position
	expr()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	Pos() token.Position
	stmt()
}

// Type is implemented by every type node.
type Type interface {
	Node
	Pos() token.Position
	typ()
}

// baseExpr supplies Pos() to every Expr variant.
type baseExpr struct {
	Line, Col int
}

func (b baseExpr) node() {}
func (b baseExpr) expr() {}
func (b baseExpr) Pos() token.Position {
	return token.Position{Line: b.Line, Column: b.Col}
}

// baseStmt supplies Pos() to every Stmt variant.
type baseStmt struct {
	Line, Col int
}

func (b baseStmt) node() {}
func (b baseStmt) stmt() {}
func (b baseStmt) Pos() token.Position {
	return token.Position{Line: b.Line, Column: b.Col}
}

// baseType supplies Pos() to every Type variant.
type baseType struct {
	Line, Col int
}

func (b baseType) node() {}
func (b baseType) typ()  {}
func (b baseType) Pos() token.Position {
	return token.Position{Line: b.Line, Column: b.Col}
}

// at splits a token position into the embeddable Line/Col fields.
// Every New* constructor calls it on the position it is given, so
// callers pass a token's position directly: ir.NewBinary(pool, tok.Pos, ...).
func at(p token.Position) (int, int) { return p.Line, p.Column }
