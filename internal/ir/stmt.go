package ir

import (
	"github.com/luma-lang/lumac/internal/arena"
	"github.com/luma-lang/lumac/internal/token"
)

// LoopKind distinguishes the three loop shapes the parser unifies
// into a single Loop node.
type LoopKind int

const (
	LoopInfinite LoopKind = iota
	LoopWhile
	LoopFor
)

// Ownership is a parameter ownership annotation. The language records
// it in the IR (spec's data model calls out "ownership flags" on
// func-decl) but no borrow-checking pass consumes it — that's an
// explicit non-goal; the emitter treats every parameter as owned by
// value or pointer per its type, never specially by annotation.
type Ownership int

const (
	OwnDefault Ownership = iota
	OwnBorrowed
	OwnMove
)

// Program is the root node of a parsed program: one Module per parsed
// source file.
type Program struct {
	Modules []*Module
}

func (Program) node() {}

// Module is one source file's top-level statements; there is no
// module syntax, and the driver names it after the file.
type Module struct {
	baseStmt
	Name string
	Body []Stmt
}

func (Module) stmt() {}

// Use is `use other_module [as alias]`.
type Use struct {
	baseStmt
	ModuleName string
	Alias      string // empty when no alias given
}

func (Use) stmt() {}

// ExprStmt is an expression evaluated for effect.
type ExprStmt struct {
	baseStmt
	Expression Expr
}

func (ExprStmt) stmt() {}

// VarDecl is `const`/`var name: T = init`.
type VarDecl struct {
	baseStmt
	Name    string
	Type    Type // nil when inferred from Init
	Init    Expr // nil for an uninitialized declaration
	Mutable bool // true for `var`, false for `const`
	Public  bool
}

func (VarDecl) stmt() {}

// FuncDecl is a function declaration or definition. A nil Body marks
// a forward declaration; exactly one node with a given qualified name
// and signature may carry a non-nil Body.
type FuncDecl struct {
	baseStmt
	Name            string
	Params          []string
	ParamTypes      []Type
	ParamOwnership  []Ownership
	Return          Type
	Body            []Stmt // nil for a forward declaration
	Public          bool
	IsMethod        bool   // not set by the parser; methods are found via FieldDecl.Method and Impl.Funcs
	ReceiverStruct  string // not set by the parser; empty for every parsed FuncDecl
}

func (FuncDecl) stmt() {}

// StructDecl is a struct definition. PublicMembers/PrivateMembers
// each hold FieldDecl nodes in declaration order; visibility of each
// member is also recorded on the FieldDecl itself so a single flat
// walk can recover order without needing both lists.
type StructDecl struct {
	baseStmt
	Name           string
	PublicMembers  []*FieldDecl
	PrivateMembers []*FieldDecl
	Public         bool
}

func (StructDecl) stmt() {}

// FieldDecl is one struct member: a data field, or — when Method is
// non-nil — a method attached directly inside the struct body.
type FieldDecl struct {
	baseStmt
	Name   string
	Type   Type
	Method *FuncDecl // non-nil for `name(params) -> R { ... }` inside a struct
	Public bool
}

func (FieldDecl) stmt() {}

// EnumDecl is an enum definition; Members is ordinal-ordered, so
// Members[i] is constant i.
type EnumDecl struct {
	baseStmt
	Name    string
	Members []string
	Public  bool
}

func (EnumDecl) stmt() {}

// Return is `return [value]`.
type Return struct {
	baseStmt
	Value Expr // nil for a bare return
}

func (Return) stmt() {}

// Block is a bare `{ ... }` statement list.
type Block struct {
	baseStmt
	Body []Stmt
}

func (Block) stmt() {}

// ElifClause is one `elif cond { ... }` branch of an If. It
// deliberately does not embed If — an elif can never carry its own
// elif list, so giving it a distinct type makes that invariant
// structural rather than a runtime check.
type ElifClause struct {
	Condition Expr
	Body      []Stmt
}

// If is `if cond { ... } [elif ...]* [else { ... }]`.
type If struct {
	baseStmt
	Condition Expr
	Body      []Stmt
	Elifs     []ElifClause
	Else      []Stmt // nil when no else clause
}

func (If) stmt() {}

// Loop unifies the three loop shapes: infinite (`loop { }`), while
// (`while cond { }`), and for (`for init; cond; post { }`). Which
// fields are populated depends on Kind:
//   - LoopInfinite: only Body.
//   - LoopWhile: Condition and Body.
//   - LoopFor: Init (may include var-decls), Condition, Post (optional), Body.
type Loop struct {
	baseStmt
	Kind      LoopKind
	Init      []Stmt
	Condition Expr
	Post      Expr
	Body      []Stmt
}

func (Loop) stmt() {}

// Case is one `case v1, v2: stmts...` switch arm; all listed values
// route to the same Body.
type Case struct {
	Values []Expr
	Body   []Stmt
}

// Default is the `default: stmts...` switch arm.
type Default struct {
	Body []Stmt
}

// Switch is a switch statement over compile-time-constant case values.
type Switch struct {
	baseStmt
	Condition Expr
	Cases     []Case
	Default   *Default // nil when absent
}

func (Switch) stmt() {}

// Break is `break`.
type Break struct{ baseStmt }

func (Break) stmt() {}

// Continue is `continue`.
type Continue struct{ baseStmt }

func (Continue) stmt() {}

// Defer is `defer stmt`; the carried statement executes at function
// exit rather than at the defer site.
type Defer struct {
	baseStmt
	Body Stmt
}

func (Defer) stmt() {}

// Print is `print(e1, e2, ...)` or `println(...)`.
type Print struct {
	baseStmt
	Exprs   []Expr
	Newline bool
}

func (Print) stmt() {}

// Impl is an `impl fn1, fn2 -> Struct1, Struct2` block: the listed
// function declarations are registered as methods of every listed
// struct, identically to a struct-embedded method body (spec's open
// question 4 — this implementation treats both forms as the same
// mechanism; see DESIGN.md).
type Impl struct {
	baseStmt
	Funcs   []*FuncDecl
	Targets []string
}

func (Impl) stmt() {}

func NewModule(pool *arena.Pool, pos token.Position, name string, body []Stmt) *Module {
	n := arena.Alloc[Module](pool)
	n.Line, n.Col = at(pos)
	n.Name, n.Body = name, body
	return n
}

func NewUse(pool *arena.Pool, pos token.Position, moduleName, alias string) *Use {
	n := arena.Alloc[Use](pool)
	n.Line, n.Col = at(pos)
	n.ModuleName, n.Alias = moduleName, alias
	return n
}

func NewExprStmt(pool *arena.Pool, pos token.Position, e Expr) *ExprStmt {
	n := arena.Alloc[ExprStmt](pool)
	n.Line, n.Col = at(pos)
	n.Expression = e
	return n
}

func NewVarDecl(pool *arena.Pool, pos token.Position, name string, typ Type, init Expr, mutable, public bool) *VarDecl {
	n := arena.Alloc[VarDecl](pool)
	n.Line, n.Col = at(pos)
	n.Name, n.Type, n.Init, n.Mutable, n.Public = name, typ, init, mutable, public
	return n
}

func NewFuncDecl(pool *arena.Pool, pos token.Position, name string, params []string, paramTypes []Type, ownership []Ownership, ret Type, body []Stmt, public bool) *FuncDecl {
	n := arena.Alloc[FuncDecl](pool)
	n.Line, n.Col = at(pos)
	n.Name, n.Params, n.ParamTypes, n.ParamOwnership, n.Return, n.Body, n.Public = name, params, paramTypes, ownership, ret, body, public
	return n
}

func NewStructDecl(pool *arena.Pool, pos token.Position, name string, pub, priv []*FieldDecl, public bool) *StructDecl {
	n := arena.Alloc[StructDecl](pool)
	n.Line, n.Col = at(pos)
	n.Name, n.PublicMembers, n.PrivateMembers, n.Public = name, pub, priv, public
	return n
}

func NewFieldDecl(pool *arena.Pool, pos token.Position, name string, typ Type, method *FuncDecl, public bool) *FieldDecl {
	n := arena.Alloc[FieldDecl](pool)
	n.Line, n.Col = at(pos)
	n.Name, n.Type, n.Method, n.Public = name, typ, method, public
	return n
}

func NewEnumDecl(pool *arena.Pool, pos token.Position, name string, members []string, public bool) *EnumDecl {
	n := arena.Alloc[EnumDecl](pool)
	n.Line, n.Col = at(pos)
	n.Name, n.Members, n.Public = name, members, public
	return n
}

func NewReturn(pool *arena.Pool, pos token.Position, value Expr) *Return {
	n := arena.Alloc[Return](pool)
	n.Line, n.Col = at(pos)
	n.Value = value
	return n
}

func NewBlock(pool *arena.Pool, pos token.Position, body []Stmt) *Block {
	n := arena.Alloc[Block](pool)
	n.Line, n.Col = at(pos)
	n.Body = body
	return n
}

func NewIf(pool *arena.Pool, pos token.Position, cond Expr, body []Stmt, elifs []ElifClause, els []Stmt) *If {
	n := arena.Alloc[If](pool)
	n.Line, n.Col = at(pos)
	n.Condition, n.Body, n.Elifs, n.Else = cond, body, elifs, els
	return n
}

func NewLoop(pool *arena.Pool, pos token.Position, kind LoopKind, init []Stmt, cond Expr, post Expr, body []Stmt) *Loop {
	n := arena.Alloc[Loop](pool)
	n.Line, n.Col = at(pos)
	n.Kind, n.Init, n.Condition, n.Post, n.Body = kind, init, cond, post, body
	return n
}

func NewSwitch(pool *arena.Pool, pos token.Position, cond Expr, cases []Case, def *Default) *Switch {
	n := arena.Alloc[Switch](pool)
	n.Line, n.Col = at(pos)
	n.Condition, n.Cases, n.Default = cond, cases, def
	return n
}

func NewBreak(pool *arena.Pool, pos token.Position) *Break {
	n := arena.Alloc[Break](pool)
	n.Line, n.Col = at(pos)
	return n
}

func NewContinue(pool *arena.Pool, pos token.Position) *Continue {
	n := arena.Alloc[Continue](pool)
	n.Line, n.Col = at(pos)
	return n
}

func NewDefer(pool *arena.Pool, pos token.Position, body Stmt) *Defer {
	n := arena.Alloc[Defer](pool)
	n.Line, n.Col = at(pos)
	n.Body = body
	return n
}

func NewPrint(pool *arena.Pool, pos token.Position, exprs []Expr, newline bool) *Print {
	n := arena.Alloc[Print](pool)
	n.Line, n.Col = at(pos)
	n.Exprs, n.Newline = exprs, newline
	return n
}

func NewImpl(pool *arena.Pool, pos token.Position, funcs []*FuncDecl, targets []string) *Impl {
	n := arena.Alloc[Impl](pool)
	n.Line, n.Col = at(pos)
	n.Funcs, n.Targets = funcs, targets
	return n
}
