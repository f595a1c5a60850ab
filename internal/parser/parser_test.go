package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luma-lang/lumac/internal/arena"
	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/lexer"
)

func parseModule(t *testing.T, name, src string) (*lumair.Module, *diag.Sink) {
	t.Helper()
	toks := lexer.New(name+".lx", src).Tokenize()
	pool := &arena.Pool{}
	sink := &diag.Sink{}
	p := New(pool, sink, name+".lx", toks)
	return p.ParseModule(name), sink
}

func TestParseModule_FunctionDeclaration(t *testing.T) {
	m, sink := parseModule(t, "main", `pub const main -> fn () int { return 42; }`)
	require.False(t, sink.HasErrors(), sink.Err())
	require.Len(t, m.Body, 1)
	fn, ok := m.Body[0].(*lumair.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name)
	assert.True(t, fn.Public)
	require.Len(t, fn.Body, 1)
	ret, ok := fn.Body[0].(*lumair.Return)
	require.True(t, ok)
	lit, ok := ret.Value.(*lumair.IntLit)
	require.True(t, ok)
	assert.Equal(t, "42", lit.Value)
}

func TestParseModule_ForwardDeclarationHasNoBody(t *testing.T) {
	m, sink := parseModule(t, "m", `pub const add -> fn (a: int, b: int) int;`)
	require.False(t, sink.HasErrors())
	fn := m.Body[0].(*lumair.FuncDecl)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	assert.Nil(t, fn.Body)
}

func TestParseExpr_PrecedenceMulBeforeAdd(t *testing.T) {
	toks := lexer.New("t.lx", "1 + 2 * 3").Tokenize()
	p := New(&arena.Pool{}, &diag.Sink{}, "t.lx", toks)
	e := p.ParseExpr()
	bin, ok := e.(*lumair.Binary)
	require.True(t, ok)
	assert.Equal(t, lumair.OpAdd, bin.Op)
	rhs, ok := bin.Right.(*lumair.Binary)
	require.True(t, ok)
	assert.Equal(t, lumair.OpMul, rhs.Op)
}

func TestParseExpr_AssignIsRightAssociative(t *testing.T) {
	toks := lexer.New("t.lx", "a = b = c").Tokenize()
	p := New(&arena.Pool{}, &diag.Sink{}, "t.lx", toks)
	e := p.ParseExpr()
	outer, ok := e.(*lumair.Assign)
	require.True(t, ok)
	inner, ok := outer.Value.(*lumair.Assign)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Target.(*lumair.Ident).Name)
	assert.Equal(t, "c", inner.Value.(*lumair.Ident).Name)
}

func TestParseExpr_StructLiteralAndIfAmbiguity(t *testing.T) {
	// In expression position, `Ident{...}` is a struct literal.
	toks := lexer.New("t.lx", "Point{x: 1, y: 2}").Tokenize()
	p := New(&arena.Pool{}, &diag.Sink{}, "t.lx", toks)
	e := p.ParseExpr()
	lit, ok := e.(*lumair.StructLit)
	require.True(t, ok)
	assert.Equal(t, "Point", lit.StructName)
	require.Len(t, lit.Fields, 2)

	// In an if-condition, the same identifier followed by `{` must NOT
	// be parsed as a struct literal — the brace opens the if-body.
	m, sink := parseModule(t, "m", `pub const f -> fn () int { if x { return 1; } return 0; }`)
	require.False(t, sink.HasErrors())
	fn := m.Body[0].(*lumair.FuncDecl)
	ifStmt, ok := fn.Body[0].(*lumair.If)
	require.True(t, ok)
	ident, ok := ifStmt.Condition.(*lumair.Ident)
	require.True(t, ok)
	assert.Equal(t, "x", ident.Name)
}

func TestParseModule_StructWithRecursivePointerField(t *testing.T) {
	m, sink := parseModule(t, "m", `pub const Node -> struct { pub v: int, pub n: *Node };`)
	require.False(t, sink.HasErrors())
	sd := m.Body[0].(*lumair.StructDecl)
	assert.Equal(t, "Node", sd.Name)
	require.Len(t, sd.PublicMembers, 2)
	ptr, ok := sd.PublicMembers[1].Type.(*lumair.PointerType)
	require.True(t, ok)
	basic, ok := ptr.Elem.(*lumair.BasicType)
	require.True(t, ok)
	assert.Equal(t, "Node", basic.Name)
}

func TestParseModule_EnumMembers(t *testing.T) {
	m, sink := parseModule(t, "m", `pub const Color -> enum { Red, Green, Blue };`)
	require.False(t, sink.HasErrors())
	ed := m.Body[0].(*lumair.EnumDecl)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, ed.Members)
}

func TestParseModule_UseWithPathAndAlias(t *testing.T) {
	m, sink := parseModule(t, "main", `use std::io as io;`)
	require.False(t, sink.HasErrors())
	use := m.Body[0].(*lumair.Use)
	assert.Equal(t, "std::io", use.ModuleName)
	assert.Equal(t, "io", use.Alias)
}

func TestParseModule_ImplBlockSharesMethodFuncShape(t *testing.T) {
	m, sink := parseModule(t, "m", `impl speak(x: int) -> int { return x; } -> Dog, Cat;`)
	require.False(t, sink.HasErrors())
	im := m.Body[0].(*lumair.Impl)
	require.Len(t, im.Funcs, 1)
	assert.Equal(t, "speak", im.Funcs[0].Name)
	assert.Equal(t, []string{"Dog", "Cat"}, im.Targets)
}

func TestParseExpr_SizeofType(t *testing.T) {
	toks := lexer.New("t.lx", "sizeof(int)").Tokenize()
	p := New(&arena.Pool{}, &diag.Sink{}, "t.lx", toks)
	e := p.ParseExpr()
	sz, ok := e.(*lumair.Sizeof)
	require.True(t, ok)
	require.Nil(t, sz.TargetExpr)
	_, ok = sz.TargetType.(*lumair.BasicType)
	assert.True(t, ok)
}

func TestParseModule_DeferLIFOOrderIsPreservedInSource(t *testing.T) {
	m, sink := parseModule(t, "m", `pub const f -> fn () int {
		var x: int = 0;
		defer { x = 1; }
		defer { x = 2; }
		return x;
	}`)
	require.False(t, sink.HasErrors())
	fn := m.Body[0].(*lumair.FuncDecl)
	require.Len(t, fn.Body, 4)
	_, ok := fn.Body[1].(*lumair.Defer)
	require.True(t, ok)
	_, ok = fn.Body[2].(*lumair.Defer)
	require.True(t, ok)
}

func TestParseModule_SyntaxErrorRecoversAndReportsMultiple(t *testing.T) {
	_, sink := parseModule(t, "m", `pub const a -> fn ( int { return 1; }
pub const b -> fn () int { return 2; }`)
	assert.True(t, sink.HasErrors())
	assert.Greater(t, len(sink.All()), 1)
}
