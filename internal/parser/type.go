package parser

import (
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/token"
)

// parseType parses a type, kept entirely separate from expression
// parsing per spec.md §4.1: primitives by keyword, `*T` for pointer,
// `[T; N]` for array with a constant-expression size, and a
// `::`-qualified resolution path for everything else. The resolution
// path's parts are left unresolved — lookup against the module/name
// environment happens at emission time, not here.
func (p *Parser) parseType() lumair.Type {
	t := p.cur()
	switch t.Kind {
	case token.Star:
		p.advance()
		return lumair.NewPointerType(p.pool, t.Pos, p.parseType())
	case token.LBracket:
		p.advance()
		elem := p.parseType()
		p.expect(token.Semicolon)
		size := p.parseExpr(bpAssign)
		p.expect(token.RBracket)
		return lumair.NewArrayType(p.pool, t.Pos, elem, size)
	case token.KwFn:
		p.advance()
		p.expect(token.LParen)
		var params []lumair.Type
		for !p.check(token.RParen) && !p.atEnd() {
			params = append(params, p.parseType())
			if !p.match(token.Comma) {
				break
			}
		}
		p.expect(token.RParen)
		ret := p.parseType()
		return lumair.NewFuncType(p.pool, t.Pos, params, ret)
	case token.KwInt:
		p.advance()
		return lumair.NewBasicType(p.pool, t.Pos, t.Text)
	case token.Ident:
		p.advance()
		if p.check(token.ColonColon) {
			path := []string{t.Text}
			for p.match(token.ColonColon) {
				name := p.expect(token.Ident)
				path = append(path, name.Text)
			}
			return lumair.NewResolutionType(p.pool, t.Pos, path)
		}
		// A bare identifier names either a primitive ("double", "bool",
		// "float", "char", "void") or a user struct — BasicType's
		// resolution checks the primitive table first and falls back to
		// the struct registry, so both land here uniformly.
		return lumair.NewBasicType(p.pool, t.Pos, t.Text)
	}
	p.errorf(t, "expected a type, found %s", t.Kind)
	return lumair.NewBasicType(p.pool, t.Pos, "int") // synchronized placeholder
}
