package parser

import (
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/token"
)

// parseTopLevel parses one top-level declaration: a (possibly
// visibility-prefixed) const/var declaration, a use directive, or an
// impl block. On a syntax error it synchronizes to the next
// plausible declaration boundary and returns nil so the caller simply
// skips the slot rather than aborting the file.
func (p *Parser) parseTopLevel() lumair.Stmt {
	switch p.cur().Kind {
	case token.KwUse:
		return p.parseUse()
	case token.KwImpl:
		return p.parseImpl()
	case token.KwPub, token.KwPriv, token.KwConst, token.KwVar:
		return p.parseDecl()
	}
	p.errorf(p.cur(), "expected a declaration, found %s", p.cur().Kind)
	p.synchronize()
	return nil
}

// parseStmt parses one statement inside a function body or block.
// Declarations are permitted syntactically here too; the emitter
// rejects a nested func/struct/enum declaration with a diagnostic
// (internal/emit/stmt.go) rather than the parser refusing to build
// the tree, keeping one error-reporting path for that rule.
func (p *Parser) parseStmt() lumair.Stmt {
	switch p.cur().Kind {
	case token.LBrace:
		return p.parseBlockStmt()
	case token.KwIf:
		return p.parseIf()
	case token.KwLoop:
		return p.parseLoopInfinite()
	case token.KwWhile:
		return p.parseLoopWhile()
	case token.KwFor:
		return p.parseLoopFor()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwBreak:
		t := p.advance()
		p.expect(token.Semicolon)
		return lumair.NewBreak(p.pool, t.Pos)
	case token.KwContinue:
		t := p.advance()
		p.expect(token.Semicolon)
		return lumair.NewContinue(p.pool, t.Pos)
	case token.KwReturn:
		return p.parseReturn()
	case token.KwDefer:
		return p.parseDefer()
	case token.KwPrint, token.KwPrintln:
		return p.parsePrint()
	case token.KwUse:
		return p.parseUse()
	case token.KwImpl:
		return p.parseImpl()
	case token.KwPub, token.KwPriv, token.KwConst, token.KwVar:
		return p.parseDecl()
	case token.Semicolon:
		p.advance()
		return nil // empty statement
	default:
		t := p.cur()
		e := p.ParseExpr()
		p.expect(token.Semicolon)
		if e == nil {
			return nil
		}
		return lumair.NewExprStmt(p.pool, t.Pos, e)
	}
}

// parseBlock parses `{ stmt* }`, filtering out the nil slots left by
// empty statements or a statement that failed to parse.
func (p *Parser) parseBlock() []lumair.Stmt {
	p.expect(token.LBrace)
	var body []lumair.Stmt
	for !p.check(token.RBrace) && !p.atEnd() {
		if s := p.parseStmt(); s != nil {
			body = append(body, s)
		}
	}
	p.expect(token.RBrace)
	return body
}

func (p *Parser) parseBlockStmt() lumair.Stmt {
	t := p.cur()
	return lumair.NewBlock(p.pool, t.Pos, p.parseBlock())
}

// condExpr parses a condition expression with struct-literal
// recognition suppressed, so `if x { ... }` parses `x` as the whole
// condition rather than greedily consuming `{ ... }` as a struct
// literal field list.
func (p *Parser) condExpr() lumair.Expr {
	save := p.noStructLit
	p.noStructLit = true
	e := p.ParseExpr()
	p.noStructLit = save
	return e
}

func (p *Parser) parseIf() lumair.Stmt {
	t := p.advance() // 'if'
	cond := p.condExpr()
	body := p.parseBlock()
	var elifs []lumair.ElifClause
	for p.check(token.KwElif) {
		p.advance()
		ec := p.condExpr()
		eb := p.parseBlock()
		elifs = append(elifs, lumair.ElifClause{Condition: ec, Body: eb})
	}
	var elseBody []lumair.Stmt
	if p.match(token.KwElse) {
		elseBody = p.parseBlock()
	}
	return lumair.NewIf(p.pool, t.Pos, cond, body, elifs, elseBody)
}

func (p *Parser) parseLoopInfinite() lumair.Stmt {
	t := p.advance() // 'loop'
	body := p.parseBlock()
	return lumair.NewLoop(p.pool, t.Pos, lumair.LoopInfinite, nil, nil, nil, body)
}

func (p *Parser) parseLoopWhile() lumair.Stmt {
	t := p.advance() // 'while'
	cond := p.condExpr()
	body := p.parseBlock()
	return lumair.NewLoop(p.pool, t.Pos, lumair.LoopWhile, nil, cond, nil, body)
}

// parseLoopFor parses `for init(,init)*; cond; post { body }`. Every
// clause is optional (`for ;; { }` is the infinite loop spelled the
// C way), matching spec.md's "for-style with init list and optional
// post-expression".
func (p *Parser) parseLoopFor() lumair.Stmt {
	t := p.advance() // 'for'
	var init []lumair.Stmt
	if !p.check(token.Semicolon) {
		for {
			init = append(init, p.parseForInitClause())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.expect(token.Semicolon)

	var cond lumair.Expr
	if !p.check(token.Semicolon) {
		cond = p.condExpr()
	}
	p.expect(token.Semicolon)

	var post lumair.Expr
	if !p.check(token.LBrace) {
		post = p.ParseExpr()
	}
	body := p.parseBlock()
	return lumair.NewLoop(p.pool, t.Pos, lumair.LoopFor, init, cond, post, body)
}

// parseForInitClause parses one comma-separated for-loop init clause:
// either a var/const declaration (without its own trailing semicolon)
// or a bare expression.
func (p *Parser) parseForInitClause() lumair.Stmt {
	if p.check(token.KwConst) || p.check(token.KwVar) {
		kw := p.advance()
		return p.parseVarDeclBody(kw, false, kw.Kind == token.KwVar)
	}
	t := p.cur()
	e := p.ParseExpr()
	return lumair.NewExprStmt(p.pool, t.Pos, e)
}

func (p *Parser) parseSwitch() lumair.Stmt {
	t := p.advance() // 'switch'
	cond := p.condExpr()
	p.expect(token.LBrace)
	var cases []lumair.Case
	var def *lumair.Default
	for !p.check(token.RBrace) && !p.atEnd() {
		switch p.cur().Kind {
		case token.KwCase:
			p.advance()
			var values []lumair.Expr
			values = append(values, p.ParseExpr())
			for p.match(token.Comma) {
				values = append(values, p.ParseExpr())
			}
			p.expect(token.Colon)
			body := p.parseCaseBody()
			cases = append(cases, lumair.Case{Values: values, Body: body})
		case token.KwDefault:
			p.advance()
			p.expect(token.Colon)
			body := p.parseCaseBody()
			def = &lumair.Default{Body: body}
		default:
			p.errorf(p.cur(), "expected case or default, found %s", p.cur().Kind)
			p.advance()
		}
	}
	p.expect(token.RBrace)
	return lumair.NewSwitch(p.pool, t.Pos, cond, cases, def)
}

// parseCaseBody parses the statements of one case/default arm, up to
// (but not consuming) the next case/default/closing brace.
func (p *Parser) parseCaseBody() []lumair.Stmt {
	var body []lumair.Stmt
	for !p.check(token.KwCase) && !p.check(token.KwDefault) && !p.check(token.RBrace) && !p.atEnd() {
		if s := p.parseStmt(); s != nil {
			body = append(body, s)
		}
	}
	return body
}

func (p *Parser) parseReturn() lumair.Stmt {
	t := p.advance() // 'return'
	var val lumair.Expr
	if !p.check(token.Semicolon) {
		val = p.ParseExpr()
	}
	p.expect(token.Semicolon)
	return lumair.NewReturn(p.pool, t.Pos, val)
}

func (p *Parser) parseDefer() lumair.Stmt {
	t := p.advance() // 'defer'
	body := p.parseStmt()
	return lumair.NewDefer(p.pool, t.Pos, body)
}

func (p *Parser) parsePrint() lumair.Stmt {
	t := p.advance() // 'print' or 'println'
	newline := t.Kind == token.KwPrintln
	p.expect(token.LParen)
	var exprs []lumair.Expr
	for !p.check(token.RParen) && !p.atEnd() {
		exprs = append(exprs, p.ParseExpr())
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	p.expect(token.Semicolon)
	return lumair.NewPrint(p.pool, t.Pos, exprs, newline)
}

func (p *Parser) parseUse() lumair.Stmt {
	t := p.advance() // 'use'
	first := p.expect(token.Ident)
	name := first.Text
	for p.match(token.ColonColon) {
		part := p.expect(token.Ident)
		name += "::" + part.Text
	}
	alias := ""
	if p.match(token.KwAs) {
		a := p.expect(token.Ident)
		alias = a.Text
	}
	p.expect(token.Semicolon)
	return lumair.NewUse(p.pool, t.Pos, name, alias)
}

// parseImpl parses `impl name1(params) -> R { }, name2(...) -> R { }
// -> Struct1, Struct2;` — each listed function uses the same
// `name(params) -> R { }` shape a struct-embedded method body does
// (DESIGN.md open-question decision 4 treats the two mechanisms as
// identical), so both share parseMethodFunc. Every listed function
// must carry a body: a forward declaration has nothing for `impl` to
// attach to a struct.
func (p *Parser) parseImpl() lumair.Stmt {
	t := p.advance() // 'impl'
	var funcs []*lumair.FuncDecl
	for {
		fpos := p.cur()
		name := p.expect(token.Ident)
		funcs = append(funcs, p.parseMethodFunc(fpos.Pos, name.Text, false))
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.Arrow)
	var targets []string
	for {
		name := p.expect(token.Ident)
		targets = append(targets, name.Text)
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.Semicolon)
	return lumair.NewImpl(p.pool, t.Pos, funcs, targets)
}

// parseDecl parses one `[pub|priv]? (const|var) name ...` production,
// the front door for variable, function, struct, and enum
// declarations alike (spec.md §4.1: "const is also the front door for
// functions/structs/enums when followed by ->").
func (p *Parser) parseDecl() lumair.Stmt {
	public := false
	if p.check(token.KwPub) || p.check(token.KwPriv) {
		public = p.cur().Kind == token.KwPub
		p.advance()
	}
	if !p.check(token.KwConst) && !p.check(token.KwVar) {
		p.errorf(p.cur(), "expected const or var, found %s", p.cur().Kind)
		p.synchronize()
		return nil
	}
	kw := p.advance()
	mutable := kw.Kind == token.KwVar
	return p.parseVarDeclBody(kw, public, mutable)
}

// parseVarDeclBody parses the remainder of a const/var declaration
// after the keyword itself: the name, then either a `->`-introduced
// function/struct/enum body or a plain (type?, init?) variable form.
func (p *Parser) parseVarDeclBody(kw token.Token, public, mutable bool) lumair.Stmt {
	name := p.expect(token.Ident)
	if p.match(token.Arrow) {
		switch p.cur().Kind {
		case token.KwFn:
			return p.parseFuncBody(kw, name.Text, public)
		case token.KwStruct:
			return p.parseStructBody(kw, name.Text, public)
		case token.KwEnum:
			return p.parseEnumBody(kw, name.Text, public)
		}
		p.errorf(p.cur(), "expected fn, struct, or enum after '->', found %s", p.cur().Kind)
		p.synchronize()
		return nil
	}

	var typ lumair.Type
	if p.match(token.Colon) {
		typ = p.parseType()
	}
	var init lumair.Expr
	if p.match(token.Assign) {
		init = p.ParseExpr()
	}
	p.expect(token.Semicolon)
	return lumair.NewVarDecl(p.pool, kw.Pos, name.Text, typ, init, mutable, public)
}

// parseFuncBody parses `fn (params) RetType (Block | ';')`, the body
// of a top-level `const/var name -> fn (...) R { }` declaration. A
// trailing `;` instead of a block marks a forward declaration
// (spec.md §3.1: "no body means forward declaration").
func (p *Parser) parseFuncBody(kw token.Token, name string, public bool) *lumair.FuncDecl {
	p.expect(token.KwFn)
	p.expect(token.LParen)
	var params []string
	var paramTypes []lumair.Type
	var ownership []lumair.Ownership
	for !p.check(token.RParen) && !p.atEnd() {
		pn := p.expect(token.Ident)
		p.expect(token.Colon)
		pt := p.parseType()
		params = append(params, pn.Text)
		paramTypes = append(paramTypes, pt)
		ownership = append(ownership, lumair.OwnDefault)
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	ret := p.parseType()

	var body []lumair.Stmt
	if p.check(token.LBrace) {
		body = p.parseBlock()
	} else {
		p.expect(token.Semicolon)
	}
	return lumair.NewFuncDecl(p.pool, kw.Pos, name, params, paramTypes, ownership, ret, body, public)
}

// parseStructBody parses `struct { member(, member)* }` and the
// optional trailing `;`.
func (p *Parser) parseStructBody(kw token.Token, name string, public bool) lumair.Stmt {
	p.expect(token.KwStruct)
	p.expect(token.LBrace)
	var pub, priv []*lumair.FieldDecl
	for !p.check(token.RBrace) && !p.atEnd() {
		fieldPublic := false
		if p.check(token.KwPub) || p.check(token.KwPriv) {
			fieldPublic = p.cur().Kind == token.KwPub
			p.advance()
		}
		fd := p.parseFieldDecl(fieldPublic)
		if fieldPublic {
			pub = append(pub, fd)
		} else {
			priv = append(priv, fd)
		}
		if !p.match(token.Comma) {
			p.match(token.Semicolon)
		}
	}
	p.expect(token.RBrace)
	p.match(token.Semicolon)
	return lumair.NewStructDecl(p.pool, kw.Pos, name, pub, priv, public)
}

// parseFieldDecl parses one struct member: a data field (`name: T`)
// or, when `(` follows the name, a method (`name(params) -> R { }`)
// attached directly to the struct.
func (p *Parser) parseFieldDecl(public bool) *lumair.FieldDecl {
	t := p.cur()
	name := p.expect(token.Ident)
	if p.check(token.LParen) {
		method := p.parseMethodFunc(t.Pos, name.Text, public)
		return lumair.NewFieldDecl(p.pool, t.Pos, name.Text, nil, method, public)
	}
	p.expect(token.Colon)
	typ := p.parseType()
	return lumair.NewFieldDecl(p.pool, t.Pos, name.Text, typ, nil, public)
}

// parseMethodFunc parses `(params) -> R { body }` given a method's
// name has already been consumed by the caller — the shared shape
// behind both a struct-embedded method and an `impl` block entry.
func (p *Parser) parseMethodFunc(pos token.Position, name string, public bool) *lumair.FuncDecl {
	p.expect(token.LParen)
	var params []string
	var paramTypes []lumair.Type
	var ownership []lumair.Ownership
	for !p.check(token.RParen) && !p.atEnd() {
		pn := p.expect(token.Ident)
		p.expect(token.Colon)
		pt := p.parseType()
		params = append(params, pn.Text)
		paramTypes = append(paramTypes, pt)
		ownership = append(ownership, lumair.OwnDefault)
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	p.expect(token.Arrow)
	ret := p.parseType()
	body := p.parseBlock()
	return lumair.NewFuncDecl(p.pool, pos, name, params, paramTypes, ownership, ret, body, public)
}

// parseEnumBody parses `enum { Member(, Member)* }` and the optional
// trailing `;`.
func (p *Parser) parseEnumBody(kw token.Token, name string, public bool) lumair.Stmt {
	p.expect(token.KwEnum)
	p.expect(token.LBrace)
	var members []string
	for !p.check(token.RBrace) && !p.atEnd() {
		m := p.expect(token.Ident)
		members = append(members, m.Text)
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	p.match(token.Semicolon)
	return lumair.NewEnumDecl(p.pool, kw.Pos, name, members, public)
}
