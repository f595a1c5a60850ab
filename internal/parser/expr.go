package parser

import (
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/token"
)

// Binding powers for infix/postfix operators, lowest to highest, per
// spec.md §4.1. Call/index/member/postfix-inc-dec sit above every
// binary operator so `a.b(c)[d]` always binds tighter than `+`.
const (
	bpNone = iota
	bpAssign
	bpOr
	bpAnd
	bpBitOr
	bpBitXor
	bpBitAnd
	bpEquality
	bpRelational
	bpRange
	bpShift
	bpAdditive
	bpMultiplicative
	bpPostfix
)

// ParseExpr parses one expression with no minimum binding power (the
// entry point every statement-level production calls).
func (p *Parser) ParseExpr() lumair.Expr {
	return p.parseExpr(bpAssign)
}

func (p *Parser) parseExpr(minBP int) lumair.Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	left = p.parsePostfixChain(left)

	for {
		kind := p.cur().Kind
		if kind == token.Assign {
			if bpAssign < minBP {
				break
			}
			tok := p.advance()
			value := p.parseExpr(bpAssign) // right-associative
			left = lumair.NewAssign(p.pool, tok.Pos, left, value)
			continue
		}
		if kind == token.DotDot {
			if bpRange < minBP {
				break
			}
			tok := p.advance()
			right := p.parseExpr(bpRange + 1)
			left = lumair.NewRange(p.pool, tok.Pos, left, right)
			continue
		}
		bp, op, ok := binaryOp(kind)
		if !ok || bp < minBP {
			break
		}
		tok := p.advance()
		right := p.parseExpr(bp + 1) // every binary op here is left-associative
		left = lumair.NewBinary(p.pool, tok.Pos, op, left, right)
	}
	return left
}

// binaryOp maps a token kind to its binding power and BinaryOp, for
// every operator except assignment and range, which need bespoke
// node types and are handled directly in parseExpr.
func binaryOp(k token.Kind) (bp int, op lumair.BinaryOp, ok bool) {
	switch k {
	case token.PipePipe:
		return bpOr, lumair.OpOr, true
	case token.AmpAmp:
		return bpAnd, lumair.OpAnd, true
	case token.Pipe:
		return bpBitOr, lumair.OpBitOr, true
	case token.Caret:
		return bpBitXor, lumair.OpBitXor, true
	case token.Amp:
		return bpBitAnd, lumair.OpBitAnd, true
	case token.Eq:
		return bpEquality, lumair.OpEq, true
	case token.Ne:
		return bpEquality, lumair.OpNe, true
	case token.Lt:
		return bpRelational, lumair.OpLt, true
	case token.Le:
		return bpRelational, lumair.OpLe, true
	case token.Gt:
		return bpRelational, lumair.OpGt, true
	case token.Ge:
		return bpRelational, lumair.OpGe, true
	case token.Shl:
		return bpShift, lumair.OpShl, true
	case token.Shr:
		return bpShift, lumair.OpShr, true
	case token.Plus:
		return bpAdditive, lumair.OpAdd, true
	case token.Minus:
		return bpAdditive, lumair.OpSub, true
	case token.Star:
		return bpMultiplicative, lumair.OpMul, true
	case token.Slash:
		return bpMultiplicative, lumair.OpDiv, true
	case token.Percent:
		return bpMultiplicative, lumair.OpMod, true
	}
	return 0, 0, false
}

// parsePrefix implements every nud (null-denotation) handler: atoms
// and prefix unary operators.
func (p *Parser) parsePrefix() lumair.Expr {
	t := p.cur()
	switch t.Kind {
	case token.IntLit:
		p.advance()
		return lumair.NewIntLit(p.pool, t.Pos, t.Text)
	case token.FloatLit:
		p.advance()
		return lumair.NewFloatLit(p.pool, t.Pos, t.Text)
	case token.StringLit:
		p.advance()
		return lumair.NewStringLit(p.pool, t.Pos, t.Text)
	case token.CharLit:
		p.advance()
		var b byte
		if len(t.Text) > 0 {
			b = t.Text[0]
		}
		return lumair.NewCharLit(p.pool, t.Pos, b)
	case token.KwTrue:
		p.advance()
		return lumair.NewBoolLit(p.pool, t.Pos, true)
	case token.KwFalse:
		p.advance()
		return lumair.NewBoolLit(p.pool, t.Pos, false)
	case token.KwNull:
		p.advance()
		return lumair.NewNullLit(p.pool, t.Pos)
	case token.Ident:
		p.advance()
		if !p.noStructLit && p.check(token.LBrace) {
			return p.parseStructLitBody(t.Pos, t.Text)
		}
		return lumair.NewIdent(p.pool, t.Pos, t.Text)
	case token.LParen:
		p.advance()
		inner := p.parseExpr(bpAssign)
		p.expect(token.RParen)
		return lumair.NewGrouping(p.pool, t.Pos, inner)
	case token.LBracket:
		return p.parseArrayLit()
	case token.LBrace:
		return p.parseStructLitBody(t.Pos, "")
	case token.Minus:
		p.advance()
		return lumair.NewUnary(p.pool, t.Pos, lumair.OpNeg, p.parseExpr(bpPostfix))
	case token.Bang:
		p.advance()
		return lumair.NewUnary(p.pool, t.Pos, lumair.OpNot, p.parseExpr(bpPostfix))
	case token.Tilde:
		p.advance()
		return lumair.NewUnary(p.pool, t.Pos, lumair.OpBitNot, p.parseExpr(bpPostfix))
	case token.Star:
		p.advance()
		return lumair.NewUnary(p.pool, t.Pos, lumair.OpDeref, p.parseExpr(bpPostfix))
	case token.Amp:
		p.advance()
		return lumair.NewUnary(p.pool, t.Pos, lumair.OpAddr, p.parseExpr(bpPostfix))
	case token.PlusPlus:
		p.advance()
		return lumair.NewUnary(p.pool, t.Pos, lumair.OpPreInc, p.parseExpr(bpPostfix))
	case token.MinusMinus:
		p.advance()
		return lumair.NewUnary(p.pool, t.Pos, lumair.OpPreDec, p.parseExpr(bpPostfix))
	case token.KwSizeof:
		return p.parseSizeof(t)
	case token.KwAlloc:
		p.advance()
		p.expect(token.LParen)
		size := p.parseExpr(bpAssign)
		p.expect(token.RParen)
		return lumair.NewAlloc(p.pool, t.Pos, size)
	case token.KwFree:
		p.advance()
		p.expect(token.LParen)
		ptr := p.parseExpr(bpAssign)
		p.expect(token.RParen)
		return lumair.NewFree(p.pool, t.Pos, ptr)
	case token.KwInput:
		return p.parseInput(t)
	case token.KwSystem:
		p.advance()
		p.expect(token.LParen)
		cmd := p.parseExpr(bpAssign)
		p.expect(token.RParen)
		return lumair.NewSystem(p.pool, t.Pos, cmd)
	case token.KwSyscall:
		p.advance()
		p.expect(token.LParen)
		var args []lumair.Expr
		for !p.check(token.RParen) && !p.atEnd() {
			args = append(args, p.parseExpr(bpAssign))
			if !p.match(token.Comma) {
				break
			}
		}
		p.expect(token.RParen)
		return lumair.NewSyscall(p.pool, t.Pos, args)
	}
	p.errorf(t, "unexpected token %s in expression", t.Kind)
	p.advance()
	return nil
}

// parsePostfixChain applies call/index/member/postfix-inc-dec, which
// all bind tighter than any binary operator and associate left to
// right (`a.b.c`, `a[0][1]`, `f()()`).
func (p *Parser) parsePostfixChain(left lumair.Expr) lumair.Expr {
	for {
		switch p.cur().Kind {
		case token.LParen:
			tok := p.advance()
			var args []lumair.Expr
			for !p.check(token.RParen) && !p.atEnd() {
				args = append(args, p.parseExpr(bpAssign))
				if !p.match(token.Comma) {
					break
				}
			}
			p.expect(token.RParen)
			left = lumair.NewCall(p.pool, tok.Pos, left, args)
		case token.LBracket:
			tok := p.advance()
			idx := p.parseExpr(bpAssign)
			p.expect(token.RBracket)
			left = lumair.NewIndex(p.pool, tok.Pos, left, idx)
		case token.Dot:
			tok := p.advance()
			name := p.expect(token.Ident)
			left = lumair.NewMember(p.pool, tok.Pos, left, name.Text, false)
		case token.ColonColon:
			tok := p.advance()
			name := p.expect(token.Ident)
			left = lumair.NewMember(p.pool, tok.Pos, left, name.Text, true)
		case token.PlusPlus:
			tok := p.advance()
			left = lumair.NewUnary(p.pool, tok.Pos, lumair.OpPostInc, left)
		case token.MinusMinus:
			tok := p.advance()
			left = lumair.NewUnary(p.pool, tok.Pos, lumair.OpPostDec, left)
		case token.KwAs:
			tok := p.advance()
			target := p.parseType()
			left = lumair.NewCast(p.pool, tok.Pos, target, left)
		default:
			return left
		}
	}
}

func (p *Parser) parseArrayLit() lumair.Expr {
	open := p.advance() // '['
	var elems []lumair.Expr
	for !p.check(token.RBracket) && !p.atEnd() {
		elems = append(elems, p.parseExpr(bpAssign))
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket)
	return lumair.NewArrayLit(p.pool, open.Pos, elems)
}

// parseStructLitBody parses `{ name: value, ... }` once the opening
// brace has been reached; name is the (possibly empty) struct name
// already consumed by the caller.
func (p *Parser) parseStructLitBody(pos token.Position, name string) lumair.Expr {
	p.expect(token.LBrace)
	var fields []lumair.StructFieldInit
	for !p.check(token.RBrace) && !p.atEnd() {
		fname := p.expect(token.Ident)
		p.expect(token.Colon)
		val := p.parseExpr(bpAssign)
		fields = append(fields, lumair.StructFieldInit{Name: fname.Text, Value: val})
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return lumair.NewStructLit(p.pool, pos, name, fields)
}

func (p *Parser) parseSizeof(t token.Token) lumair.Expr {
	p.advance()
	p.expect(token.LParen)
	// Disambiguate `sizeof(T)` from `sizeof(expr)`: a leading type
	// keyword or `*`/`[` that only makes sense as a type starts a type;
	// otherwise parse an expression. A bare identifier is ambiguous
	// with both a type name and a variable — spec.md treats `sizeof`
	// as local and type-directed, so a bare identifier parses as a type
	// (the common case: sizeof(int), sizeof(MyStruct)).
	if p.looksLikeType() {
		ty := p.parseType()
		p.expect(token.RParen)
		return lumair.NewSizeofType(p.pool, t.Pos, ty)
	}
	e := p.parseExpr(bpAssign)
	p.expect(token.RParen)
	return lumair.NewSizeofExpr(p.pool, t.Pos, e)
}

func (p *Parser) parseInput(t token.Token) lumair.Expr {
	p.advance()
	p.expect(token.LParen)
	ty := p.parseType()
	var prompt lumair.Expr
	if p.match(token.Comma) {
		prompt = p.parseExpr(bpAssign)
	}
	p.expect(token.RParen)
	return lumair.NewInput(p.pool, t.Pos, ty, prompt)
}

// looksLikeType reports whether the cursor is positioned at something
// that can only be a type, not an expression: a primitive keyword,
// `*` (pointer), or `[` (array). A bare identifier is treated as a
// type name too since sizeof has no other use for one.
func (p *Parser) looksLikeType() bool {
	switch p.cur().Kind {
	case token.KwInt, token.Star, token.LBracket, token.Ident:
		return true
	}
	return false
}
