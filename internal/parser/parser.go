// Package parser implements the Pratt-style expression parser and
// recursive-descent statement/type parser described in spec.md §4.1:
// given one file's flat token stream, it produces a single IR module
// tree, never mutating the token slice, only advancing a cursor.
//
// Syntax errors are recorded on the sink and the parser skips forward
// to the next likely statement boundary rather than aborting, so a
// caller sees every syntax error in a file in one pass (spec.md §4.1
// "Error handling").
package parser

import (
	"github.com/luma-lang/lumac/internal/arena"
	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/token"
)

// Parser holds one file's token stream and a cursor into it. A
// Parser is used exactly once, for one file.
type Parser struct {
	file string
	toks []token.Token
	pos  int
	pool *arena.Pool
	sink *diag.Sink

	// noStructLit suppresses `Ident{` struct-literal recognition while
	// parsing an if/while/for/switch condition, where the brace instead
	// opens the following block — the same ambiguity C-family languages
	// resolve the same way.
	noStructLit bool
}

// New returns a Parser for file's token stream. pool is the shared
// arena every IR node in the whole compilation is allocated from;
// sink accumulates every diagnostic raised while parsing.
func New(pool *arena.Pool, sink *diag.Sink, file string, toks []token.Token) *Parser {
	return &Parser{file: file, toks: toks, pool: pool, sink: sink}
}

// ParseModule parses the entire token stream as one module's body and
// returns the resulting *ir.Module named name. The module's own
// Position is synthetic (0,0): a module has no single originating
// token, it's the file itself.
func (p *Parser) ParseModule(name string) *lumair.Module {
	var body []lumair.Stmt
	for !p.atEnd() {
		if p.check(token.Semicolon) {
			p.advance() // tolerate stray statement-terminators between declarations
			continue
		}
		stmt := p.parseTopLevel()
		if stmt != nil {
			body = append(body, stmt)
		}
	}
	return lumair.NewModule(p.pool, token.Position{Filename: p.file}, name, body)
}

// --- cursor primitives ---

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(off int) token.Token {
	idx := p.pos + off
	if idx >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[idx]
}

func (p *Parser) atEnd() bool { return p.cur().Kind == token.EOF }

func (p *Parser) check(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) checkAt(off int, k token.Kind) bool { return p.peekAt(off).Kind == k }

// advance consumes and returns the current token, never stepping past EOF.
func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

// match consumes the current token and returns true if it has kind k.
func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it has kind k, else records a
// SyntaxError diagnostic and returns the current token unconsumed so
// callers can keep trying to make forward progress.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.check(k) {
		return p.advance()
	}
	t := p.cur()
	p.errorf(t, "expected %s, found %s", k, t.Kind)
	return t
}

func (p *Parser) errorf(t token.Token, format string, args ...any) {
	p.sink.Errorf(diag.SyntaxError, t.Pos, p.file, "", format, args...)
}

// synchronize skips tokens until a plausible statement boundary
// (a semicolon, or a closing brace, or a token that starts a new
// top-level declaration) so one malformed statement doesn't cascade
// into spurious errors for the rest of the file.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		if p.cur().Kind == token.Semicolon {
			p.advance()
			return
		}
		switch p.cur().Kind {
		case token.RBrace, token.KwConst, token.KwVar, token.KwPub, token.KwPriv, token.KwUse, token.KwImpl:
			return
		}
		p.advance()
	}
}
