package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luma-lang/lumac/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenize_KeywordsAndPunctuation(t *testing.T) {
	toks := New("t.lx", "pub const add -> fn (a: int, b: int) int { return a+b; }").Tokenize()
	require.NotEmpty(t, toks)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
	assert.Equal(t, token.KwPub, toks[0].Kind)
	assert.Equal(t, token.KwConst, toks[1].Kind)
	assert.Equal(t, token.Ident, toks[2].Kind)
	assert.Equal(t, "add", toks[2].Text)
	assert.Equal(t, token.Arrow, toks[3].Kind)
	assert.Equal(t, token.KwFn, toks[4].Kind)
}

func TestTokenize_StringEscapesDecodeToRealBytes(t *testing.T) {
	toks := New("t.lx", `"a\nb\tc\\d\"e"`).Tokenize()
	require.Equal(t, token.StringLit, toks[0].Kind)
	assert.Equal(t, "a\nb\tc\\d\"e", toks[0].Text)
}

func TestTokenize_CharEscape(t *testing.T) {
	toks := New("t.lx", `'\n'`).Tokenize()
	require.Equal(t, token.CharLit, toks[0].Kind)
	require.Len(t, toks[0].Text, 1)
	assert.Equal(t, byte('\n'), toks[0].Text[0])
}

func TestTokenize_UnterminatedStringIsIllegal(t *testing.T) {
	toks := New("t.lx", `"abc`).Tokenize()
	assert.Equal(t, token.Illegal, toks[0].Kind)
}

func TestTokenize_ColonColonVsColon(t *testing.T) {
	toks := New("t.lx", "a::b a:b").Tokenize()
	assert.Equal(t, []token.Kind{
		token.Ident, token.ColonColon, token.Ident,
		token.Ident, token.Colon, token.Ident,
		token.EOF,
	}, kinds(toks))
}

func TestTokenize_DotDotVsDot(t *testing.T) {
	toks := New("t.lx", "0..5 a.b").Tokenize()
	assert.Equal(t, []token.Kind{
		token.IntLit, token.DotDot, token.IntLit,
		token.Ident, token.Dot, token.Ident,
		token.EOF,
	}, kinds(toks))
}

func TestTokenize_CommentsAreSkipped(t *testing.T) {
	toks := New("t.lx", "// a comment\nconst /* inline */ x").Tokenize()
	assert.Equal(t, []token.Kind{token.KwConst, token.Ident, token.EOF}, kinds(toks))
}

func TestTokenize_FloatVsIntLit(t *testing.T) {
	toks := New("t.lx", "1 2.5 3.").Tokenize()
	// "3." has no digit after the dot, so the dot is not consumed as
	// part of the number — it lexes as IntLit "3" followed by Dot.
	assert.Equal(t, []token.Kind{
		token.IntLit, token.FloatLit, token.IntLit, token.Dot, token.EOF,
	}, kinds(toks))
}

func TestTokenize_LineColumnTracking(t *testing.T) {
	toks := New("t.lx", "a\nb").Tokenize()
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 2, toks[1].Pos.Line)
}
