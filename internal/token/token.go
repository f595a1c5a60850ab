// Package token defines the token kinds and shared position type used
// across the lexer, parser, IR, and diagnostic sink, so every layer
// tracks source locations the same way.
package token

import mtoken "modernc.org/token"

// Position is a 1-based line/column location in one source file.
// Synthetic nodes (those with no direct source origin) carry a zero
// Position rather than omitting it.
type Position = mtoken.Position

// Kind identifies the lexical category of a token.
type Kind int

const (
	EOF Kind = iota
	Illegal

	Ident
	IntLit
	FloatLit
	StringLit
	CharLit

	// Keywords
	KwConst
	KwVar
	KwPub
	KwPriv
	KwFn
	KwStruct
	KwEnum
	KwIf
	KwElif
	KwElse
	KwLoop
	KwWhile
	KwFor
	KwSwitch
	KwCase
	KwDefault
	KwBreak
	KwContinue
	KwReturn
	KwDefer
	KwUse
	KwAs
	KwTrue
	KwFalse
	KwNull
	KwInt
	KwSizeof
	KwAlloc
	KwFree
	KwInput
	KwSystem
	KwSyscall
	KwPrint
	KwPrintln
	KwImpl

	// Punctuation / operators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	ColonColon
	Arrow
	Dot
	DotDot

	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	AmpAmp
	Pipe
	PipePipe
	Caret
	Tilde
	Bang
	Shl
	Shr

	Eq
	Ne
	Lt
	Le
	Gt
	Ge

	PlusPlus
	MinusMinus
)

// Token is one lexical unit: its kind, literal text, and source
// position. Synthetic tokens built by a desugaring pass carry a zero
// Position, same as synthetic IR nodes.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

var keywords = map[string]Kind{
	"const": KwConst, "var": KwVar, "pub": KwPub, "priv": KwPriv,
	"fn": KwFn, "struct": KwStruct, "enum": KwEnum,
	"if": KwIf, "elif": KwElif, "else": KwElse,
	"loop": KwLoop, "while": KwWhile, "for": KwFor,
	"switch": KwSwitch, "case": KwCase, "default": KwDefault,
	"break": KwBreak, "continue": KwContinue, "return": KwReturn,
	"defer": KwDefer, "use": KwUse, "as": KwAs,
	"true": KwTrue, "false": KwFalse, "null": KwNull,
	"sizeof": KwSizeof, "alloc": KwAlloc, "free": KwFree,
	"input": KwInput, "system": KwSystem, "syscall": KwSyscall,
	"print": KwPrint, "println": KwPrintln, "impl": KwImpl,
	"int": KwInt,
}

// Lookup returns the keyword Kind for text and true, or the zero Kind
// (EOF) and false when text is an ordinary identifier.
func Lookup(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}

// String renders a kind for diagnostics and tests.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

var kindNames = map[Kind]string{
	EOF: "EOF", Illegal: "illegal token",
	Ident: "identifier", IntLit: "integer literal", FloatLit: "float literal",
	StringLit: "string literal", CharLit: "char literal",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Comma: ",", Semicolon: ";",
	Colon: ":", ColonColon: "::", Arrow: "->", Dot: ".", DotDot: "..",
	Assign: "=", Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Amp: "&", AmpAmp: "&&", Pipe: "|", PipePipe: "||", Caret: "^", Tilde: "~",
	Bang: "!", Shl: "<<", Shr: ">>",
	Eq: "==", Ne: "!=", Lt: "<", Le: "<=", Gt: ">", Ge: ">=",
	PlusPlus: "++", MinusMinus: "--",
}
