package emit

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/types"
)

// emitStmt dispatches one statement to its handler. Module/Use are
// handled by the caller (internal/modgraph and Emitter.EmitModuleBody)
// and never reach this switch.
func (e *Emitter) emitStmt(stmt lumair.Stmt) {
	switch s := stmt.(type) {
	case *lumair.ExprStmt:
		e.emitExpr(s.Expression)
	case *lumair.VarDecl:
		e.emitVarDecl(s)
	case *lumair.Return:
		e.emitReturn(s)
	case *lumair.Block:
		for _, inner := range s.Body {
			e.emitStmt(inner)
		}
	case *lumair.If:
		e.emitIf(s)
	case *lumair.Loop:
		e.emitLoop(s)
	case *lumair.Switch:
		e.emitSwitch(s)
	case *lumair.Break:
		e.emitBreak(s)
	case *lumair.Continue:
		e.emitContinue(s)
	case *lumair.Defer:
		e.fn.defers = append(e.fn.defers, s.Body) // pushed only, never emitted here
	case *lumair.Print:
		e.emitPrint(s)
	case *lumair.FuncDecl, *lumair.StructDecl, *lumair.EnumDecl, *lumair.Impl, *lumair.Use:
		// Nested declarations are not part of the language; top-level-only
		// forms reach here solely through a malformed tree.
		e.Sink.Errorf(diag.SyntaxError, stmt.Pos(), e.File, "", "declaration not permitted in statement position")
	default:
		e.Sink.Errorf(diag.SyntaxError, stmt.Pos(), e.File, "", "unhandled statement %T", stmt)
	}
}

// emitVarDecl emits a function-local declaration as an alloca; when no
// function is being emitted (a file-scope VarDecl) it forwards to
// emitGlobalVarDecl (globals.go), since the data model treats the two
// as different backend shapes (alloca vs. global).
func (e *Emitter) emitVarDecl(s *lumair.VarDecl) {
	if e.fn == nil {
		e.emitGlobalVarDecl(s)
		return
	}
	var bt, et lltypes.Type
	if s.Type != nil {
		bt, et = e.resolveType(s.Type)
	}
	var init ir.Value
	if s.Init != nil {
		init = e.emitExpr(s.Init)
		if bt == nil {
			bt = init.Type()
		}
		init = e.coerce(init, bt)
	}
	if bt == nil {
		e.Sink.Errorf(diag.TypeError, s.Pos(), e.File, "",
			"cannot infer type of %q without an initializer", s.Name)
		return
	}
	alloca := e.fn.block.NewAlloca(bt)
	alloca.SetName(s.Name)
	if init != nil {
		e.fn.block.NewStore(init, alloca)
	}
	sym := &types.Symbol{Name: s.Name, Value: alloca, Type: bt, ElemType: et}
	e.fn.locals.Insert(sym)
}

func (e *Emitter) emitReturn(s *lumair.Return) {
	var val ir.Value
	if s.Value != nil {
		val = e.coerce(e.emitExpr(s.Value), e.fn.llfn.Sig.RetType)
	}
	e.emitReturnEpilogue(val)
}

func (e *Emitter) emitIf(s *lumair.If) {
	fn := e.fn.llfn
	merge := fn.NewBlock("")

	branches := append([]lumair.ElifClause{{Condition: s.Condition, Body: s.Body}}, s.Elifs...)
	for i, br := range branches {
		cond := e.coerceBool(e.emitExpr(br.Condition))
		then := fn.NewBlock("")
		var next *ir.Block
		if i == len(branches)-1 {
			if s.Else != nil {
				next = fn.NewBlock("")
			} else {
				next = merge
			}
		} else {
			next = fn.NewBlock("")
		}
		e.fn.block.NewCondBr(cond, then, next)

		e.fn.block = then
		for _, st := range br.Body {
			e.emitStmt(st)
		}
		if e.fn.block.Term == nil {
			e.fn.block.NewBr(merge)
		}
		e.fn.block = next
	}
	if s.Else != nil {
		for _, st := range s.Else {
			e.emitStmt(st)
		}
		if e.fn.block.Term == nil {
			e.fn.block.NewBr(merge)
		}
	}
	e.fn.block = merge
}

func (e *Emitter) emitLoop(s *lumair.Loop) {
	fn := e.fn.llfn

	if s.Kind == lumair.LoopFor {
		for _, init := range s.Init {
			e.emitStmt(init)
		}
	}

	cond := fn.NewBlock("")
	body := fn.NewBlock("")
	post := fn.NewBlock("")
	after := fn.NewBlock("")

	e.fn.block.NewBr(cond)

	e.fn.block = cond
	switch {
	case s.Kind == lumair.LoopInfinite || s.Condition == nil:
		e.fn.block.NewBr(body)
	default:
		c := e.coerceBool(e.emitExpr(s.Condition))
		e.fn.block.NewCondBr(c, body, after)
	}

	// break targets `after`; continue targets `post` so for-loop
	// post-expressions always run (spec.md §4.3 "Loop (three forms)").
	e.fn.breakTo = append(e.fn.breakTo, after)
	e.fn.contTo = append(e.fn.contTo, post)

	e.fn.block = body
	for _, st := range s.Body {
		e.emitStmt(st)
	}
	if e.fn.block.Term == nil {
		e.fn.block.NewBr(post)
	}

	e.fn.block = post
	if s.Kind == lumair.LoopFor && s.Post != nil {
		e.emitExpr(s.Post)
	}
	if e.fn.block.Term == nil {
		e.fn.block.NewBr(cond)
	}

	e.fn.breakTo = e.fn.breakTo[:len(e.fn.breakTo)-1]
	e.fn.contTo = e.fn.contTo[:len(e.fn.contTo)-1]
	e.fn.block = after
}

func (e *Emitter) emitSwitch(s *lumair.Switch) {
	fn := e.fn.llfn
	cond := e.emitExpr(s.Condition)
	merge := fn.NewBlock("")

	var defaultBlock *ir.Block
	if s.Default != nil {
		defaultBlock = fn.NewBlock("")
	} else {
		defaultBlock = merge
	}

	var cases []*ir.Case
	var caseBlocks []*ir.Block
	var caseBodies [][]lumair.Stmt
	for _, c := range s.Cases {
		blk := fn.NewBlock("")
		for _, v := range c.Values {
			cv := e.constExprValue(v)
			cases = append(cases, ir.NewCase(cv, blk))
		}
		caseBlocks = append(caseBlocks, blk)
		caseBodies = append(caseBodies, c.Body)
	}
	e.fn.block.NewSwitch(cond, defaultBlock, cases...)

	for i, blk := range caseBlocks {
		e.fn.block = blk
		for _, st := range caseBodies[i] {
			e.emitStmt(st)
		}
		if e.fn.block.Term == nil {
			e.fn.block.NewBr(merge)
		}
	}
	if s.Default != nil {
		e.fn.block = defaultBlock
		for _, st := range s.Default.Body {
			e.emitStmt(st)
		}
		if e.fn.block.Term == nil {
			e.fn.block.NewBr(merge)
		}
	}
	e.fn.block = merge
}

func (e *Emitter) emitBreak(s *lumair.Break) {
	if len(e.fn.breakTo) == 0 {
		e.Sink.Errorf(diag.SyntaxError, s.Pos(), e.File, "", "break outside a loop")
		return
	}
	e.fn.block.NewBr(e.fn.breakTo[len(e.fn.breakTo)-1])
}

func (e *Emitter) emitContinue(s *lumair.Continue) {
	if len(e.fn.contTo) == 0 {
		e.Sink.Errorf(diag.SyntaxError, s.Pos(), e.File, "", "continue outside a loop")
		return
	}
	e.fn.block.NewBr(e.fn.contTo[len(e.fn.contTo)-1])
}

// constExprValue evaluates a switch-case value, which must be an
// integer/char literal or an enum member — anything else is a
// diagnostic (spec.md's "Switch" case-value constraint).
func (e *Emitter) constExprValue(expr lumair.Expr) *constant.Int {
	switch n := expr.(type) {
	case *lumair.IntLit:
		v := e.constIntValue(n)
		return constant.NewInt(lltypes.I64, v)
	case *lumair.CharLit:
		return constant.NewInt(lltypes.I8, int64(n.Value))
	case *lumair.Member:
		if n.IsCompileTime {
			if ident, ok := n.Object.(*lumair.Ident); ok {
				if en := e.Mod.Enums.Lookup(ident.Name); en != nil {
					ord := en.Ordinal(n.Name)
					if ord >= 0 {
						return constant.NewInt(lltypes.I64, int64(ord))
					}
				}
			}
		}
	}
	e.Sink.Errorf(diag.TypeError, expr.Pos(), e.File, "",
		"case value must be a compile-time integer, char, or enum member")
	return constant.NewInt(lltypes.I64, 0)
}
