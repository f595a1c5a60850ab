package emit

import (
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
)

// emitExpr dispatches one expression to its handler and returns the
// backend value it produces.
func (e *Emitter) emitExpr(expr lumair.Expr) ir.Value {
	switch n := expr.(type) {
	case *lumair.IntLit:
		return constant.NewInt(lltypes.I64, e.constIntValue(n))
	case *lumair.FloatLit:
		f, _ := strconv.ParseFloat(n.Value, 64)
		return constant.NewFloat(lltypes.Double, f)
	case *lumair.BoolLit:
		if n.Value {
			return constant.NewInt(lltypes.I1, 1)
		}
		return constant.NewInt(lltypes.I1, 0)
	case *lumair.CharLit:
		return constant.NewInt(lltypes.I8, int64(n.Value))
	case *lumair.StringLit:
		return e.emitStringLit(n.Value)
	case *lumair.NullLit:
		return constant.NewNull(i8ptr)
	case *lumair.Ident:
		return e.emitIdentLoad(n)
	case *lumair.Binary:
		return e.emitBinary(n)
	case *lumair.Unary:
		return e.emitUnary(n)
	case *lumair.Call:
		return e.emitCall(n)
	case *lumair.Assign:
		return e.emitAssign(n)
	case *lumair.Index:
		return e.emitIndex(n)
	case *lumair.Member:
		return e.resolveMember(n, false)
	case *lumair.Grouping:
		return e.emitExpr(n.Inner)
	case *lumair.ArrayLit:
		return e.emitArrayLit(n)
	case *lumair.StructLit:
		return e.emitStructLit(n)
	case *lumair.Cast:
		return e.emitCast(n)
	case *lumair.Sizeof:
		return e.emitSizeof(n)
	case *lumair.Alloc:
		return e.emitAlloc(n)
	case *lumair.Free:
		return e.emitFree(n)
	case *lumair.Input:
		return e.emitInput(n)
	case *lumair.System:
		return e.emitSystem(n)
	case *lumair.Syscall:
		return e.emitSyscall(n)
	case *lumair.Range:
		return e.emitRange(n)
	default:
		e.Sink.Errorf(diag.TypeError, expr.Pos(), e.File, "", "unhandled expression %T", expr)
		return constant.NewInt(lltypes.I64, 0)
	}
}

func (e *Emitter) emitIdentLoad(n *lumair.Ident) ir.Value {
	sym := e.lookupSymbol(n.Name)
	if sym == nil {
		e.Sink.Errorf(diag.UndefinedSymbol, n.Pos(), e.File,
			e.suggestName(n.Name), "undefined identifier %q", n.Name)
		return constant.NewInt(lltypes.I64, 0)
	}
	if sym.IsFunc || sym.Value == nil {
		return sym.Value
	}
	if ptr, ok := sym.Value.(*ir.InstAlloca); ok {
		return e.fn.block.NewLoad(ptr.ElemType, ptr)
	}
	if g, ok := sym.Value.(*ir.Global); ok {
		return e.fn.block.NewLoad(g.ContentType, g)
	}
	return sym.Value
}

func (e *Emitter) suggestName(name string) string {
	var names []string
	for _, s := range e.Mod.Symbols.All() {
		names = append(names, s.Name)
	}
	if m := diag.ClosestMatch(name, names); m != "" {
		return "did you mean \"" + m + "\"?"
	}
	return ""
}

// emitBinary determines "floating-point operation" by the kind of
// either operand, promoting the integer side (signed int-to-float)
// and the lower-precision float side (float-to-double) before
// emitting the FP or integer variant of the operator.
func (e *Emitter) emitBinary(n *lumair.Binary) ir.Value {
	if n.Op == lumair.OpRange {
		return e.emitRange(&lumair.Range{Start: n.Left, End: n.Right})
	}
	l := e.emitExpr(n.Left)
	r := e.emitExpr(n.Right)

	fp := isFloatType(l.Type()) || isFloatType(r.Type())
	if fp {
		l = e.toFloat(l)
		r = e.toFloat(r)
		if l.Type() != r.Type() {
			l, r = e.matchFloatWidth(l, r)
		}
	}

	switch n.Op {
	case lumair.OpAdd:
		if fp {
			return e.fn.block.NewFAdd(l, r)
		}
		return e.fn.block.NewAdd(l, r)
	case lumair.OpSub:
		if fp {
			return e.fn.block.NewFSub(l, r)
		}
		return e.fn.block.NewSub(l, r)
	case lumair.OpMul:
		if fp {
			return e.fn.block.NewFMul(l, r)
		}
		return e.fn.block.NewMul(l, r)
	case lumair.OpDiv:
		if fp {
			return e.fn.block.NewFDiv(l, r)
		}
		return e.fn.block.NewSDiv(l, r)
	case lumair.OpMod:
		if fp {
			return e.emitFloatMod(l, r)
		}
		return e.fn.block.NewSRem(l, r)
	case lumair.OpEq, lumair.OpNe, lumair.OpLt, lumair.OpLe, lumair.OpGt, lumair.OpGe:
		return e.emitCompare(n.Op, l, r, fp)
	case lumair.OpAnd:
		return e.fn.block.NewAnd(e.coerceBool(l), e.coerceBool(r))
	case lumair.OpOr:
		return e.fn.block.NewOr(e.coerceBool(l), e.coerceBool(r))
	case lumair.OpBitAnd, lumair.OpBitOr, lumair.OpBitXor, lumair.OpShl, lumair.OpShr:
		if fp {
			e.Sink.Errorf(diag.IncompatibleTypes, n.Pos(), e.File, "",
				"bitwise/shift operators require integer operands")
			return constant.NewInt(lltypes.I64, 0)
		}
		return e.emitBitwise(n.Op, l, r)
	}
	e.Sink.Errorf(diag.TypeError, n.Pos(), e.File, "", "unhandled binary operator")
	return constant.NewInt(lltypes.I64, 0)
}

func (e *Emitter) emitCompare(op lumair.BinaryOp, l, r ir.Value, fp bool) ir.Value {
	if fp {
		var p enum.FPred
		switch op {
		case lumair.OpEq:
			p = enum.FPredOEQ
		case lumair.OpNe:
			p = enum.FPredONE
		case lumair.OpLt:
			p = enum.FPredOLT
		case lumair.OpLe:
			p = enum.FPredOLE
		case lumair.OpGt:
			p = enum.FPredOGT
		default:
			p = enum.FPredOGE
		}
		return e.fn.block.NewFCmp(p, l, r)
	}
	var p enum.IPred
	switch op {
	case lumair.OpEq:
		p = enum.IPredEQ
	case lumair.OpNe:
		p = enum.IPredNE
	case lumair.OpLt:
		p = enum.IPredSLT
	case lumair.OpLe:
		p = enum.IPredSLE
	case lumair.OpGt:
		p = enum.IPredSGT
	default:
		p = enum.IPredSGE
	}
	return e.fn.block.NewICmp(p, l, r)
}

func (e *Emitter) emitBitwise(op lumair.BinaryOp, l, r ir.Value) ir.Value {
	switch op {
	case lumair.OpBitAnd:
		return e.fn.block.NewAnd(l, r)
	case lumair.OpBitOr:
		return e.fn.block.NewOr(l, r)
	case lumair.OpBitXor:
		return e.fn.block.NewXor(l, r)
	case lumair.OpShl:
		return e.fn.block.NewShl(l, r)
	default:
		return e.fn.block.NewAShr(l, r)
	}
}

// emitFloatMod synthesizes `a - b*floor(a/b)` using a lazily declared
// floor intrinsic, since the backend's arithmetic instructions have
// no floating-point remainder op.
func (e *Emitter) emitFloatMod(l, r ir.Value) ir.Value {
	floor := e.lazyFloor()
	div := e.fn.block.NewFDiv(l, r)
	fl := e.fn.block.NewCall(floor, div)
	return e.fn.block.NewFSub(l, e.fn.block.NewFMul(r, fl))
}

func (e *Emitter) emitUnary(n *lumair.Unary) ir.Value {
	switch n.Op {
	case lumair.OpNeg:
		v := e.emitExpr(n.Operand)
		if isFloatType(v.Type()) {
			return e.fn.block.NewFNeg(v)
		}
		return e.fn.block.NewSub(constant.NewInt(v.Type().(*lltypes.IntType), 0), v)
	case lumair.OpNot:
		return e.fn.block.NewXor(e.coerceBool(e.emitExpr(n.Operand)), constant.NewInt(lltypes.I1, 1))
	case lumair.OpBitNot:
		v := e.emitExpr(n.Operand)
		return e.fn.block.NewXor(v, constant.NewInt(v.Type().(*lltypes.IntType), -1))
	case lumair.OpDeref:
		v := e.emitExpr(n.Operand)
		pt, ok := v.Type().(*lltypes.PointerType)
		if !ok {
			e.Sink.Errorf(diag.InvalidAssignment, n.Pos(), e.File, "", "cannot dereference a non-pointer")
			return constant.NewInt(lltypes.I64, 0)
		}
		return e.fn.block.NewLoad(pt.ElemType, v)
	case lumair.OpAddr:
		return e.addressOf(n.Operand)
	case lumair.OpPreInc, lumair.OpPreDec, lumair.OpPostInc, lumair.OpPostDec:
		return e.emitIncDec(n)
	}
	e.Sink.Errorf(diag.TypeError, n.Pos(), e.File, "", "unhandled unary operator")
	return constant.NewInt(lltypes.I64, 0)
}

// emitIncDec requires an identifier lvalue: load, add/sub one, store,
// and return either the pre- or post-value per the operator.
func (e *Emitter) emitIncDec(n *lumair.Unary) ir.Value {
	ident, ok := n.Operand.(*lumair.Ident)
	if !ok {
		e.Sink.Errorf(diag.InvalidAssignment, n.Pos(), e.File, "",
			"increment/decrement requires an identifier operand")
		return constant.NewInt(lltypes.I64, 0)
	}
	sym := e.lookupSymbol(ident.Name)
	if sym == nil {
		e.Sink.Errorf(diag.UndefinedSymbol, n.Pos(), e.File, "", "undefined identifier %q", ident.Name)
		return constant.NewInt(lltypes.I64, 0)
	}
	old := e.emitIdentLoad(ident)
	one := constant.NewInt(old.Type().(*lltypes.IntType), 1)
	var updated ir.Value
	if n.Op == lumair.OpPreInc || n.Op == lumair.OpPostInc {
		updated = e.fn.block.NewAdd(old, one)
	} else {
		updated = e.fn.block.NewSub(old, one)
	}
	e.fn.block.NewStore(updated, sym.Value)
	if n.Op == lumair.OpPreInc || n.Op == lumair.OpPreDec {
		return updated
	}
	return old
}

func (e *Emitter) addressOf(expr lumair.Expr) ir.Value {
	switch n := expr.(type) {
	case *lumair.Ident:
		sym := e.lookupSymbol(n.Name)
		if sym == nil {
			e.Sink.Errorf(diag.UndefinedSymbol, n.Pos(), e.File, "", "undefined identifier %q", n.Name)
			return constant.NewNull(i8ptr)
		}
		return sym.Value
	default:
		e.Sink.Errorf(diag.InvalidAssignment, expr.Pos(), e.File, "", "cannot take the address of this expression")
		return constant.NewNull(i8ptr)
	}
}
