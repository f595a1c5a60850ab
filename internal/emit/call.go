package emit

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/luma-lang/lumac/internal/diag"
	lumair "github.com/luma-lang/lumac/internal/ir"
	"github.com/luma-lang/lumac/internal/types"
)

// emitCall handles the two call shapes: a method call (callee is a
// runtime member access on a struct value) looks up the method under
// its qualified "Struct.method" name in the current module (a bare
// method name is not looked up) and emits the call with the receiver
// prepended as
// argument 0; a regular call evaluates the callee expression directly
// to a function value. spec.md assumes an external type-checking pass
// has already inserted the receiver before the emitter runs; since
// that pass is out of scope here, this emitter performs the insertion
// itself at the one call site that would otherwise need it.
func (e *Emitter) emitCall(n *lumair.Call) ir.Value {
	var callee ir.Value
	var self ir.Value

	if member, ok := n.Callee.(*lumair.Member); ok && !member.IsCompileTime {
		callee = e.resolveMember(member, true)
		if info := e.structInfoOfExpr(member.Object); info != nil {
			if sym := e.Mod.Symbols.Lookup(info.Name + "." + member.Name); sym != nil && sym.IsFunc {
				self, _ = e.structReceiver(member.Object)
			}
		}
	} else {
		callee = e.emitExpr(n.Callee)
	}

	fn, ok := callee.(*ir.Func)
	if !ok {
		e.Sink.Errorf(diag.TypeError, n.Pos(), e.File, "", "callee does not name a function")
		return constant.NewInt(lltypes.I64, 0)
	}

	var args []ir.Value
	if self != nil {
		args = append(args, self)
	}
	for _, a := range n.Args {
		args = append(args, e.emitExpr(a))
	}
	for i := range args {
		if i < len(fn.Params) {
			args[i] = e.coerce(args[i], fn.Params[i].Typ)
		}
	}
	return e.fn.block.NewCall(fn, args...)
}

// structInfoOfExpr is structInfoOf generalized to an arbitrary
// expression rather than an already-resolved Symbol.
func (e *Emitter) structInfoOfExpr(expr lumair.Expr) *types.StructInfo {
	if ident, ok := expr.(*lumair.Ident); ok {
		if sym := e.lookupSymbol(ident.Name); sym != nil {
			return e.structInfoOf(sym)
		}
	}
	return nil
}
