package elaborate

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"minispec/internal/ast"
	"minispec/internal/diag"
	"minispec/internal/value"
)

// evalExpr computes the elaboration-time Value of an expression without
// touching the output buffer. Statement-level code (stmt.go, decl.go)
// decides separately how to emit each Value's Kind; evalExpr only folds.
func (e *Elaborator) evalExpr(n ast.Expr) value.Value {
	switch n := n.(type) {
	case *ast.IntLiteral:
		return e.evalIntLiteral(n)
	case *ast.StrLiteral:
		return value.None
	case *ast.BoolLiteral:
		return value.Bool(n.Value)
	case *ast.VarExpr:
		return e.evalVarExpr(n)
	case *ast.UnaryExpr:
		return e.applyUnary(n, e.evalExpr(n.Arg))
	case *ast.BinaryExpr:
		return e.applyBinary(n, e.evalExpr(n.Left), e.evalExpr(n.Right))
	case *ast.CondExpr:
		return e.evalCondExpr(n)
	case *ast.CallExpr:
		return e.evalCallExpr(n)
	case *ast.FieldExpr:
		return value.None
	case *ast.CaseExpr:
		return e.evalCaseExpr(n)
	default:
		return value.None
	}
}

// evalIntLiteral folds an unsized literal (bare decimal, or a leading
// 'd/'b/'h base prefix with no width) into Int64. A sized literal (a
// decimal width immediately followed by an apostrophe, e.g. 8'hFF) is left
// for the backend: evalExpr reports None so callers fall back to raw text.
func (e *Elaborator) evalIntLiteral(n *ast.IntLiteral) value.Value {
	text := n.Text
	if text == "" {
		return value.None
	}
	if text[0] == '\'' {
		if len(text) < 2 {
			return value.None
		}
		var base int
		switch text[1] {
		case 'd':
			base = 10
		case 'b':
			base = 2
		case 'h':
			base = 16
		default:
			return value.None
		}
		v, err := strconv.ParseInt(text[2:], base, 64)
		if err != nil {
			return e.errValue(diag.ElabNonElaborated, n, "malformed integer literal %q", text)
		}
		return value.Int(v)
	}
	if strings.ContainsRune(text, '\'') {
		// A sized literal (N'b..., N'h..., N'd...): the backend parses
		// and widens this itself, never elaborated here.
		return value.None
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return value.None
	}
	return value.Int(v)
}

// evalVarExpr implements the "variable reference (no params)" rule: the
// True/False keywords fold to Bool, an Integer-context name resolves
// through intctx (propagating its uninitialized/poisoned error), a
// non-integer name elaborates to None (its raw text is emitted unchanged),
// and a bound type parameter resolves to its ParametricUse.
func (e *Elaborator) evalVarExpr(n *ast.VarExpr) value.Value {
	switch n.Name {
	case "True":
		return value.Bool(true)
	case "False":
		return value.Bool(false)
	}
	if isInt, found := e.Ctx.IsInteger(n.Name); found {
		if !isInt {
			return value.None
		}
		v, _, err := e.Ctx.Get(n.Name)
		if err != nil {
			code := diag.ElabUninitialized
			if strings.Contains(err.Error(), "conditional branch") {
				code = diag.ElabPoisoned
			}
			return e.errValue(code, n, "%s", err.Error())
		}
		return v
	}
	if use, ok := e.Ctx.GetType(n.Name); ok {
		return value.FromUse(use)
	}
	return value.None
}

// evalCondExpr implements single-side elaboration: the untaken branch is
// never evaluated at all, so any error it would have raised simply never
// happens. A foldable taken branch propagates its Value directly; an
// unfoldable one is wrapped as a TranslatedFragment of its own raw text so
// the emitter splices just that sub-tree rather than the whole ternary.
func (e *Elaborator) evalCondExpr(n *ast.CondExpr) value.Value {
	c := e.evalExpr(n.Cond)
	if c.IsError() {
		return c
	}
	if !c.IsBool() {
		return value.None
	}
	taken := n.Else
	if c.Bool {
		taken = n.Then
	}
	tv := e.evalExpr(taken)
	if tv.IsError() || tv.IsInt() || tv.IsBool() || tv.IsParametric() || tv.IsSkip() {
		return tv
	}
	text := e.text(taken)
	return value.FromFragment(&value.Fragment{
		Text:       text,
		SrcEntries: []value.SrcEntry{{Start: 0, End: uint32(len(text)), Node: taken}},
	})
}

// evalCallExpr covers two shapes: the log2 intrinsic, and a bare
// parametric reference Name#(params) with no value arguments, which
// constructs a ParametricUse fingerprint for the driver worklist. Any other
// call (a user function invocation, a submodule constructor with value
// arguments) is left unfolded; its arguments are still visited so any
// Integer-context error inside them is still reported.
func (e *Elaborator) evalCallExpr(n *ast.CallExpr) value.Value {
	if n.Callee == "log2" && len(n.Args) == 1 && len(n.TypeArgs) == 0 {
		return e.evalLog2(n)
	}
	for _, a := range n.Args {
		if v := e.evalExpr(a); v.IsError() {
			return v
		}
	}
	if len(n.TypeArgs) > 0 && len(n.Args) == 0 {
		use, ok := e.buildParametricUse(n.Callee, false, n.TypeArgs)
		if !ok {
			return value.None
		}
		return value.FromUse(use)
	}
	return value.None
}

func (e *Elaborator) evalLog2(n *ast.CallExpr) value.Value {
	v := e.evalExpr(n.Args[0])
	if v.IsError() {
		return v
	}
	if !v.IsInt() {
		return value.None
	}
	if v.Int < 0 {
		return e.errValue(diag.ElabBadUnaryOperand, n, "log2 requires a non-negative Integer argument")
	}
	return value.Int(log2Of(v.Int))
}

// buildParametricUse elaborates each type-argument expression into a
// ParamValue, escaping the resulting identifier if escape is requested
// (used for a nested parametric type bound as a module's own parameter).
func (e *Elaborator) buildParametricUse(name string, escape bool, typeArgs []ast.Expr) (*value.ParametricUse, bool) {
	params := make([]value.ParamValue, 0, len(typeArgs))
	for _, ta := range typeArgs {
		v := e.evalExpr(ta)
		switch {
		case v.IsInt():
			params = append(params, value.IntParam(v.Int))
		case v.IsParametric():
			params = append(params, value.UseParam(v.Use))
		default:
			return nil, false
		}
	}
	return &value.ParametricUse{Name: name, Escape: escape, Params: params}, true
}

// evalCaseExpr never folds (pattern matching is left to the backend); its
// only elaborator-specific behavior is wrapping its emitted text in
// parentheses, handled by emitExpr.
func (e *Elaborator) evalCaseExpr(n *ast.CaseExpr) value.Value {
	for _, arm := range n.Arms {
		if v := e.evalExpr(arm.Value); v.IsError() {
			return v
		}
	}
	if n.Default != nil {
		if v := e.evalExpr(n.Default); v.IsError() {
			return v
		}
	}
	return value.None
}

// emitExpr folds n and writes whatever the result requires into the
// buffer: a folded value through EmitNode, or (for None/Error/no-op
// results) n's own raw source text, parenthesized if n is a CaseExpr per
// §4.4's backend-parsing workaround.
func (e *Elaborator) emitExpr(n ast.Expr) {
	v := e.evalExpr(n)
	switch v.Kind {
	case value.KindInt, value.KindBool, value.KindParametricUse, value.KindTranslatedFragment:
		e.Buf.EmitNode(n, v)
	case value.KindSkip:
		// nothing to emit
	default:
		text := e.text(n)
		if _, isCase := n.(*ast.CaseExpr); isCase {
			text = "(" + text + ")"
		}
		if _, isStr := n.(*ast.StrLiteral); isStr {
			// Normalize so two source files spelling the same $display
			// message with different Unicode compositions emit identical
			// backend text.
			text = norm.NFC.String(text)
		}
		e.Buf.EmitRaw(n, text)
	}
}
