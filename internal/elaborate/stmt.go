package elaborate

import (
	"fmt"
	"strings"

	"minispec/internal/ast"
	"minispec/internal/diag"
)

// elabStmts elaborates a statement list in order, each statement appending
// whatever it emits (or nothing, for a Skip) directly to the buffer.
func (e *Elaborator) elabStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		e.elabStmt(s)
	}
}

func (e *Elaborator) elabStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarBinding:
		e.elabVarBinding(n)
	case *ast.LetBinding:
		e.elabLetBinding(n)
	case *ast.VarAssign:
		e.elabVarAssign(n)
	case *ast.ExprStmt:
		e.elabExprStmt(n)
	case *ast.ReturnStmt:
		e.elabReturnStmt(n)
	case *ast.IfStmt:
		e.elabIfStmt(n)
	case *ast.ForStmt:
		e.elabForStmt(n)
	case *ast.CaseStmt:
		e.elabCaseStmt(n)
	case *ast.BeginEndBlock:
		e.elabBeginEnd(n)
	case *ast.SubmoduleDecl:
		e.elabSubmoduleDecl(n)
	case *ast.InputDecl:
		e.elabInputDecl(n)
	}
}

// emitTypeExpr emits a TypeExpr, folding any parametric #(...) arguments
// through emitExpr so a bound type parameter (e.g. Bit#(n) inside a
// function whose n is currently bound to 8) renders as Bit#(8).
func (e *Elaborator) emitTypeExpr(t *ast.TypeExpr) {
	if t == nil {
		return
	}
	e.Buf.EmitText(t.Name)
	if len(t.TypeArgs) == 0 {
		return
	}
	e.Buf.EmitText("#(")
	for i, a := range t.TypeArgs {
		if i > 0 {
			e.Buf.EmitText(",")
		}
		e.emitExpr(a)
	}
	e.Buf.EmitText(")")
}

// elabVarBinding implements the varBinding rule: an Integer-typed binding
// is purely elaboration-time (define, optionally set, emit Skip); anything
// else declares a non-integer name and is emitted as ordinary backend text
// with its initializer selectively elaborated.
func (e *Elaborator) elabVarBinding(n *ast.VarBinding) {
	e.checkIdent(n.Name, n)
	if n.Type != nil && n.Type.Name == "Integer" {
		e.Ctx.DefineVar(n.Name, true)
		if n.Init != nil {
			if v := e.evalExpr(n.Init); v.IsInt() {
				e.Ctx.Set(n.Name, v)
			}
		}
		return
	}
	e.Ctx.DefineVar(n.Name, false)
	e.Buf.EmitStart(n)
	e.emitTypeExpr(n.Type)
	e.Buf.EmitText(" " + n.Name)
	if n.Init != nil {
		e.Buf.EmitText(" = ")
		e.emitExpr(n.Init)
	}
	e.Buf.EmitText(";")
	e.Buf.EmitEnd("")
}

// elabLetBinding: an integer-valued initializer defines an Integer-context
// variable and the statement disappears (Skip); otherwise the name is
// tracked as non-integer and the `let` is emitted unchanged.
func (e *Elaborator) elabLetBinding(n *ast.LetBinding) {
	e.checkIdent(n.Name, n)
	v := e.evalExpr(n.Init)
	if v.IsInt() {
		e.Ctx.DefineVar(n.Name, true)
		e.Ctx.Set(n.Name, v)
		return
	}
	e.Ctx.DefineVar(n.Name, false)
	e.Buf.EmitStart(n)
	e.Buf.EmitText("let " + n.Name + " = ")
	e.emitExpr(n.Init)
	e.Buf.EmitText(";")
	e.Buf.EmitEnd("")
}

// elabVarAssign implements the three varAssign shapes: a plain
// Integer-context target updates the context and vanishes (Skip); a
// sub.field target against a known submodule rewrites to the synthesized
// input method call; anything else is emitted unchanged (an assignment to
// a Wire/Reg variable the elaborator doesn't track).
func (e *Elaborator) elabVarAssign(n *ast.VarAssign) {
	if base, field, ok := strings.Cut(n.Target, "."); ok {
		if _, isSub := e.submodules[base]; isSub {
			e.Buf.EmitStart(n)
			e.Buf.EmitText(base + "." + field + "___input(")
			e.emitExpr(n.Value)
			e.Buf.EmitText(");")
			e.Buf.EmitEnd("")
			return
		}
		e.report(diag.ElabUnknownLvalue, n, "%q is not a known submodule", base)
		return
	}
	if isInt, found := e.Ctx.IsInteger(n.Target); found && isInt {
		v := e.evalExpr(n.Value)
		if v.IsInt() {
			e.Ctx.Set(n.Target, v)
		}
		return
	}
	e.Buf.EmitStart(n)
	e.Buf.EmitText(n.Target + " = ")
	e.emitExpr(n.Value)
	e.Buf.EmitText(";")
	e.Buf.EmitEnd("")
}

func (e *Elaborator) elabExprStmt(n *ast.ExprStmt) {
	e.Buf.EmitStart(n)
	e.emitExpr(n.Expr)
	e.Buf.EmitText(";")
	e.Buf.EmitEnd("")
}

func (e *Elaborator) elabReturnStmt(n *ast.ReturnStmt) {
	e.Buf.EmitStart(n)
	e.Buf.EmitText("return")
	if n.Value != nil {
		e.Buf.EmitText(" ")
		e.emitExpr(n.Value)
	}
	e.Buf.EmitText(";")
	e.Buf.EmitEnd("")
}

// elabIfStmt: a statically Bool condition collapses the whole statement to
// its taken branch, wrapped in begin/end to preserve the branch's own
// lexical scope; a non-static condition leaves both branches as written,
// but still runs each under a Poisoning level so any Integer mutation
// inside is marked rather than silently kept.
func (e *Elaborator) elabIfStmt(n *ast.IfStmt) {
	c := e.evalExpr(n.Cond)
	if c.IsBool() {
		taken := n.Else
		if c.Bool {
			taken = n.Then
		}
		e.Buf.EmitStart(n)
		e.Buf.EmitText("begin\n")
		e.Ctx.EnterMutable()
		e.elabStmts(taken)
		e.Ctx.ExitLevel()
		e.Buf.EmitText("end\n")
		e.Buf.EmitEnd("")
		return
	}
	e.Buf.EmitStart(n)
	e.Buf.EmitText("if (")
	e.emitExpr(n.Cond)
	e.Buf.EmitText(") begin\n")
	e.Ctx.EnterPoisoning()
	e.elabStmts(n.Then)
	e.Ctx.ExitLevel()
	e.Buf.EmitText("end\n")
	if n.Else != nil {
		e.Buf.EmitText("else begin\n")
		e.Ctx.EnterPoisoning()
		e.elabStmts(n.Else)
		e.Ctx.ExitLevel()
		e.Buf.EmitText("end\n")
	}
	e.Buf.EmitEnd("")
}

// elabForStmt unrolls a compile-time for-loop: the induction variable must
// be declared Integer and the step target must name it back; each taken
// iteration runs in a cleared mutable level, emits a begin/end block
// tagged with a breadcrumb naming the current induction value, and is
// bounded by the run-wide step cap.
func (e *Elaborator) elabForStmt(n *ast.ForStmt) {
	if n.InitName != n.StepName {
		e.report(diag.ElabForBadUpdateName, n, "for-loop update variable %q must match the induction variable %q", n.StepName, n.InitName)
		return
	}
	e.Ctx.EnterMutable()
	defer e.Ctx.ExitLevel()
	e.Ctx.DefineVar(n.InitName, true)
	init := e.evalExpr(n.InitValue)
	if !init.IsInt() {
		e.report(diag.ElabForBadInduction, n, "for-loop induction variable %q must initialize to an Integer", n.InitName)
		return
	}
	e.Ctx.Set(n.InitName, init)

	for {
		cond := e.evalExpr(n.Cond)
		if !cond.IsBool() {
			e.report(diag.ElabForNonBoolCond, n, "for-loop condition did not elaborate to a Bool")
			break
		}
		if !cond.Bool {
			break
		}
		if !e.incStep(n) || !e.checkDepth(n) {
			break
		}
		iv, _, _ := e.Ctx.Get(n.InitName)
		e.Buf.EmitStart(n)
		e.Buf.EmitText("begin\n")
		e.Ctx.EnterMutable()
		e.elabStmts(n.Body)
		e.Ctx.ExitLevel()
		e.Buf.EmitText("end\n")
		e.Buf.EmitEnd(e.forIterationLabel(n, iv.Int))

		step := e.evalExpr(n.StepValue)
		if !step.IsInt() {
			e.report(diag.ElabForBadInduction, n, "for-loop step expression for %q did not elaborate to an Integer", n.InitName)
			break
		}
		e.Ctx.Set(n.InitName, step)
	}
}

// forIterationLabel names one unrolled iteration's breadcrumb: "for loop in
// <file:line>, iteration with i = <n>".
func (e *Elaborator) forIterationLabel(n *ast.ForStmt, i int64) string {
	loc := n.Sp
	start, _ := e.fs.Resolve(loc)
	file := e.fs.Get(loc.File)
	path := ""
	if file != nil {
		path = file.Path
	}
	return fmt.Sprintf("for loop in %s:%d, iteration with %s = %d", path, start.Line, n.InitName, i)
}

func (e *Elaborator) elabCaseStmt(n *ast.CaseStmt) {
	e.Buf.EmitStart(n)
	e.Buf.EmitText("case (")
	e.emitExpr(n.Subject)
	e.Buf.EmitText(") matches\n")
	for _, arm := range n.Arms {
		e.Buf.EmitText(arm.Pattern + ": begin\n")
		e.elabStmts(arm.Body)
		e.Buf.EmitText("end\n")
	}
	if n.Default != nil {
		e.Buf.EmitText("default: begin\n")
		e.elabStmts(n.Default)
		e.Buf.EmitText("end\n")
	}
	e.Buf.EmitText("endcase")
	e.Buf.EmitEnd("")
}

func (e *Elaborator) elabBeginEnd(n *ast.BeginEndBlock) {
	e.Buf.EmitStart(n)
	e.Buf.EmitText("begin\n")
	e.elabStmts(n.Body)
	e.Buf.EmitText("end")
	e.Buf.EmitEnd("")
}

// elabSubmoduleDecl emits `t n <- mkT(args);`, special-casing a Vector of
// submodules (Vector#(N,T) v(args);) into replicateM(mkT(args)).
func (e *Elaborator) elabSubmoduleDecl(n *ast.SubmoduleDecl) {
	e.checkIdent(n.Name, n)
	if n.Type != nil {
		e.submodules[n.Name] = n.Type.Name
	}
	e.Buf.EmitStart(n)
	if n.Type != nil && n.Type.Name == "Vector" && len(n.Type.TypeArgs) == 2 {
		e.Buf.EmitText("Vector#(")
		e.emitExpr(n.Type.TypeArgs[0])
		e.Buf.EmitText(",")
		e.emitExpr(n.Type.TypeArgs[1])
		e.Buf.EmitText(") " + n.Name + " <- replicateM(")
		e.emitExpr(n.Ctor)
		e.Buf.EmitText(");")
		e.Buf.EmitEnd("")
		return
	}
	e.emitTypeExpr(n.Type)
	e.Buf.EmitText(" " + n.Name + " <- ")
	e.emitExpr(n.Ctor)
	e.Buf.EmitText(";")
	e.Buf.EmitEnd("")
}

// elabInputDecl declares n's name in the Integer context as a non-integer
// name and emits nothing. emitModule (decl.go) emits an input's Wire
// declaration, its interface signature and its concrete ___input method
// itself, and skips InputDecl statements in its body loop, so module
// inputs do not pass through here.
func (e *Elaborator) elabInputDecl(n *ast.InputDecl) {
	e.checkIdent(n.Name, n)
	e.Ctx.DefineVar(n.Name, false)
}
