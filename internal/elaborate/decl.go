package elaborate

import (
	"fmt"
	"strings"

	"minispec/internal/ast"
	"minispec/internal/diag"
	"minispec/internal/parametrics"
	"minispec/internal/tcbuf"
	"minispec/internal/value"
)

func isParametricModule(n *ast.ModuleDef) bool { return len(n.TypeParams) > 0 }
func isParametricFunc(n *ast.FunctionDef) bool { return len(n.TypeParams) > 0 }
func isParametricType(n *ast.TypeDef) bool     { return len(n.Params) > 0 }

// ifaceName resolves a module's interface type name: the explicit one if
// the source wrote `module mkFoo(Ifc)(args)`, otherwise the module's own
// name with its "mk" prefix stripped (mkFoo -> Foo), matching the
// convention every module constructor in this corpus follows. A module
// name without that prefix gets an "Ifc" suffix instead (Foo -> FooIfc).
func ifaceName(n *ast.ModuleDef) string {
	if n.Interface != "" {
		return n.Interface
	}
	if strings.HasPrefix(n.Name, "mk") {
		return n.Name[2:]
	}
	return n.Name + "Ifc"
}

// elaborateModule registers n if it is still generic (no concrete params
// bound yet); otherwise it elaborates and emits it directly into e.Buf.
// binding is nil for the ordinary per-file pass and non-nil when the
// driver worklist is re-running a specialization.
func (e *Elaborator) elaborateModule(n *ast.ModuleDef, binding *value.ParametricUse) {
	if binding == nil {
		e.checkIdent(strings.TrimPrefix(n.Name, "mk"), n)
		if isParametricModule(n) {
			e.Reg.Register(&parametrics.Definition{Kind: parametrics.KindModule, Name: n.Name, Item: n})
			return
		}
	}
	e.emitModule(n, binding)
}

// emitModule implements §4.4's module-definition template.
func (e *Elaborator) emitModule(n *ast.ModuleDef, binding *value.ParametricUse) {
	e.Ctx.EnterImmutable()
	defer e.Ctx.ExitLevel()

	prevSubs := e.submodules
	e.submodules = make(map[string]string)
	defer func() { e.submodules = prevSubs }()

	e.bindFormals(n, n.TypeParams, binding)
	e.checkParamNames(n.Args)
	for _, a := range n.Args {
		e.Ctx.DefineVar(a.Name, a.Type != nil && a.Type.Name == "Integer")
	}

	var inputs []*ast.InputDecl
	for _, st := range n.Body {
		if in, ok := st.(*ast.InputDecl); ok {
			inputs = append(inputs, in)
		}
	}

	iface := ifaceName(n)
	e.Buf.EmitStart(n)

	e.Buf.EmitText("interface " + iface + ";\n")
	for _, m := range n.Methods {
		e.emitMethodSignature(m)
	}
	for _, in := range inputs {
		e.Buf.EmitText("method Action " + in.Name + "___input(")
		e.emitTypeExpr(in.Type)
		e.Buf.EmitText(" value);\n")
	}
	e.Buf.EmitText("endinterface\n")

	e.Buf.EmitText("module mk" + strings.TrimPrefix(n.Name, "mk"))
	if binding != nil && binding.Escape {
		e.Buf.EmitText("\\" + n.Name + " ")
	}
	e.emitArgList(n.Args)
	e.Buf.EmitText("(" + iface + ");\n")

	for _, in := range inputs {
		e.Buf.EmitText("Wire#(")
		e.emitTypeExpr(in.Type)
		e.Buf.EmitText(") " + in.Name + " <- ")
		if in.Default != nil {
			e.Buf.EmitText("mkDWire(")
			e.emitExpr(in.Default)
			e.Buf.EmitText(");\n")
		} else {
			e.Buf.EmitText("mkBypassWire;\n")
		}
	}
	for _, st := range n.Body {
		if _, ok := st.(*ast.InputDecl); ok {
			continue
		}
		e.elabStmt(st)
	}
	for _, r := range n.Rules {
		e.emitRule(r)
	}
	for _, m := range n.Methods {
		e.emitMethod(m)
	}
	for _, in := range inputs {
		e.Buf.EmitText("method Action " + in.Name + "___input(")
		e.emitTypeExpr(in.Type)
		e.Buf.EmitText(" value); " + in.Name + " <= value; endmethod\n")
	}
	e.Buf.EmitText("endmodule\n")
	e.Buf.EmitEnd("module " + n.Name)
}

func (e *Elaborator) emitArgList(args []ast.Param) {
	e.Buf.EmitText("(")
	for i, a := range args {
		if i > 0 {
			e.Buf.EmitText(", ")
		}
		e.emitTypeExpr(a.Type)
		e.Buf.EmitText(" " + a.Name)
	}
	e.Buf.EmitText(")")
}

func (e *Elaborator) emitMethodSignature(m *ast.MethodDef) {
	e.Buf.EmitText("method ")
	if m.IsAction {
		e.Buf.EmitText("Action ")
	} else if m.ReturnType != nil {
		e.emitTypeExpr(m.ReturnType)
		e.Buf.EmitText(" ")
	}
	e.Buf.EmitText(m.Name)
	e.emitArgList(m.Params)
	e.Buf.EmitText(";\n")
}

func (e *Elaborator) emitMethod(m *ast.MethodDef) {
	e.checkIdent(m.Name, m)
	e.checkParamNames(m.Params)
	e.Ctx.EnterImmutable()
	for _, p := range m.Params {
		e.Ctx.DefineVar(p.Name, p.Type != nil && p.Type.Name == "Integer")
	}
	e.Buf.EmitStart(m)
	e.Buf.EmitText("method ")
	if m.IsAction {
		e.Buf.EmitText("Action ")
	} else if m.ReturnType != nil {
		e.emitTypeExpr(m.ReturnType)
		e.Buf.EmitText(" ")
	}
	e.Buf.EmitText(m.Name)
	e.emitArgList(m.Params)
	e.Buf.EmitText(";\n")
	e.elabStmts(m.Body)
	e.Buf.EmitText("endmethod\n")
	e.Buf.EmitEnd("method " + m.Name)
	e.Ctx.ExitLevel()
}

func (e *Elaborator) emitRule(r *ast.RuleDef) {
	e.Ctx.EnterImmutable()
	e.Buf.EmitStart(r)
	e.Buf.EmitText("(* no_implicit_conditions, fire_when_enabled *)\n")
	e.Buf.EmitText("rule " + r.Name)
	if r.Cond != nil {
		e.Buf.EmitText(" (")
		e.emitExpr(r.Cond)
		e.Buf.EmitText(")")
	}
	e.Buf.EmitText(";\n")
	e.elabStmts(r.Body)
	e.Buf.EmitText("endrule\n")
	e.Buf.EmitEnd("rule " + r.Name)
	e.Ctx.ExitLevel()
}

// elaborateFunction registers n if still generic; otherwise emits it
// as-is. The synthesis wrapper module for a user-requested top-level
// function is emitted separately, by SpecializeTopLevelFunction.
func (e *Elaborator) elaborateFunction(n *ast.FunctionDef, binding *value.ParametricUse) {
	if binding == nil {
		e.checkIdent(n.Name, n)
		if isParametricFunc(n) {
			e.Reg.Register(&parametrics.Definition{Kind: parametrics.KindFunc, Name: n.Name, Item: n})
			return
		}
	}
	e.emitFunction(n, binding)
}

func (e *Elaborator) emitFunction(n *ast.FunctionDef, binding *value.ParametricUse) {
	e.Ctx.EnterImmutable()
	defer e.Ctx.ExitLevel()

	e.bindFormals(n, n.TypeParams, binding)
	e.checkParamNames(n.Params)
	for _, p := range n.Params {
		e.Ctx.DefineVar(p.Name, p.Type != nil && p.Type.Name == "Integer")
	}

	e.Buf.EmitStart(n)
	e.Buf.EmitText("function ")
	e.emitTypeExpr(n.ReturnType)
	e.Buf.EmitText(" " + n.Name)
	e.emitArgList(n.Params)
	e.Buf.EmitText(";\n")
	e.elabStmts(n.Body)
	e.Buf.EmitText("endfunction\n")
	e.Buf.EmitEnd("function " + n.Name)
}

// emitTopLevelFunctionWrapper synthesizes the Name___ interface and
// mkName module that let a parametric function serve as a synthesizable
// top-level unit, per §4.4.
func (e *Elaborator) emitTopLevelFunctionWrapper(n *ast.FunctionDef) {
	ifaceName := n.Name + "___"
	e.Buf.EmitStart(n)
	e.Buf.EmitText("interface " + ifaceName + ";\n")
	e.Buf.EmitText("method ")
	e.emitTypeExpr(n.ReturnType)
	e.Buf.EmitText(" fn")
	e.emitArgList(n.Params)
	e.Buf.EmitText(";\nendinterface\n")
	e.Buf.EmitText("module mk" + n.Name + "(" + ifaceName + ");\n")
	e.Buf.EmitText("method ")
	e.emitTypeExpr(n.ReturnType)
	e.Buf.EmitText(" fn")
	e.emitArgList(n.Params)
	e.Buf.EmitText(";\n")
	e.Buf.EmitText("return " + n.Name + "(")
	for i, p := range n.Params {
		if i > 0 {
			e.Buf.EmitText(", ")
		}
		e.Buf.EmitText(p.Name)
	}
	e.Buf.EmitText(");\n")
	e.Buf.EmitText("endmethod\n")
	e.Buf.EmitText("endmodule\n")
	e.Buf.EmitEnd("synthesis wrapper for " + n.Name)
}

// elaborateTypeDef registers a parametric synonym/struct; an enum or a
// non-parametric struct/synonym is emitted immediately. Structs and enums
// are auto-derived (Bits, Eq, FShow); synonyms carry no deriving clause.
func (e *Elaborator) elaborateTypeDef(n *ast.TypeDef) {
	e.checkIdent(lowerFirst(n.Name), n)
	if isParametricType(n) && n.Kind != ast.TypeDefEnum {
		kind := parametrics.KindTypedef
		if n.Kind == ast.TypeDefStruct {
			kind = parametrics.KindStruct
		}
		e.Reg.Register(&parametrics.Definition{Kind: kind, Name: n.Name, Item: n})
		return
	}
	e.emitTypeDef(n, nil)
}

func (e *Elaborator) emitTypeDef(n *ast.TypeDef, binding *value.ParametricUse) {
	if binding != nil {
		e.Ctx.EnterImmutable()
		defer e.Ctx.ExitLevel()
		e.bindTypeFormals(n, n.Params, binding)
	}
	e.Buf.EmitStart(n)
	switch n.Kind {
	case ast.TypeDefSynonym:
		e.Buf.EmitText("typedef ")
		e.emitTypeExpr(n.Target)
		e.Buf.EmitText(" " + n.Name + ";\n")
	case ast.TypeDefStruct:
		e.Buf.EmitText("typedef struct {\n")
		for _, f := range n.Fields {
			e.checkIdent(f.Name, spanNode{f.Sp})
			e.emitTypeExpr(f.Type)
			e.Buf.EmitText(" " + f.Name + ";\n")
		}
		e.Buf.EmitText("} " + n.Name + " deriving(Bits, Eq, FShow);\n")
	case ast.TypeDefEnum:
		e.Buf.EmitText("typedef union tagged {\n")
		for _, tag := range n.Tags {
			if len(tag.Fields) == 0 {
				e.Buf.EmitText("void " + tag.Name + ";\n")
				continue
			}
			e.Buf.EmitText("struct {\n")
			for _, f := range tag.Fields {
				e.checkIdent(f.Name, spanNode{f.Sp})
				e.emitTypeExpr(f.Type)
				e.Buf.EmitText(" " + f.Name + ";\n")
			}
			e.Buf.EmitText("} " + tag.Name + ";\n")
		}
		e.Buf.EmitText("} " + n.Name + " deriving(Bits, Eq, FShow);\n")
	}
	e.Buf.EmitEnd("typedef " + n.Name)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// bindFormals binds a specialization's actual parameters against a
// definition's declared paramFormals in the already-entered immutable
// level, per §4.5 step c: each formal gets either an Integer binding or a
// type binding depending on whether the actual is a plain integer or a
// nested ParametricUse.
func (e *Elaborator) bindFormals(n ast.Node, formals []ast.Param, binding *value.ParametricUse) {
	if binding == nil {
		return
	}
	if len(formals) != len(binding.Params) {
		e.report(diag.ElabParametricArity, n, "parametric use %q has %d parameters but %q declares %d", binding.Render(), len(binding.Params), binding.Name, len(formals))
		return
	}
	for i, f := range formals {
		pv := binding.Params[i]
		if pv.IsUse {
			e.Ctx.SetType(f.Name, pv.Use)
		} else {
			e.Ctx.DefineVar(f.Name, true)
			e.Ctx.Set(f.Name, value.Int(pv.Int))
		}
	}
}

// bindTypeFormals is bindFormals' counterpart for a typedef's bare
// generic-name parameter list (TypeDef.Params is []string, not []Param,
// since a typedef never takes a value-typed formal).
func (e *Elaborator) bindTypeFormals(n ast.Node, formals []string, binding *value.ParametricUse) {
	if binding == nil {
		return
	}
	if len(formals) != len(binding.Params) {
		e.report(diag.ElabParametricArity, n, "parametric use %q has %d parameters but %q declares %d", binding.Render(), len(binding.Params), binding.Name, len(formals))
		return
	}
	for i, name := range formals {
		pv := binding.Params[i]
		if pv.IsUse {
			e.Ctx.SetType(name, pv.Use)
		} else {
			e.Ctx.DefineVar(name, true)
			e.Ctx.Set(name, value.Int(pv.Int))
		}
	}
}

// Specialize re-elaborates def under binding's actual parameters and
// returns the resulting Fragment, bracketed with a breadcrumb naming the
// definition kind, its abstract formals, and the concrete binding, per
// §4.5 step d. The driver worklist calls this once per undischarged
// ParametricUse fingerprint.
func (e *Elaborator) Specialize(def *parametrics.Definition, binding *value.ParametricUse) *value.Fragment {
	saved := e.Buf
	e.Buf = tcbuf.New()
	defer func() { e.Buf = saved }()

	var formals []string
	e.Buf.EmitStart(def.Item)
	switch item := def.Item.(type) {
	case *ast.ModuleDef:
		for _, p := range item.TypeParams {
			formals = append(formals, p.Name)
		}
		e.elaborateModule(item, binding)
	case *ast.FunctionDef:
		for _, p := range item.TypeParams {
			formals = append(formals, p.Name)
		}
		e.elaborateFunction(item, binding)
	case *ast.TypeDef:
		formals = item.Params
		e.emitTypeDef(item, binding)
	}
	e.Buf.EmitEnd(fmt.Sprintf("%s %s#(%s) with %s", def.Kind, def.Name, strings.Join(formals, ","), binding.Render()))
	return e.Buf.ToFragment()
}

// CheckTopLevelModule validates §4.4's constraint that a module requested
// parametrically as the run's top level must declare no constructor
// arguments; the driver calls this once it resolves which definition the
// user's topLevel argument names.
func (e *Elaborator) CheckTopLevelModule(n *ast.ModuleDef) {
	if len(n.Args) > 0 {
		e.report(diag.ElabTopLevelHasArgs, n, "top-level parametric module %q must not declare constructor arguments", n.Name)
	}
}

// SpecializeTopLevelFunction is Specialize's counterpart for the
// user-requested top-level parametric function: it re-elaborates def and
// additionally emits the synthesis wrapper module.
func (e *Elaborator) SpecializeTopLevelFunction(def *parametrics.Definition, binding *value.ParametricUse) (*value.Fragment, error) {
	fn, ok := def.Item.(*ast.FunctionDef)
	if !ok {
		return nil, fmt.Errorf("top-level parametric %q is not a function", def.Name)
	}
	saved := e.Buf
	e.Buf = tcbuf.New()
	defer func() { e.Buf = saved }()

	e.elaborateFunction(fn, binding)
	e.emitTopLevelFunctionWrapper(fn)
	return e.Buf.ToFragment(), nil
}
