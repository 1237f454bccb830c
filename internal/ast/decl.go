package ast

import "minispec/internal/source"

func (*ModuleDef) itemNode()   {}
func (*FunctionDef) itemNode() {}
func (*TypeDef) itemNode()     {}

// Param is one formal parameter of a function, method, or module
// constructor: either a value parameter (Type name) or a type parameter
// (the bare name of a typeclass-free generic, e.g. `n` in Bit#(n)).
type Param struct {
	Sp   source.Span
	Type *TypeExpr // nil for a bare type parameter
	Name string
}

// ModuleDef is a `module mkFoo#(params)(ArgType args) ... endmodule` block:
// submodule instantiations, input ports, rules, and methods.
type ModuleDef struct {
	Sp         source.Span
	Name       string
	TypeParams []Param
	Interface  string // the module's declared interface type, if any
	Args       []Param
	Body       []Stmt // InputDecl / SubmoduleDecl / LetBinding / VarBinding entries
	Rules      []*RuleDef
	Methods    []*MethodDef
}

func (n *ModuleDef) Span() source.Span { return n.Sp }

// RuleDef is a `rule name (cond); ... endrule` block.
type RuleDef struct {
	Sp   source.Span
	Name string
	Cond Expr // nil if unconditional
	Body []Stmt
}

func (n *RuleDef) Span() source.Span { return n.Sp }

// MethodDef is a `method ReturnType name(params); ... endmethod` block
// inside a module or interface.
type MethodDef struct {
	Sp         source.Span
	Name       string
	ReturnType *TypeExpr // nil for an Action/ActionValue#(void) method
	Params     []Param
	Body       []Stmt
	IsAction   bool
}

func (n *MethodDef) Span() source.Span { return n.Sp }

// FunctionDef is a `function ReturnType name#(typeParams)(params); ... endfunction` block.
type FunctionDef struct {
	Sp         source.Span
	Name       string
	TypeParams []Param
	ReturnType *TypeExpr
	Params     []Param
	Body       []Stmt
}

func (n *FunctionDef) Span() source.Span { return n.Sp }
