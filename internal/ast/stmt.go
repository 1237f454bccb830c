package ast

import "minispec/internal/source"

// Stmt is any statement node inside a function, method, rule, or action body.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr names a type: a builtin (Integer, Bit#(n), Bool, String,
// Vector#(n,T)) or a user-defined typedef, optionally parametrized.
type TypeExpr struct {
	Sp       source.Span
	Name     string
	TypeArgs []Expr // the #(...) parameter list, if any
}

func (n *TypeExpr) Span() source.Span { return n.Sp }

// VarBinding declares and initializes a variable: Type name = Init;
type VarBinding struct {
	Sp   source.Span
	Type *TypeExpr
	Name string
	Init Expr
}

func (n *VarBinding) Span() source.Span { return n.Sp }
func (*VarBinding) stmtNode()           {}

// LetBinding declares an inferred-type variable: let name = Init;
type LetBinding struct {
	Sp   source.Span
	Name string
	Init Expr
}

func (n *LetBinding) Span() source.Span { return n.Sp }
func (*LetBinding) stmtNode()           {}

// VarAssign assigns to an already-declared variable: name = Value;
type VarAssign struct {
	Sp     source.Span
	Target string
	Value  Expr
}

func (n *VarAssign) Span() source.Span { return n.Sp }
func (*VarAssign) stmtNode()           {}

// ExprStmt is a bare expression used for its side effect: a method or
// action call whose value is discarded.
type ExprStmt struct {
	Sp   source.Span
	Expr Expr
}

func (n *ExprStmt) Span() source.Span { return n.Sp }
func (*ExprStmt) stmtNode()           {}

// ReturnStmt returns a value from a function or method body.
type ReturnStmt struct {
	Sp    source.Span
	Value Expr // nil for a bare `return;`
}

func (n *ReturnStmt) Span() source.Span { return n.Sp }
func (*ReturnStmt) stmtNode()           {}

// IfStmt is a compile-time conditional over an Integer-context expression;
// both branches are elaborated under a poisoning scope (§4.2).
type IfStmt struct {
	Sp   source.Span
	Cond Expr
	Then []Stmt
	Else []Stmt // nil if no else clause
}

func (n *IfStmt) Span() source.Span { return n.Sp }
func (*IfStmt) stmtNode()           {}

// ForStmt is a compile-time unrolled loop: for (Init; Cond; Step) Body.
// The loop variable and bound must resolve to concrete integers at
// elaboration time; the body is unrolled once per iteration.
type ForStmt struct {
	Sp        source.Span
	InitName  string
	InitValue Expr
	Cond      Expr
	StepName  string
	StepValue Expr
	Body      []Stmt
}

func (n *ForStmt) Span() source.Span { return n.Sp }
func (*ForStmt) stmtNode()           {}

// CaseStmt is the statement form of a case expression, used when each arm
// executes a block rather than yielding a value.
type CaseStmt struct {
	Sp      source.Span
	Subject Expr
	Arms    []CaseStmtArm
	Default []Stmt
}

func (n *CaseStmt) Span() source.Span { return n.Sp }
func (*CaseStmt) stmtNode()           {}

// CaseStmtArm is one `Pattern: { ... }` arm of a CaseStmt.
type CaseStmtArm struct {
	Sp      source.Span
	Pattern string
	Binds   []string
	Body    []Stmt
}

// BeginEndBlock groups statements into a nested lexical scope without
// introducing control flow, e.g. the body of a rule.
type BeginEndBlock struct {
	Sp   source.Span
	Body []Stmt
}

func (n *BeginEndBlock) Span() source.Span { return n.Sp }
func (*BeginEndBlock) stmtNode()           {}

// SubmoduleDecl instantiates a submodule: ModuleType#(Params) name <- ModuleType#(Args);
type SubmoduleDecl struct {
	Sp   source.Span
	Type *TypeExpr
	Name string
	Ctor Expr
}

func (n *SubmoduleDecl) Span() source.Span { return n.Sp }
func (*SubmoduleDecl) stmtNode()           {}

// InputDecl declares a module input port: input Type name; or, with a
// default, input Type name default = expr;. A nil Default means the port
// has none, and the elaborator emits a bypass wire instead of a wire with
// a reset value.
type InputDecl struct {
	Sp      source.Span
	Type    *TypeExpr
	Name    string
	Default Expr
}

func (n *InputDecl) Span() source.Span { return n.Sp }
func (*InputDecl) stmtNode()           {}
