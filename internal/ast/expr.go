package ast

import "minispec/internal/source"

// Expr is any expression node: literals, variable references, operator
// applications, calls, field access, and case expressions.
type Expr interface {
	Node
	exprNode()
}

// IntLiteral is an unsized or sized integer literal, e.g. 3, 'hFF, 8'd0.
type IntLiteral struct {
	Sp   source.Span
	Text string // raw lexeme, as written
}

func (n *IntLiteral) Span() source.Span { return n.Sp }
func (*IntLiteral) exprNode()           {}

// StrLiteral is a double-quoted string literal, used in $display-style
// calls and type-level string parameters.
type StrLiteral struct {
	Sp    source.Span
	Value string // with escapes resolved
}

func (n *StrLiteral) Span() source.Span { return n.Sp }
func (*StrLiteral) exprNode()           {}

// BoolLiteral is the True/False keyword literal.
type BoolLiteral struct {
	Sp    source.Span
	Value bool
}

func (n *BoolLiteral) Span() source.Span { return n.Sp }
func (*BoolLiteral) exprNode()           {}

// VarExpr references a variable, constant, or type parameter by name.
type VarExpr struct {
	Sp   source.Span
	Name string
}

func (n *VarExpr) Span() source.Span { return n.Sp }
func (*VarExpr) exprNode()           {}

// UnaryExpr applies a prefix operator: -x, !x, ~x.
type UnaryExpr struct {
	Sp  source.Span
	Op  string
	Arg Expr
}

func (n *UnaryExpr) Span() source.Span { return n.Sp }
func (*UnaryExpr) exprNode()           {}

// BinaryExpr applies an infix operator: arithmetic, comparison, logical,
// or bitwise.
type BinaryExpr struct {
	Sp          source.Span
	Op          string
	Left, Right Expr
}

func (n *BinaryExpr) Span() source.Span { return n.Sp }
func (*BinaryExpr) exprNode()           {}

// CondExpr is a ternary conditional: cond ? then : els.
type CondExpr struct {
	Sp               source.Span
	Cond, Then, Else Expr
}

func (n *CondExpr) Span() source.Span { return n.Sp }
func (*CondExpr) exprNode()           {}

// CallExpr invokes a function, method, or module constructor.
type CallExpr struct {
	Sp       source.Span
	Callee   string
	TypeArgs []Expr // explicit parameter instantiation, e.g. f#(8, Bool)
	Args     []Expr
}

func (n *CallExpr) Span() source.Span { return n.Sp }
func (*CallExpr) exprNode()           {}

// FieldExpr accesses a struct field or submodule method: base.Name.
type FieldExpr struct {
	Sp   source.Span
	Base Expr
	Name string
}

func (n *FieldExpr) Span() source.Span { return n.Sp }
func (*FieldExpr) exprNode()           {}

// CaseExpr is a case-expression form: case (Subject) matches TAG1: E1; ... endcase.
type CaseExpr struct {
	Sp      source.Span
	Subject Expr
	Arms    []CaseArm
	Default Expr // nil if no default arm
}

func (n *CaseExpr) Span() source.Span { return n.Sp }
func (*CaseExpr) exprNode()           {}

// CaseArm is one `Pattern: Value` arm of a CaseExpr or CaseStmt.
type CaseArm struct {
	Sp      source.Span
	Pattern string
	Binds   []string // tag.Payload bound names, if a matches-pattern destructures
	Value   Expr
}
