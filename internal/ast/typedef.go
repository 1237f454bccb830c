package ast

import "minispec/internal/source"

// TypeDef is a top-level `typedef` declaration: a synonym, an enum, or a
// struct (tagged union members are represented as EnumTag entries whose
// Fields describe the payload).
type TypeDef struct {
	Sp     source.Span
	Name   string
	Kind   TypeDefKind
	Params []string // generic parameter names, e.g. `n` in typedef Bit#(n) Foo
	Target *TypeExpr      // Synonym only
	Fields []StructField  // Struct only
	Tags   []EnumTag      // Enum only
}

func (n *TypeDef) Span() source.Span { return n.Sp }

// TypeDefKind distinguishes the three typedef shapes MS supports.
type TypeDefKind uint8

const (
	TypeDefSynonym TypeDefKind = iota
	TypeDefEnum
	TypeDefStruct
)

// StructField is one `Type name;` member of a struct typedef.
type StructField struct {
	Sp   source.Span
	Type *TypeExpr
	Name string
}

// EnumTag is one member of an enum typedef: a bare tag (Idle) or a tag
// carrying a payload type (Valid { Bit#(8) data }).
type EnumTag struct {
	Sp     source.Span
	Name   string
	Fields []StructField // empty for a payload-free tag
}
