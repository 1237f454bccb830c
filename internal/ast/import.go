package ast

import "minispec/internal/source"

// NewImport builds an Import node (see ast.go for the Import type itself).
func NewImport(sp source.Span, name string, isBSV bool) *Import {
	return &Import{Sp: sp, Name: name, IsBSV: isBSV}
}
