// Package ast defines the parse-tree node types produced by the Minispec
// parser. MS source files are small and short-lived (one elaboration
// pass each), so the tree is an ordinary pointer graph rather than an
// arena-indexed IR: simpler to build, walk, and garbage-collect, at the
// cost of the stable IDs an incremental pipeline would need and that MS
// has no use for.
package ast

import "minispec/internal/source"

// Node is implemented by every AST node. Span returns the node's full
// source extent, used both for diagnostics and for translated-code
// source-map entries.
type Node interface {
	Span() source.Span
}

// Package is the root node of one parsed source file: an ordered sequence
// of imports followed by top-level items (modules, functions, typedefs).
type Package struct {
	File    *source.File
	Imports []*Import
	Items   []Item
}

func (p *Package) Span() source.Span {
	var sp source.Span
	if p.File != nil {
		sp.File = p.File.ID
	}
	switch {
	case len(p.Imports) > 0:
		sp.Start = p.Imports[0].Span().Start
	case len(p.Items) > 0:
		sp.Start = p.Items[0].Span().Start
	}
	switch {
	case len(p.Items) > 0:
		sp.End = p.Items[len(p.Items)-1].Span().End
	case len(p.Imports) > 0:
		sp.End = p.Imports[len(p.Imports)-1].Span().End
	}
	return sp
}

// Import is a top-level `import Foo;` or `bsvimport Bar;` directive.
type Import struct {
	Sp     source.Span
	Name   string
	IsBSV  bool // true for bsvimport (backend-native module, no elaboration)
}

func (n *Import) Span() source.Span { return n.Sp }

// Item is any top-level declaration: ModuleDef, FunctionDef, or TypeDef.
type Item interface {
	Node
	itemNode()
}
