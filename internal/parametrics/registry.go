// Package parametrics holds the table of parametric definitions (modules,
// functions, typedefs, and structs declared with non-empty parameter
// formals) a program exposes, plus the worklist the driver drains to
// specialize each requested (name, params) fingerprint exactly once.
package parametrics

import (
	"minispec/internal/ast"
)

// DefKind names the shape of a registered definition, used to choose the
// breadcrumb label the driver attaches to each specialization.
type DefKind string

const (
	KindModule  DefKind = "module"
	KindFunc    DefKind = "function"
	KindTypedef DefKind = "typedef"
	KindStruct  DefKind = "struct"
)

// Definition is one top-level declaration that took at least one formal
// parameter, registered the first time the elaborator walks its file.
type Definition struct {
	Kind DefKind
	Name string
	Item ast.Item
}

// Registry maps a bare parametric name to its definition. Construction is
// append-only during the initial per-file walk; lookups happen afterwards,
// once per worklist entry.
type Registry struct {
	defs map[string]*Definition
}

// New returns an empty registry.
func New() *Registry { return &Registry{defs: make(map[string]*Definition)} }

// Register records def, the later of two same-named registrations wins
// (matches only one file is ever expected to declare a given top-level
// name; a conflict is caught earlier as a duplicate-symbol diagnostic).
func (r *Registry) Register(def *Definition) { r.defs[def.Name] = def }

// Lookup resolves a bare parametric name. ok is false for a name the
// registry never saw: it names a backend-native type or module, and the
// driver worklist silently drops the use per its fixpoint rule.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}
