package value

import "minispec/internal/ast"

// SrcEntry maps a [Start,End) byte range of a Fragment's Text to the
// parse-tree node it was elaborated from.
type SrcEntry struct {
	Start, End uint32
	Node       ast.Node
}

// InfoEntry maps a [Start,End) byte range of a Fragment's Text to a
// breadcrumb label (e.g. "for loop in foo.ms:12, iteration with i = 3").
type InfoEntry struct {
	Start, End uint32
	Label      string
}

// Fragment is a self-contained rewritten sub-tree produced by the
// elaborator (a module body, an unrolled loop iteration, a taken
// conditional branch) together with its own source-map entries. The
// translated-code buffer splices a Fragment's Text into its own output,
// offset-shifting SrcEntries and InfoEntries to match.
type Fragment struct {
	Text           string
	SrcEntries     []SrcEntry
	InfoEntries    []InfoEntry
	ParametricUses []*ParametricUse
}

// Shifted returns a copy of f with every entry's offsets moved forward by
// delta bytes, as when splicing f into a buffer already delta bytes long.
func (f *Fragment) Shifted(delta uint32) *Fragment {
	out := &Fragment{Text: f.Text, ParametricUses: f.ParametricUses}
	for _, e := range f.SrcEntries {
		out.SrcEntries = append(out.SrcEntries, SrcEntry{Start: e.Start + delta, End: e.End + delta, Node: e.Node})
	}
	for _, e := range f.InfoEntries {
		out.InfoEntries = append(out.InfoEntries, InfoEntry{Start: e.Start + delta, End: e.End + delta, Label: e.Label})
	}
	return out
}
