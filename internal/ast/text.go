package ast

import "minispec/internal/source"

// Text returns the exact source slice a node was parsed from. Used by the
// translated-code buffer to re-emit untouched subtrees verbatim.
func Text(fs *source.FileSet, n Node) string {
	sp := n.Span()
	f := fs.Get(sp.File)
	if f == nil || sp.End > uint32(len(f.Content)) || sp.Start > sp.End {
		return ""
	}
	return string(f.Content[sp.Start:sp.End])
}
