// Package tcbuf implements the translated-code buffer: the append-only
// emitter the elaborator writes Minispec's backend-HDL translation into,
// recording byte-range-to-parse-node and byte-range-to-breadcrumb maps as
// it goes so diagnostics from the backend compiler can be re-anchored to
// the original Minispec source (see internal/sourcemap).
package tcbuf

import (
	"strconv"
	"strings"

	"minispec/internal/ast"
	"minispec/internal/sourcemap"
	"minispec/internal/value"
)

type srcEntry struct {
	start, end uint32
	node       ast.Node
}

type infoEntry struct {
	start, end uint32
	label      string
}

type regionMark struct {
	start uint32
	node  ast.Node
}

// Buffer accumulates translated source text plus the maps needed to
// rebuild a SourceMap once elaboration of a module finishes.
type Buffer struct {
	text  strings.Builder
	src   []srcEntry
	info  []infoEntry
	uses  []*value.ParametricUse
	marks []regionMark
}

// New returns an empty buffer.
func New() *Buffer { return &Buffer{} }

// Len returns the number of bytes emitted so far.
func (b *Buffer) Len() uint32 { return uint32(b.text.Len()) }

// EmitText appends s verbatim.
func (b *Buffer) EmitText(s string) { b.text.WriteString(s) }

// EmitLine appends each string part in order, inserting a single space
// between two adjacent parse-tree arguments (but never next to a literal
// string arg, which is expected to already carry whatever spacing it
// needs), then a trailing newline. A parse-tree argument goes to EmitNode
// with no computed value, which appends nothing, so it contributes only
// that separating space.
func (b *Buffer) EmitLine(parts ...any) {
	for i, p := range parts {
		if i > 0 {
			_, prevNode := parts[i-1].(ast.Node)
			_, curNode := p.(ast.Node)
			if prevNode && curNode {
				b.text.WriteByte(' ')
			}
		}
		switch v := p.(type) {
		case string:
			b.text.WriteString(v)
		case ast.Node:
			b.EmitNode(v, value.None)
		}
	}
	b.text.WriteByte('\n')
}

// EmitNode renders v (the elaborator's computed value for node) according
// to §4.3: literals render as decimal/True/False, a ParametricUse renders
// to its canonical string and is recorded, a Skip emits nothing, a
// TranslatedFragment is spliced with its offsets shifted to the buffer's
// current length, and anything else (None, Error) appends nothing: the
// caller supplies the node's raw source text itself via EmitRaw.
func (b *Buffer) EmitNode(node ast.Node, v value.Value) {
	switch v.Kind {
	case value.KindInt:
		b.text.WriteString(strconv.FormatInt(v.Int, 10))
	case value.KindBool:
		if v.Bool {
			b.text.WriteString("True")
		} else {
			b.text.WriteString("False")
		}
	case value.KindParametricUse:
		b.uses = append(b.uses, v.Use)
		b.text.WriteString(v.Use.Render())
	case value.KindSkip:
		// emit nothing
	case value.KindTranslatedFragment:
		b.splice(v.Fragment)
	default:
		// None, Error, or no computed value: fall back to the node's own
		// source text, supplied by the caller via EmitRaw.
	}
}

// EmitRaw appends the node's original source text unchanged and records
// its [start,end) against node, used for the "otherwise append the node's
// raw text" fallback in §4.3 EmitNode.
func (b *Buffer) EmitRaw(node ast.Node, text string) {
	start := b.Len()
	b.text.WriteString(text)
	b.src = append(b.src, srcEntry{start: start, end: b.Len(), node: node})
}

func (b *Buffer) splice(f *value.Fragment) {
	delta := b.Len()
	b.text.WriteString(f.Text)
	for _, e := range f.SrcEntries {
		b.src = append(b.src, srcEntry{start: e.Start + delta, end: e.End + delta, node: e.Node})
	}
	for _, e := range f.InfoEntries {
		b.info = append(b.info, infoEntry{start: e.Start + delta, end: e.End + delta, label: e.Label})
	}
	b.uses = append(b.uses, f.ParametricUses...)
}

// AppendFragment splices f onto the end of the buffer, shifting its
// recorded offsets to land at the buffer's current length. The driver uses
// this to assemble a file's final output from its base buffer plus every
// fragment the parametric worklist specialized.
func (b *Buffer) AppendFragment(f *value.Fragment) { b.splice(f) }

// EmitStart marks the beginning of a region that EmitEnd will close.
func (b *Buffer) EmitStart(node ast.Node) { b.marks = append(b.marks, regionMark{start: b.Len(), node: node}) }

// EmitEnd closes the most recently opened region, recording
// [start,end)->node in the source map and, if label is non-empty,
// [start,end)->label in the breadcrumb map. Empty regions are dropped.
func (b *Buffer) EmitEnd(label string) {
	n := len(b.marks)
	if n == 0 {
		return
	}
	m := b.marks[n-1]
	b.marks = b.marks[:n-1]
	end := b.Len()
	if end == m.start {
		return
	}
	b.src = append(b.src, srcEntry{start: m.start, end: end, node: m.node})
	if label != "" {
		b.info = append(b.info, infoEntry{start: m.start, end: end, label: label})
	}
}

// DequeueParametricUses returns the parametric uses recorded since the
// last call and clears the accumulator; the driver calls this once, after
// every file has been loaded and elaborated, to seed the worklist.
func (b *Buffer) DequeueParametricUses() []*value.ParametricUse {
	out := b.uses
	b.uses = nil
	return out
}

// ToFragment snapshots the buffer's current contents as a standalone
// Fragment, for nesting one elaboration's output inside another's (Specialize
// and SpecializeTopLevelFunction return a specialization's output this way).
func (b *Buffer) ToFragment() *value.Fragment {
	f := &value.Fragment{Text: b.text.String(), ParametricUses: append([]*value.ParametricUse(nil), b.uses...)}
	for _, e := range b.src {
		f.SrcEntries = append(f.SrcEntries, value.SrcEntry{Start: e.start, End: e.end, Node: e.node})
	}
	for _, e := range b.info {
		f.InfoEntries = append(f.InfoEntries, value.InfoEntry{Start: e.start, End: e.end, Label: e.label})
	}
	return f
}

// Text returns the full text emitted so far without consuming anything.
func (b *Buffer) Text() string { return b.text.String() }

// Finalize builds the immutable SourceMap for the completed translation
// of topModule from everything recorded so far.
func (b *Buffer) Finalize(topModule string) *sourcemap.SourceMap {
	output := b.text.String()
	srcEntries := make([]sourcemap.Entry, len(b.src))
	for i, e := range b.src {
		srcEntries[i] = sourcemap.Entry{Start: e.start, End: e.end, Node: e.node}
	}
	infoEntries := make([]sourcemap.InfoEntry, len(b.info))
	for i, e := range b.info {
		infoEntries[i] = sourcemap.InfoEntry{Start: e.start, End: e.end, Label: e.label}
	}
	return sourcemap.Build(topModule, srcEntries, infoEntries, output)
}
