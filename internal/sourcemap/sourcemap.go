// Package sourcemap builds and queries the immutable mapping from
// translated-output byte ranges back to the Minispec parse-tree nodes and
// breadcrumb labels that produced them, used by the diagnostic
// back-translator (internal/backdiag) to re-anchor backend compiler
// errors onto the original source.
package sourcemap

import (
	"sort"

	"minispec/internal/ast"
)

// Entry is one [Start,End) range mapped to the node that emitted it.
type Entry struct {
	Start, End uint32
	Node       ast.Node
	Text       string // the exact translated substring, cached for FindExact
}

// InfoEntry is one [Start,End) range mapped to a breadcrumb label.
type InfoEntry struct {
	Start, End uint32
	Label      string
}

// SourceMap is built once per translated file via Finalize and never
// mutated afterwards; all query methods are read-only and safe for
// concurrent use.
type SourceMap struct {
	TopModule string
	entries   []Entry     // sorted by Start, then by ascending length
	info      []InfoEntry // sorted by Start
}

// Build constructs a SourceMap from a buffer's recorded entries. output is
// the buffer's full emitted text, used to populate Entry.Text for
// FindExact.
func Build(topModule string, srcEntries []Entry, infoEntries []InfoEntry, output string) *SourceMap {
	sm := &SourceMap{TopModule: topModule}
	for _, e := range srcEntries {
		if int(e.End) <= len(output) && e.Start <= e.End {
			e.Text = output[e.Start:e.End]
		}
		sm.entries = append(sm.entries, e)
	}
	sm.info = append(sm.info, infoEntries...)
	sort.SliceStable(sm.entries, func(i, j int) bool {
		if sm.entries[i].Start != sm.entries[j].Start {
			return sm.entries[i].Start < sm.entries[j].Start
		}
		return (sm.entries[i].End - sm.entries[i].Start) < (sm.entries[j].End - sm.entries[j].Start)
	})
	sort.SliceStable(sm.info, func(i, j int) bool { return sm.info[i].Start < sm.info[j].Start })
	return sm
}

// Find locates the smallest emitted range starting exactly at offset.
func (sm *SourceMap) Find(offset uint32) (Entry, bool) {
	for _, e := range sm.entries {
		if e.Start == offset {
			return e, true
		}
		if e.Start > offset {
			break
		}
	}
	return Entry{}, false
}

// FindExact additionally requires the range's length and emitted text to
// equal text, used when a backend message names a specific identifier.
func (sm *SourceMap) FindExact(offset uint32, text string) (Entry, bool) {
	for _, e := range sm.entries {
		if e.Start != offset {
			if e.Start > offset {
				break
			}
			continue
		}
		if e.End-e.Start == uint32(len(text)) && e.Text == text {
			return e, true
		}
	}
	return Entry{}, false
}

// GetContextInfo returns every breadcrumb whose range encloses offset,
// outermost first (i.e. widest range first).
func (sm *SourceMap) GetContextInfo(offset uint32) []string {
	var matches []InfoEntry
	for _, e := range sm.info {
		if e.Start <= offset && offset < e.End {
			matches = append(matches, e)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return (matches[i].End - matches[i].Start) > (matches[j].End - matches[j].Start)
	})
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = "In " + m.Label
	}
	return out
}
