package driver

import (
	"fmt"
	"io"

	"minispec/internal/diag"
	"minispec/internal/source"
)

// PrintDiagnostics renders every diagnostic in bag as one
// "path:line:col: SEVERITY Exxxx: message" line, in the order bag.Sort()
// leaves them (by file and position, then severity). fs resolves each diagnostic's span back to
// a human line/column; a zero span (a whole-run diagnostic with no single
// anchor) prints just the message.
func PrintDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil {
		return
	}
	bag.Sort()
	for _, d := range bag.Items() {
		if fs == nil || d.Primary == (source.Span{}) {
			fmt.Fprintf(w, "%s E%04d: %s\n", d.Severity, d.Code, d.Message)
			continue
		}
		start, _ := fs.Resolve(d.Primary)
		path := fs.Get(d.Primary.File).Path
		fmt.Fprintf(w, "%s:%d:%d: %s E%04d: %s\n", path, start.Line, start.Col, d.Severity, d.Code, d.Message)
		for _, n := range d.Notes {
			if n.Span == (source.Span{}) {
				fmt.Fprintf(w, "  note: %s\n", n.Msg)
				continue
			}
			ns, _ := fs.Resolve(n.Span)
			npath := fs.Get(n.Span.File).Path
			fmt.Fprintf(w, "  %s:%d:%d: note: %s\n", npath, ns.Line, ns.Col, n.Msg)
		}
	}
}
