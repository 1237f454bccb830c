// Package backdiag back-translates the backend HDL compiler's own
// diagnostics onto Minispec source. The backend only ever sees the
// translated text, so every location and identifier in its output names
// something in that file; this package re-anchors each one through the
// elaborator's SourceMap and rewrites the synthesized names
// (mkFoo constructors, ___input methods) back to what the user wrote.
package backdiag

import (
	"regexp"
	"strconv"
	"strings"

	"minispec/internal/diag"
	"minispec/internal/source"
	"minispec/internal/sourcemap"
)

// headerPattern matches the backend's per-message location header:
// "Translated.bsv", line 12, column 5: (T0004)
var headerPattern = regexp.MustCompile(`^"([^"]+)",\s*line\s*(\d+),\s*column\s*(\d+):\s*(?:\(([A-Z]\d+)\))?\s*`)

// knownCode maps a backend error code (or, failing that, a substring of
// its message) to the catalogue entry the driver reports under.
var knownCode = map[string]diag.Code{
	"T0020": diag.BackTypeMismatch,
	"T0080": diag.BackTypeMismatch,
	"T0003": diag.BackUnboundCtor,
	"T0004": diag.BackUnboundVar,
	"T0007": diag.BackUnboundType,
	"G0005": diag.BackRuleConflict,
}

var messageHints = []struct {
	substr string
	code   diag.Code
}{
	{"Arith#", diag.BackNoArith},
	{"Ord#", diag.BackNoOrd},
	{"Literal#", diag.BackNoLiteral},
}

// message is one parsed backend diagnostic before re-anchoring.
type message struct {
	file   string
	line   int
	col    int
	code   string
	text   string
}

// parse splits raw backend output into individual messages. The backend
// interleaves stdout and stderr and wraps long lines, so messages are
// flattened by joining every line until the next header (or end of
// output) into one text block.
func parse(raw string) []message {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")

	var out []message
	var cur *message
	for _, line := range lines {
		if m := headerPattern.FindStringSubmatch(line); m != nil {
			if cur != nil {
				out = append(out, *cur)
			}
			ln, _ := strconv.Atoi(m[2])
			col, _ := strconv.Atoi(m[3])
			rest := strings.TrimSpace(line[len(m[0]):])
			cur = &message{file: m[1], line: ln, col: col, code: m[4], text: rest}
			continue
		}
		if cur == nil {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		cur.text = strings.TrimSpace(cur.text + " " + trimmed)
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

// classify picks the catalogue code for a message, falling back to
// BackGeneric (pass the backend's own text through verbatim) for anything
// this driver doesn't specifically recognize.
func classify(m message) diag.Code {
	if code, ok := knownCode[m.code]; ok {
		return code
	}
	for _, h := range messageHints {
		if strings.Contains(m.text, h.substr) {
			return h.code
		}
	}
	return diag.BackGeneric
}

// rewriteNames turns the synthesized constructor/method names the
// elaborator emitted back into what the user wrote: "mkFoo" -> "Foo",
// and strips the "___input" method-name marker.
func rewriteNames(s string) string {
	s = strings.ReplaceAll(s, "___input", "")
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	})
	for _, w := range words {
		if strings.HasPrefix(w, "mk") && len(w) > 2 && w[2] >= 'A' && w[2] <= 'Z' {
			s = strings.ReplaceAll(s, w, w[2:])
		}
	}
	return s
}

// lineIndex returns the byte offset at which each line of translatedText
// starts (element 0 is line 1); offsetFor uses it to convert a backend
// (1-based line, 1-based column) position into a byte offset.
func lineIndex(translatedText string) []int {
	idx := []int{0}
	for i, r := range translatedText {
		if r == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func offsetFor(idx []int, line, col int) (uint32, bool) {
	if line < 1 || line > len(idx) {
		return 0, false
	}
	off := idx[line-1] + (col - 1)
	if off < 0 {
		return 0, false
	}
	return uint32(off), true
}

// Translate parses raw backend output, re-anchors each message through sm
// onto fs, and reports it through reporter. Messages the sourcemap can't
// place (a location outside any recorded entry, most often backend
// library-internal spans) are still reported, anchored at a zero span, so
// nothing the backend says is silently dropped.
func Translate(raw string, translatedText string, sm *sourcemap.SourceMap, reporter diag.Reporter) {
	idx := lineIndex(translatedText)
	for _, m := range parse(raw) {
		code := classify(m)
		text := rewriteNames(m.text)

		var primary source.Span
		var notes []diag.Note
		if off, ok := offsetFor(idx, m.line, m.col); ok && sm != nil {
			if entry, found := sm.Find(off); found {
				primary = entry.Node.Span()
			}
			for _, ctx := range sm.GetContextInfo(off) {
				notes = append(notes, diag.Note{Msg: ctx})
			}
		}
		b := diag.ReportError(reporter, code, primary, text)
		for _, n := range notes {
			b.WithNote(n.Span, n.Msg)
		}
		b.Emit()
	}
}
