package value

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Role selects which color a rendered diagnostic header uses.
type Role uint8

const (
	RoleError Role = iota
	RoleWarning
	RoleNote
	RoleHighlight
	RoleFix
)

var roleColors = map[Role]*color.Color{
	RoleError:     color.New(color.FgRed, color.Bold),
	RoleWarning:   color.New(color.FgYellow, color.Bold),
	RoleNote:      color.New(color.FgCyan),
	RoleHighlight: color.New(color.FgMagenta, color.Bold),
	RoleFix:       color.New(color.FgGreen),
}

// RenderHeader colors label per its role, e.g. "error:" in bold red.
func RenderHeader(role Role, label string) string {
	c, ok := roleColors[role]
	if !ok {
		return label
	}
	return c.Sprint(label)
}

// CaretLine renders a source snippet followed by a caret line pointing at
// [start,end) within it, measuring column position in display cells via
// go-runewidth so wide or combining characters don't throw the caret off.
func CaretLine(snippet string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(snippet) {
		end = len(snippet)
	}
	if end < start {
		end = start
	}
	col := runewidth.StringWidth(snippet[:start])
	width := runewidth.StringWidth(snippet[start:end])
	if width < 1 {
		width = 1
	}
	var b strings.Builder
	b.WriteString(snippet)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", col))
	b.WriteString(color.New(color.FgRed, color.Bold).Sprint(strings.Repeat("^", width)))
	return b.String()
}

// RenderError formats one BasicError for terminal output, substituting
// $CTX with the quoted source text of e.Node (ctx is supplied by the
// caller, which has access to the FileSet needed to slice it).
func RenderError(e BasicError, ctx string) string {
	return fmt.Sprintf("%s %s", RenderHeader(RoleError, "error:"), e.Render(ctx))
}
