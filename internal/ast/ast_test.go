package ast

import (
	"testing"

	"minispec/internal/source"
)

func TestPackageSpanSpansImportsAndItems(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ms", []byte("import Foo;\nfunction Integer id(); return 0; endfunction\n"))

	imp := &Import{Sp: source.Span{File: id, Start: 0, End: 11}, Name: "Foo"}
	fn := &FunctionDef{Sp: source.Span{File: id, Start: 12, End: 57}, Name: "id"}
	pkg := &Package{File: fs.Get(id), Imports: []*Import{imp}, Items: []Item{fn}}

	sp := pkg.Span()
	if sp.Start != 0 || sp.End != 57 {
		t.Fatalf("got span [%d,%d), want [0,57)", sp.Start, sp.End)
	}
}

func TestTextSlicesSource(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ms", []byte("Integer x = 3;"))
	lit := &IntLiteral{Sp: source.Span{File: id, Start: 12, End: 13}, Text: "3"}
	if got := Text(fs, lit); got != "3" {
		t.Fatalf("got %q, want %q", got, "3")
	}
}
