package lexer

import (
	"testing"

	"minispec/internal/source"
	"minispec/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ms", []byte(src))
	return All(fs.Get(id))
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestLexKeywordsAndIdents(t *testing.T) {
	toks := lexAll(t, "module Foo; Integer x = 3; endmodule")
	want := []token.Kind{
		token.KwModule, token.Ident, token.Semicolon,
		token.KwInteger, token.Ident, token.Assign, token.IntLit, token.Semicolon,
		token.KwEndmodule, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexUnsizedLiterals(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"42", token.IntLit},
		{"'hFF", token.IntLit},
		{"'b101", token.IntLit},
		{"8'd0", token.SizedIntLit},
		{"16'hFFFF", token.SizedIntLit},
	}
	for _, c := range cases {
		toks := lexAll(t, c.src)
		if toks[0].Kind != c.kind {
			t.Errorf("%q: got %s, want %s", c.src, toks[0].Kind, c.kind)
		}
	}
}

func TestLexOperators(t *testing.T) {
	toks := lexAll(t, "a <- b; x <= y ** 2 ^~ z")
	var ops []token.Kind
	for _, tk := range toks {
		if tk.Kind != token.Ident && tk.Kind != token.EOF && tk.Kind != token.IntLit && tk.Kind != token.Semicolon {
			ops = append(ops, tk.Kind)
		}
	}
	want := []token.Kind{token.LtMinus, token.LtEq, token.StarStar, token.CaretTilde}
	if len(ops) != len(want) {
		t.Fatalf("got %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("op %d: got %s, want %s", i, ops[i], want[i])
		}
	}
}

func TestLexSkipsComments(t *testing.T) {
	toks := lexAll(t, "// hi\nInteger x; /* block */ Integer y;")
	if len(toks) != 7 { // Integer x ; Integer y ; EOF
		t.Fatalf("got %d tokens: %v", len(toks), kinds(toks))
	}
}
