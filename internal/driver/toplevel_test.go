package driver

import (
	"testing"

	"minispec/internal/source"
	"minispec/internal/value"
)

func TestParseTopLevelArgBareName(t *testing.T) {
	fs := source.NewFileSet()
	name, params, err := parseTopLevelArg(fs, "mkCounter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "mkCounter" {
		t.Fatalf("name = %q, want %q", name, "mkCounter")
	}
	if params != nil {
		t.Fatalf("params = %v, want nil", params)
	}
}

func TestParseTopLevelArgSingleIntParam(t *testing.T) {
	fs := source.NewFileSet()
	name, params, err := parseTopLevelArg(fs, "Shifter#(4)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Shifter" {
		t.Fatalf("name = %q, want %q", name, "Shifter")
	}
	want := []value.ParamValue{value.IntParam(4)}
	if len(params) != 1 || params[0] != want[0] {
		t.Fatalf("params = %+v, want %+v", params, want)
	}
}

func TestParseTopLevelArgFunctionWithIntParam(t *testing.T) {
	fs := source.NewFileSet()
	name, params, err := parseTopLevelArg(fs, "g#(8)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "g" {
		t.Fatalf("name = %q, want %q", name, "g")
	}
	if len(params) != 1 || params[0].IsUse || params[0].Int != 8 {
		t.Fatalf("params = %+v, want a single Int(8) param", params)
	}
}

func TestParseTopLevelArgNestedParametricUse(t *testing.T) {
	fs := source.NewFileSet()
	name, params, err := parseTopLevelArg(fs, "Wrap#(Vector#(4, Bit#(8)))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Wrap" {
		t.Fatalf("name = %q, want %q", name, "Wrap")
	}
	if len(params) != 1 || !params[0].IsUse {
		t.Fatalf("params = %+v, want a single nested-use param", params)
	}
	nested := params[0].Use
	if nested.Name != "Vector" || len(nested.Params) != 2 {
		t.Fatalf("nested use = %+v, want Vector with 2 params", nested)
	}
	if nested.Params[0].IsUse || nested.Params[0].Int != 4 {
		t.Fatalf("nested.Params[0] = %+v, want Int(4)", nested.Params[0])
	}
	inner := nested.Params[1]
	if !inner.IsUse || inner.Use.Name != "Bit" || len(inner.Use.Params) != 1 {
		t.Fatalf("nested.Params[1] = %+v, want Bit#(8) use", inner)
	}
	if inner.Use.Params[0].IsUse || inner.Use.Params[0].Int != 8 {
		t.Fatalf("Bit param = %+v, want Int(8)", inner.Use.Params[0])
	}
}

func TestParseTopLevelArgRejectsMalformedGrammar(t *testing.T) {
	fs := source.NewFileSet()
	cases := []string{
		"Shifter#(",        // unterminated param list
		"Shifter#()",       // empty param list
		"4",                // a bare integer is not a valid top-level name
		"Shifter#(4) junk", // trailing garbage after a valid expression
		"",                 // empty string
	}
	for _, raw := range cases {
		if _, _, err := parseTopLevelArg(fs, raw); err == nil {
			t.Errorf("parseTopLevelArg(%q) succeeded, want an error", raw)
		}
	}
}

func TestParseUnsizedIntBaseForms(t *testing.T) {
	cases := []struct {
		text string
		want int64
	}{
		{"42", 42},
		{"'d42", 42},
		{"'b101", 5},
		{"'h2a", 42},
	}
	for _, c := range cases {
		got, err := parseUnsizedInt(c.text)
		if err != nil {
			t.Errorf("parseUnsizedInt(%q) error: %v", c.text, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseUnsizedInt(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestParseUnsizedIntRejectsSizedLiteral(t *testing.T) {
	if _, err := parseUnsizedInt("8'd42"); err == nil {
		t.Fatalf("parseUnsizedInt(%q) succeeded, want an error for a sized literal", "8'd42")
	}
}
