package parser

import (
	"testing"

	"minispec/internal/ast"
	"minispec/internal/diag"
	"minispec/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.Package, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ms", []byte(src))
	bag := diag.NewBag(100)
	res := ParseFile(fs, fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return res.Package, bag
}

func TestParseFunctionDef(t *testing.T) {
	pkg, bag := parseSrc(t, `
function Integer add#(Integer n)(Integer a, Integer b);
    return a + b;
endfunction
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(pkg.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(pkg.Items))
	}
	fn, ok := pkg.Items[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("item is %T, want *ast.FunctionDef", pkg.Items[0])
	}
	if fn.Name != "add" {
		t.Fatalf("got name %q, want %q", fn.Name, "add")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(fn.Params))
	}
	if len(fn.Body) != 1 {
		t.Fatalf("got %d body stmts, want 1", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.ReturnStmt", fn.Body[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("return value is %#v, want a + expr", ret.Value)
	}
}

func TestParseModuleWithRuleAndMethod(t *testing.T) {
	pkg, bag := parseSrc(t, `
module mkCounter(Empty);
    Integer count = 0;
    rule tick;
        count = count + 1;
    endrule
    method Integer getCount();
        return count;
    endmethod
endmodule
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	mod, ok := pkg.Items[0].(*ast.ModuleDef)
	if !ok {
		t.Fatalf("item is %T, want *ast.ModuleDef", pkg.Items[0])
	}
	if mod.Name != "mkCounter" {
		t.Fatalf("got name %q", mod.Name)
	}
	if len(mod.Rules) != 1 || mod.Rules[0].Name != "tick" {
		t.Fatalf("got rules %#v", mod.Rules)
	}
	if len(mod.Methods) != 1 || mod.Methods[0].Name != "getCount" {
		t.Fatalf("got methods %#v", mod.Methods)
	}
}

func TestParseTypedefEnumAndStruct(t *testing.T) {
	pkg, bag := parseSrc(t, `
typedef enum { Idle, Busy } State;
typedef struct { Integer x; Integer y; } Point;
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(pkg.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(pkg.Items))
	}
	st, ok := pkg.Items[0].(*ast.TypeDef)
	if !ok || st.Kind != ast.TypeDefEnum || len(st.Tags) != 2 {
		t.Fatalf("got %#v", pkg.Items[0])
	}
	sd, ok := pkg.Items[1].(*ast.TypeDef)
	if !ok || sd.Kind != ast.TypeDefStruct || len(sd.Fields) != 2 {
		t.Fatalf("got %#v", pkg.Items[1])
	}
}

func TestParseImport(t *testing.T) {
	pkg, bag := parseSrc(t, "import Vector;\nbsvimport FIFO;\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(pkg.Imports) != 2 {
		t.Fatalf("got %d imports, want 2", len(pkg.Imports))
	}
	if pkg.Imports[0].Name != "Vector" || pkg.Imports[1].Name != "FIFO" || !pkg.Imports[1].IsBSV {
		t.Fatalf("got %#v", pkg.Imports)
	}
}

func TestParseRecoversFromSyntaxError(t *testing.T) {
	pkg, bag := parseSrc(t, `
function Integer bad(;
endfunction
function Integer good(); return 1; endfunction
`)
	if !bag.HasErrors() {
		t.Fatal("expected a syntax error on the malformed function")
	}
	var names []string
	for _, it := range pkg.Items {
		if fn, ok := it.(*ast.FunctionDef); ok {
			names = append(names, fn.Name)
		}
	}
	found := false
	for _, n := range names {
		if n == "good" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected recovery to still parse 'good', got %v", names)
	}
}
