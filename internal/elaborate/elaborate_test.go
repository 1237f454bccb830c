package elaborate

import (
	"testing"

	"minispec/internal/ast"
	"minispec/internal/diag"
	"minispec/internal/parser"
	"minispec/internal/source"
)

// newTestElaborator parses src as a virtual file and returns an Elaborator
// plus the Bag its reporter drains into, ready for ElaborateFile.
func newTestElaborator(t *testing.T, src string) (*Elaborator, *ast.Package, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ms", []byte(src))
	file := fs.Get(id)
	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}

	res := parser.ParseFile(fs, file, parser.Options{Reporter: reporter})
	if res.Bag != nil {
		bag.Merge(res.Bag)
	}
	e := New(fs, reporter, DefaultLimits)
	return e, res.Package, bag
}

func TestElaborateFunctionFoldsIntegerArithmetic(t *testing.T) {
	src := `function Bit#(8) identity();
		Integer a = 3;
		Integer b = 4;
		return a + b;
	endfunction
	`
	e, pkg, bag := newTestElaborator(t, src)
	e.ElaborateFile(pkg)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	out := e.Buf.Text()
	if !contains(out, "return 7;") {
		t.Fatalf("expected folded arithmetic in output, got:\n%s", out)
	}
}

func TestElaborateFunctionRegistersParametric(t *testing.T) {
	src := `function Bit#(n) widen#(n)(Bit#(8) x);
		return x;
	endfunction
	`
	e, pkg, bag := newTestElaborator(t, src)
	e.ElaborateFile(pkg)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if _, ok := e.Reg.Lookup("widen"); !ok {
		t.Fatal("expected parametric function to be registered, not emitted")
	}
	if e.Buf.Text() != "" {
		t.Fatalf("expected a parametric function to emit nothing on the initial pass, got:\n%s", e.Buf.Text())
	}
}

func TestElaborateModuleUnrollsForLoop(t *testing.T) {
	src := `module mkCounter(Counter);
		method Action step();
			for (Integer i = 0; i < 3; i = i + 1)
				report(i);
		endmethod
	endmodule
	`
	e, pkg, bag := newTestElaborator(t, src)
	e.ElaborateFile(pkg)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	out := e.Buf.Text()
	for _, want := range []string{"interface Counter", "module mkCounter", "endmodule"} {
		if !contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestElaborateIfStmtCollapsesStaticCondition(t *testing.T) {
	src := `function Integer pick();
		Integer a = 0;
		if (True)
			a = 1;
		else
			a = 2;
		return a;
	endfunction
	`
	e, pkg, bag := newTestElaborator(t, src)
	e.ElaborateFile(pkg)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	out := e.Buf.Text()
	if !contains(out, "return 1;") {
		t.Fatalf("expected the taken (then) branch folded into the return, got:\n%s", out)
	}
}

func TestElaborateTypeDefEnumDerivesBitsEqFShow(t *testing.T) {
	src := `typedef enum { Idle, Busy } State;
	`
	e, pkg, bag := newTestElaborator(t, src)
	e.ElaborateFile(pkg)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	out := e.Buf.Text()
	if !contains(out, "deriving(Bits, Eq, FShow)") {
		t.Fatalf("expected auto-derived typeclasses, got:\n%s", out)
	}
}

func TestElaborateModuleInputWireWithDefault(t *testing.T) {
	src := `module mkM(M);
		input Bit#(8) x default = 0;
	endmodule
	`
	e, pkg, bag := newTestElaborator(t, src)
	e.ElaborateFile(pkg)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	out := e.Buf.Text()
	if !contains(out, "Wire#(Bit#(8)) x <- mkDWire(0);") {
		t.Fatalf("expected a defaulted input to rewrite to mkDWire, got:\n%s", out)
	}
	if !contains(out, "method Action x___input(Bit#(8) value); x <= value; endmethod") {
		t.Fatalf("expected the input-setter method to survive, got:\n%s", out)
	}
}

func TestElaborateModuleInputWireWithoutDefault(t *testing.T) {
	src := `module mkM(M);
		input Bit#(8) x;
	endmodule
	`
	e, pkg, bag := newTestElaborator(t, src)
	e.ElaborateFile(pkg)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	out := e.Buf.Text()
	if !contains(out, "Wire#(Bit#(8)) x <- mkBypassWire;") {
		t.Fatalf("expected a defaultless input to rewrite to mkBypassWire, got:\n%s", out)
	}
}

func TestElaborateRejectsReservedMkPrefixedIdentifier(t *testing.T) {
	src := `function Integer mkBogus();
		return 0;
	endfunction
	`
	e, pkg, bag := newTestElaborator(t, src)
	e.ElaborateFile(pkg)
	if !bag.HasErrors() {
		t.Fatal("expected a reserved-identifier error for a lower-case mk-prefixed name")
	}
}

func contains(s, sub string) bool {
	return len(s) >= len(sub) && indexOf(s, sub) >= 0
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
