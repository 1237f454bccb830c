package testkit

import (
	"testing"

	"minispec/internal/diag"
	"minispec/internal/parser"
	"minispec/internal/source"
)

func parseSrc(t *testing.T, src string) (*source.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ms", []byte(src))
	file := fs.Get(id)
	bag := diag.NewBag(100)
	res := parser.ParseFile(fs, file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	if err := CheckSpanInvariants(res.Package, file); err != nil {
		t.Fatalf("invariant check on parse failed: %v", err)
	}
	return file, bag
}

func TestCheckSpanInvariantsModule(t *testing.T) {
	parseSrc(t, `
module mkAdder(Empty);
    Reg#(Integer) r <- mkReg(0);
endmodule
`)
}

func TestCheckSpanInvariantsFunction(t *testing.T) {
	parseSrc(t, `
function Integer add#(Integer n)(Integer a, Integer b);
    return a + b;
endfunction
`)
}

func TestCheckSpanInvariantsEmptyPackage(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("empty.ms", []byte(""))
	file := fs.Get(id)
	bag := diag.NewBag(10)
	res := parser.ParseFile(fs, file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err := CheckSpanInvariants(res.Package, file); err != nil {
		t.Fatalf("empty package should have no members to violate invariants: %v", err)
	}
}

func TestCheckSpanInvariantsNilInputs(t *testing.T) {
	if err := CheckSpanInvariants(nil, nil); err == nil {
		t.Fatalf("expected error for nil package and file")
	}
}
