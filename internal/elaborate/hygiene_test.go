package elaborate

import (
	"testing"

	"minispec/internal/diag"
	"minispec/internal/source"
)

func newHygieneElaborator(t *testing.T) (*Elaborator, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(10)
	return New(fs, diag.BagReporter{Bag: bag}, DefaultLimits), bag
}

func TestCheckIdentAcceptsOrdinaryNames(t *testing.T) {
	e, bag := newHygieneElaborator(t)
	for _, name := range []string{"x", "counter", "fifoDepth", "State"} {
		if !e.checkIdent(name, spanNode{}) {
			t.Errorf("expected %q to be accepted", name)
		}
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}

func TestCheckIdentRejectsMkPrefix(t *testing.T) {
	e, _ := newHygieneElaborator(t)
	if e.checkIdent("mkFifo", spanNode{}) {
		t.Fatal("expected mkFifo to be rejected")
	}
}

func TestCheckIdentAcceptsUpperCaseMkPrefix(t *testing.T) {
	e, _ := newHygieneElaborator(t)
	// A type/module name like "MkSomething" doesn't collide with the
	// lower-case "mk" constructor-prefix convention.
	if !e.checkIdent("MkSomething", spanNode{}) {
		t.Fatal("expected MkSomething to be accepted")
	}
}

func TestCheckIdentRejectsInputMarker(t *testing.T) {
	e, _ := newHygieneElaborator(t)
	if e.checkIdent("foo___input", spanNode{}) {
		t.Fatal("expected the ___input marker to be rejected")
	}
}

func TestCheckIdentRejectsReservedWords(t *testing.T) {
	e, _ := newHygieneElaborator(t)
	for _, word := range []string{"module", "rule", "endcase", "begin"} {
		if e.checkIdent(word, spanNode{}) {
			t.Errorf("expected reserved word %q to be rejected", word)
		}
	}
}

func TestCheckIdentAllowsEmptyName(t *testing.T) {
	e, bag := newHygieneElaborator(t)
	if !e.checkIdent("", spanNode{}) {
		t.Fatal("expected an empty name (no binding) to be a no-op accept")
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}
