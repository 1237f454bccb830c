package intctx

import (
	"testing"

	"minispec/internal/value"
)

func TestDefineAndGetUninitialized(t *testing.T) {
	c := New()
	if !c.DefineVar("n", true) {
		t.Fatal("expected first definition to succeed")
	}
	if c.DefineVar("n", true) {
		t.Fatal("expected redefinition in same level to fail")
	}
	_, ok, err := c.Get("n")
	if !ok || err == nil {
		t.Fatalf("expected uninitialized error, got ok=%v err=%v", ok, err)
	}
}

func TestSetThenGetWithinSameLevel(t *testing.T) {
	c := New()
	c.DefineVar("n", true)
	if !c.Set("n", value.Int(8)) {
		t.Fatal("expected Set to succeed")
	}
	v, ok, err := c.Get("n")
	if !ok || err != nil || v.Int != 8 {
		t.Fatalf("got v=%#v ok=%v err=%v", v, ok, err)
	}
}

func TestMutableLevelPassesThroughTransparently(t *testing.T) {
	c := New()
	c.DefineVar("n", true)
	c.Set("n", value.Int(1))

	c.EnterMutable()
	if !c.Set("n", value.Int(2)) {
		t.Fatal("expected Set through a Mutable level to succeed")
	}
	c.ExitLevel()

	v, _, err := c.Get("n")
	if err != nil || v.Int != 2 {
		t.Fatalf("got v=%#v err=%v, want 2/nil", v, err)
	}
}

func TestPoisoningLevelPoisonsOuterCellOnWrite(t *testing.T) {
	c := New()
	c.DefineVar("n", true)
	c.Set("n", value.Int(1))

	c.EnterPoisoning() // e.g. entering an if-branch
	if !c.Set("n", value.Int(2)) {
		t.Fatal("expected Set through a Poisoning level to succeed")
	}

	// Reading from the poisoning level itself sees the shadow value.
	v, ok, err := c.Get("n")
	if !ok || err != nil || v.Int != 2 {
		t.Fatalf("shadow read: got v=%#v ok=%v err=%v", v, ok, err)
	}
	c.ExitLevel()

	// Reading from the outer, original level now sees Poisoned, not 1.
	_, ok, err = c.Get("n")
	if !ok || err == nil {
		t.Fatalf("expected poisoned error after exiting the branch, got ok=%v err=%v", ok, err)
	}
}

func TestImmutableLevelBlocksSet(t *testing.T) {
	c := New() // outermost is Immutable
	c.EnterImmutable()
	c.DefineVar("n", true)
	c.Set("n", value.Int(1))

	c.EnterPoisoning()
	if ok := c.Set("n", value.Int(2)); !ok {
		t.Fatal("expected Set to succeed: n is defined in the level just inside the boundary")
	}
	c.ExitLevel() // back to the inner Immutable level holding n

	c.EnterPoisoning()
	if ok := c.Set("missing", value.Int(2)); ok {
		t.Fatal("expected Set of an undeclared name to fail at the Immutable boundary")
	}
}

func TestIsIntegerStopsAtShadowingNonInteger(t *testing.T) {
	c := New()
	c.DefineVar("x", false)
	c.EnterMutable()
	c.DefineVar("x", true)
	isInt, found := c.IsInteger("x")
	if !found || !isInt {
		t.Fatalf("inner x should shadow outer: isInt=%v found=%v", isInt, found)
	}
	c.ExitLevel()
	isInt, found = c.IsInteger("x")
	if !found || isInt {
		t.Fatalf("outer x should be non-integer: isInt=%v found=%v", isInt, found)
	}
}

func TestTypeBindingLookup(t *testing.T) {
	c := New()
	u := &value.ParametricUse{Name: "Bit", Params: []value.ParamValue{value.IntParam(8)}}
	c.SetType("t", u)
	got, ok := c.GetType("t")
	if !ok || !got.Equal(u) {
		t.Fatalf("got %#v, want %#v", got, u)
	}
}
