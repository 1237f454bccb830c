package tcbuf

import (
	"testing"

	"minispec/internal/value"
)

func TestEmitNodeInt(t *testing.T) {
	b := New()
	b.EmitNode(nil, value.Int(42))
	if got := b.ToFragment().Text; got != "42" {
		t.Fatalf("got %q, want %q", got, "42")
	}
}

func TestEmitNodeParametricUseRecordsUse(t *testing.T) {
	b := New()
	u := &value.ParametricUse{Name: "mkFoo", Params: []value.ParamValue{value.IntParam(8)}}
	b.EmitNode(nil, value.FromUse(u))
	if got := b.ToFragment().Text; got != "mkFoo#(8)" {
		t.Fatalf("got %q", got)
	}
	uses := b.DequeueParametricUses()
	if len(uses) != 1 || !uses[0].Equal(u) {
		t.Fatalf("got %#v", uses)
	}
	if more := b.DequeueParametricUses(); len(more) != 0 {
		t.Fatalf("expected empty after dequeue, got %#v", more)
	}
}

func TestEmitNodeSkipEmitsNothing(t *testing.T) {
	b := New()
	b.EmitText("before;")
	b.EmitNode(nil, value.Skip)
	b.EmitText("after;")
	if got := b.ToFragment().Text; got != "before;after;" {
		t.Fatalf("got %q", got)
	}
}

func TestStartEndRecordsRegion(t *testing.T) {
	b := New()
	b.EmitStart(nil)
	b.EmitText("module mkFoo;")
	b.EmitEnd("module mkFoo")
	f := b.ToFragment()
	if len(f.SrcEntries) != 1 || f.SrcEntries[0].Start != 0 || f.SrcEntries[0].End != uint32(len("module mkFoo;")) {
		t.Fatalf("got %#v", f.SrcEntries)
	}
	if len(f.InfoEntries) != 1 || f.InfoEntries[0].Label != "module mkFoo" {
		t.Fatalf("got %#v", f.InfoEntries)
	}
}

func TestEmptyRegionDropped(t *testing.T) {
	b := New()
	b.EmitStart(nil)
	b.EmitEnd("should not appear")
	f := b.ToFragment()
	if len(f.SrcEntries) != 0 || len(f.InfoEntries) != 0 {
		t.Fatalf("expected no entries for an empty region, got %#v / %#v", f.SrcEntries, f.InfoEntries)
	}
}

func TestSpliceFragmentShiftsOffsets(t *testing.T) {
	inner := New()
	inner.EmitStart(nil)
	inner.EmitText("inner")
	inner.EmitEnd("inner label")
	innerFrag := inner.ToFragment()

	outer := New()
	outer.EmitText("prefix-")
	outer.EmitNode(nil, value.FromFragment(innerFrag))
	f := outer.ToFragment()

	if got := f.Text; got != "prefix-inner" {
		t.Fatalf("got %q", got)
	}
	if len(f.SrcEntries) != 1 || f.SrcEntries[0].Start != 7 || f.SrcEntries[0].End != 12 {
		t.Fatalf("got %#v", f.SrcEntries)
	}
}

func TestEmitLineLiteralsCarryOwnSpacing(t *testing.T) {
	b := New()
	b.EmitLine("input Integer n", ";")
	got := b.ToFragment().Text
	want := "input Integer n;\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
