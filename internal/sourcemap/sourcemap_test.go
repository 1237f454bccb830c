package sourcemap

import "testing"

func TestFindExactMatchesLengthAndText(t *testing.T) {
	output := "module mkFoo(Empty);"
	sm := Build("mkFoo", []Entry{
		{Start: 7, End: 12, Node: nil},
	}, nil, output)

	if e, ok := sm.Find(7); !ok || e.End != 12 {
		t.Fatalf("Find: got %#v ok=%v", e, ok)
	}
	if _, ok := sm.FindExact(7, "mkFoo"); !ok {
		t.Fatal("FindExact: expected a match")
	}
	if _, ok := sm.FindExact(7, "wrong"); ok {
		t.Fatal("FindExact: expected no match for wrong text")
	}
}

func TestFindPicksSmallestRangeAtOffset(t *testing.T) {
	sm := Build("m", []Entry{
		{Start: 0, End: 20},
		{Start: 0, End: 5},
	}, nil, "aaaaabbbbbbbbbbbbbbb")
	e, ok := sm.Find(0)
	if !ok || e.End != 5 {
		t.Fatalf("got %#v, want the smaller [0,5) entry", e)
	}
}

func TestGetContextInfoOutermostFirst(t *testing.T) {
	sm := Build("m", nil, []InfoEntry{
		{Start: 0, End: 100, Label: "module mkFoo"},
		{Start: 10, End: 20, Label: "for loop iteration i = 1"},
	}, "")
	got := sm.GetContextInfo(15)
	want := []string{"In module mkFoo", "In for loop iteration i = 1"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestGetContextInfoExcludesNonEnclosing(t *testing.T) {
	sm := Build("m", nil, []InfoEntry{
		{Start: 0, End: 10, Label: "a"},
	}, "")
	if got := sm.GetContextInfo(50); len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
}
