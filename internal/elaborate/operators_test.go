package elaborate

import "testing"

func TestIntPow(t *testing.T) {
	cases := []struct {
		base, exp, want int64
	}{
		{2, 0, 1},
		{2, 1, 2},
		{2, 10, 1024},
		{3, 4, 81},
		{5, -1, 1},
	}
	for _, c := range cases {
		if got := intPow(c.base, c.exp); got != c.want {
			t.Errorf("intPow(%d, %d) = %d, want %d", c.base, c.exp, got, c.want)
		}
	}
}

func TestLog2Of(t *testing.T) {
	cases := []struct {
		n, want int64
	}{
		{0, 0},
		{-5, 0},
		{1, 0},
		{2, 1},
		{3, 1},
		{8, 3},
		{9, 3},
		{1024, 10},
	}
	for _, c := range cases {
		if got := log2Of(c.n); got != c.want {
			t.Errorf("log2Of(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestPopcount(t *testing.T) {
	cases := []struct {
		n    int64
		want int
	}{
		{0, 0},
		{1, 1},
		{7, 3},
		{255, 8},
	}
	for _, c := range cases {
		if got := popcount(c.n); got != c.want {
			t.Errorf("popcount(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}
