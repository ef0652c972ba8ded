package editscript

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestLCSBasic(t *testing.T) {
	c := qt.New(t)

	x := []string{"a", "b", "c", "d"}
	y := []string{"z", "b", "e", "d"}

	got := lcs(x, y, func(a, b string) bool { return a == b })
	c.Assert(got, qt.HasLen, 2)
	c.Assert(got[0], qt.Equals, pair[string, string]{"b", "b"})
	c.Assert(got[1], qt.Equals, pair[string, string]{"d", "d"})
}

func TestLCSNoCommonElements(t *testing.T) {
	c := qt.New(t)

	got := lcs([]string{"a", "b"}, []string{"x", "y"}, func(a, b string) bool { return a == b })
	c.Assert(got, qt.HasLen, 0)
}

func TestLCSAllCommon(t *testing.T) {
	c := qt.New(t)

	x := []string{"a", "b", "c"}
	got := lcs(x, x, func(a, b string) bool { return a == b })
	c.Assert(got, qt.HasLen, 3)
}

func TestLCSCustomEquality(t *testing.T) {
	c := qt.New(t)

	x := []string{"Apple", "Banana"}
	y := []string{"APPLE", "CHERRY"}
	got := lcs(x, y, func(a, b string) bool { return lower(a) == lower(b) })
	c.Assert(got, qt.HasLen, 1)
	c.Assert(got[0].X, qt.Equals, "Apple")
}

func lower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

func TestLCSEmptyInputs(t *testing.T) {
	c := qt.New(t)

	c.Assert(lcs([]int{}, []int{1, 2}, func(a, b int) bool { return a == b }), qt.HasLen, 0)
	c.Assert(lcs([]int{1, 2}, []int{}, func(a, b int) bool { return a == b }), qt.HasLen, 0)
}

func TestLCSRepeatingElements(t *testing.T) {
	c := qt.New(t)

	x := []int{1, 1, 2, 1}
	y := []int{1, 2, 1, 1}
	got := lcs(x, y, func(a, b int) bool { return a == b })
	c.Assert(got, qt.HasLen, 3)
}
