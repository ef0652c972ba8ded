package mapping_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/JonahSussman/sequoia-diff/mapping"
	"github.com/JonahSussman/sequoia-diff/node"
)

func TestPutAndHas(t *testing.T) {
	c := qt.New(t)

	s := mapping.New()
	a := node.Leaf("id", "a", nil)
	b := node.Leaf("id", "b", nil)
	s.Put(a, b)

	c.Assert(s.Has(a, b), qt.IsTrue)
	dst, ok := s.ContainsSrc(a)
	c.Assert(ok, qt.IsTrue)
	c.Assert(dst, qt.Equals, b)

	src, ok := s.ContainsDst(b)
	c.Assert(ok, qt.IsTrue)
	c.Assert(src, qt.Equals, a)
}

func TestPutRecursively(t *testing.T) {
	c := qt.New(t)

	srcRoot := node.New("block", nil, nil)
	srcA := node.Leaf("id", "a", nil)
	srcB := node.Leaf("id", "b", nil)
	srcRoot.AppendChild(srcA)
	srcRoot.AppendChild(srcB)

	dstRoot := node.New("block", nil, nil)
	dstA := node.Leaf("id", "a", nil)
	dstB := node.Leaf("id", "b", nil)
	dstRoot.AppendChild(dstA)
	dstRoot.AppendChild(dstB)

	s := mapping.New()
	s.PutRecursively(srcRoot, dstRoot)

	c.Assert(s.Len(), qt.Equals, 3)
	c.Assert(s.Has(srcA, dstA), qt.IsTrue)
	c.Assert(s.Has(srcB, dstB), qt.IsTrue)
}

func TestPop(t *testing.T) {
	c := qt.New(t)

	s := mapping.New()
	a := node.Leaf("id", "a", nil)
	b := node.Leaf("id", "b", nil)
	s.Put(a, b)
	s.Pop(a, b)

	_, ok := s.ContainsSrc(a)
	c.Assert(ok, qt.IsFalse)
	_, ok = s.ContainsDst(b)
	c.Assert(ok, qt.IsFalse)
}

func TestIsMappingAllowed(t *testing.T) {
	c := qt.New(t)

	s := mapping.New()
	a := node.Leaf("id", "a", nil)
	b := node.Leaf("id", "b", nil)
	other := node.Leaf("expr", "c", nil)

	c.Assert(s.IsMappingAllowed(a, b), qt.IsTrue)
	c.Assert(s.IsMappingAllowed(a, other), qt.IsFalse) // type mismatch

	s.Put(a, b)
	c.Assert(s.IsMappingAllowed(a, b), qt.IsFalse) // already mapped
}

func TestBijectivity(t *testing.T) {
	c := qt.New(t)

	s := mapping.New()
	for i := 0; i < 5; i++ {
		s.Put(node.Leaf("id", "x", nil), node.Leaf("id", "y", nil))
	}
	for _, p := range s.Pairs() {
		dst, ok := s.ContainsSrc(p.Src)
		c.Assert(ok, qt.IsTrue)
		c.Assert(dst, qt.Equals, p.Dst)

		src, ok := s.ContainsDst(p.Dst)
		c.Assert(ok, qt.IsTrue)
		c.Assert(src, qt.Equals, p.Src)
	}
}
