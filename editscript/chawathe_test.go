package editscript

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/JonahSussman/sequoia-diff/mapping"
	"github.com/JonahSussman/sequoia-diff/node"
)

func countActions[A Action](actions []Action) (out []A) {
	for _, a := range actions {
		if ta, ok := a.(A); ok {
			out = append(out, ta)
		}
	}
	return out
}

func TestChawatheIdenticalTreesProducesNoActions(t *testing.T) {
	c := qt.New(t)

	src := node.New("file", nil, nil)
	srcChild := node.Leaf("id", "a", nil)
	src.AppendChild(srcChild)

	dst := node.New("file", nil, nil)
	dstChild := node.Leaf("id", "a", nil)
	dst.AppendChild(dstChild)

	store := mapping.New()
	store.PutRecursively(src, dst)

	actions, err := GenerateChawathe(store, src, dst)
	c.Assert(err, qt.IsNil)
	c.Assert(actions, qt.HasLen, 0)
}

func TestChawatheEmitsUpdateForChangedLabel(t *testing.T) {
	c := qt.New(t)

	src := node.New("file", nil, nil)
	srcChild := node.Leaf("id", "a", nil)
	src.AppendChild(srcChild)

	dst := node.New("file", nil, nil)
	dstChild := node.Leaf("id", "b", nil)
	dst.AppendChild(dstChild)

	store := mapping.New()
	store.Put(src, dst)
	store.Put(srcChild, dstChild)

	actions, err := GenerateChawathe(store, src, dst)
	c.Assert(err, qt.IsNil)

	updates := countActions[*Update](actions)
	c.Assert(updates, qt.HasLen, 1)
	c.Assert(updates[0].Node, qt.Equals, srcChild)
	c.Assert(*updates[0].OldLabel, qt.Equals, "a")
	c.Assert(*updates[0].NewLabel, qt.Equals, "b")

	c.Assert(dst.Parent(), qt.IsNil)
}

func TestChawatheEmitsInsertForNewLeaf(t *testing.T) {
	c := qt.New(t)

	src := node.New("file", nil, nil)
	srcChild := node.Leaf("id", "a", nil)
	src.AppendChild(srcChild)

	dst := node.New("file", nil, nil)
	dstChild := node.Leaf("id", "a", nil)
	dst.AppendChild(dstChild)
	dstNew := node.Leaf("id", "b", nil)
	dst.AppendChild(dstNew)

	store := mapping.New()
	store.Put(src, dst)
	store.Put(srcChild, dstChild)

	actions, err := GenerateChawathe(store, src, dst)
	c.Assert(err, qt.IsNil)

	inserts := countActions[*Insert](actions)
	c.Assert(inserts, qt.HasLen, 1)
	c.Assert(inserts[0].Node, qt.Equals, dstNew)
	c.Assert(inserts[0].WholeSubtree, qt.IsTrue)
}

func TestChawatheEmitsDeleteForRemovedLeaf(t *testing.T) {
	c := qt.New(t)

	src := node.New("file", nil, nil)
	srcChild := node.Leaf("id", "a", nil)
	src.AppendChild(srcChild)
	srcGone := node.Leaf("id", "gone", nil)
	src.AppendChild(srcGone)

	dst := node.New("file", nil, nil)
	dstChild := node.Leaf("id", "a", nil)
	dst.AppendChild(dstChild)

	store := mapping.New()
	store.Put(src, dst)
	store.Put(srcChild, dstChild)

	actions, err := GenerateChawathe(store, src, dst)
	c.Assert(err, qt.IsNil)

	deletes := countActions[*Delete](actions)
	c.Assert(deletes, qt.HasLen, 1)
	c.Assert(deletes[0].Node, qt.Equals, srcGone)
}

func TestChawatheEmitsMoveForReorderedChildren(t *testing.T) {
	c := qt.New(t)

	srcA := node.Leaf("id", "a", nil)
	srcB := node.Leaf("id", "b", nil)
	src := node.New("file", nil, nil)
	src.AppendChild(srcA)
	src.AppendChild(srcB)

	// dst swaps the order: b then a.
	dstB := node.Leaf("id", "b", nil)
	dstA := node.Leaf("id", "a", nil)
	dst := node.New("file", nil, nil)
	dst.AppendChild(dstB)
	dst.AppendChild(dstA)

	store := mapping.New()
	store.Put(src, dst)
	store.Put(srcA, dstA)
	store.Put(srcB, dstB)

	actions, err := GenerateChawathe(store, src, dst)
	c.Assert(err, qt.IsNil)

	moves := countActions[*Move](actions)
	c.Assert(moves, qt.HasLen, 1)
}

func TestChawatheEmitsTwoMovesForFourElementReorder(t *testing.T) {
	c := qt.New(t)

	srcA := node.Leaf("id", "a", nil)
	srcB := node.Leaf("id", "b", nil)
	srcC := node.Leaf("id", "c", nil)
	srcD := node.Leaf("id", "d", nil)
	src := node.New("file", nil, nil)
	src.AppendChild(srcA)
	src.AppendChild(srcB)
	src.AppendChild(srcC)
	src.AppendChild(srcD)

	// dst reorders to c, a, d, b.
	dstC := node.Leaf("id", "c", nil)
	dstA := node.Leaf("id", "a", nil)
	dstD := node.Leaf("id", "d", nil)
	dstB := node.Leaf("id", "b", nil)
	dst := node.New("file", nil, nil)
	dst.AppendChild(dstC)
	dst.AppendChild(dstA)
	dst.AppendChild(dstD)
	dst.AppendChild(dstB)

	store := mapping.New()
	store.Put(src, dst)
	store.Put(srcA, dstA)
	store.Put(srcB, dstB)
	store.Put(srcC, dstC)
	store.Put(srcD, dstD)

	actions, err := GenerateChawathe(store, src, dst)
	c.Assert(err, qt.IsNil)

	c.Assert(countActions[*Move](actions), qt.HasLen, 2)
	c.Assert(countActions[*Insert](actions), qt.HasLen, 0)
	c.Assert(countActions[*Delete](actions), qt.HasLen, 0)
}

func TestChawatheEmitsUpdateAndMoveForRenameAndMove(t *testing.T) {
	c := qt.New(t)

	srcX := node.Leaf("id", "x", nil)
	srcA := node.New("A", nil, nil)
	srcA.AppendChild(srcX)
	srcB := node.New("B", nil, nil)
	src := node.New("root", nil, nil)
	src.AppendChild(srcA)
	src.AppendChild(srcB)

	// dst renames x to y and swaps A and B's order.
	dstY := node.Leaf("id", "y", nil)
	dstA := node.New("A", nil, nil)
	dstA.AppendChild(dstY)
	dstB := node.New("B", nil, nil)
	dst := node.New("root", nil, nil)
	dst.AppendChild(dstB)
	dst.AppendChild(dstA)

	store := mapping.New()
	store.Put(src, dst)
	store.Put(srcA, dstA)
	store.Put(srcB, dstB)
	store.Put(srcX, dstY)

	actions, err := GenerateChawathe(store, src, dst)
	c.Assert(err, qt.IsNil)

	updates := countActions[*Update](actions)
	c.Assert(updates, qt.HasLen, 1)
	c.Assert(updates[0].Node, qt.Equals, srcX)
	c.Assert(*updates[0].NewLabel, qt.Equals, "y")

	moves := countActions[*Move](actions)
	c.Assert(moves, qt.HasLen, 1)
	c.Assert(moves[0].Node, qt.Equals, srcA)
}

func TestChawatheDoesNotMutateSrc(t *testing.T) {
	c := qt.New(t)

	src := node.New("file", nil, nil)
	srcChild := node.Leaf("id", "a", nil)
	src.AppendChild(srcChild)

	dst := node.New("file", nil, nil)
	dstChild := node.Leaf("id", "b", nil)
	dst.AppendChild(dstChild)

	store := mapping.New()
	store.Put(src, dst)
	store.Put(srcChild, dstChild)

	_, err := GenerateChawathe(store, src, dst)
	c.Assert(err, qt.IsNil)

	c.Assert(*srcChild.Label, qt.Equals, "a")
	c.Assert(src.Children(), qt.HasLen, 1)
}
