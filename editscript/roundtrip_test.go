package editscript_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	qt "github.com/frankban/quicktest"

	"github.com/JonahSussman/sequoia-diff/editscript"
	"github.com/JonahSussman/sequoia-diff/mapping"
	"github.com/JonahSussman/sequoia-diff/node"
)

// nodeComparer treats two nodes as equal when their type, label, and
// children are structurally equal, recursing into Children() itself so
// go-cmp never needs to reach into Node's unexported statistics fields.
var nodeComparer = cmp.Comparer(func(a, b *node.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	if (a.Label == nil) != (b.Label == nil) {
		return false
	}
	if a.Label != nil && *a.Label != *b.Label {
		return false
	}
	return cmp.Equal(a.Children(), b.Children(), nodeComparer)
})

// apply replays actions against a fresh deep copy of src, following §8's
// "round-trip under application" property: each action's Node/Parent is an
// identity from either the original src tree or the dst tree (Insert
// records the dst node being grafted in; a nested Insert's Parent may
// itself be a previously-grafted dst node), so work maps both spaces into
// the one working tree being built.
func apply(src, dst *node.Node, actions []editscript.Action) *node.Node {
	work := make(map[*node.Node]*node.Node)

	workRoot := src.DeepCopy()
	srcPre, copyPre := src.PreOrder(), workRoot.PreOrder()
	for i := range srcPre {
		work[srcPre[i]] = copyPre[i]
	}

	for _, a := range actions {
		switch act := a.(type) {
		case *editscript.Insert:
			parent := work[act.Parent]
			var fresh *node.Node
			if act.WholeSubtree {
				fresh = act.Node.DeepCopy()
				mapSubtrees(work, act.Node, fresh)
			} else {
				fresh = node.New(act.Node.Type, act.Node.Label, nil)
				work[act.Node] = fresh
			}
			parent.InsertChild(act.Pos, fresh)

		case *editscript.Update:
			work[act.Node].SetLabel(act.NewLabel)

		case *editscript.Move:
			parent := work[act.Parent]
			parent.InsertChild(act.Pos, work[act.Node])

		case *editscript.Delete:
			target := work[act.Node]
			target.Parent().RemoveChild(target)
		}
	}

	return workRoot
}

// mapSubtrees records, for every node in a whole-subtree Insert's dst-side
// source, the corresponding freshly-copied node, so later actions that
// reference one of its descendants (by dst identity) still resolve.
func mapSubtrees(work map[*node.Node]*node.Node, dstNode, freshCopy *node.Node) {
	dstPre, freshPre := dstNode.PreOrder(), freshCopy.PreOrder()
	for i := range dstPre {
		work[dstPre[i]] = freshPre[i]
	}
}

func TestRoundTripUnderApplicationReorder(t *testing.T) {
	c := qt.New(t)

	src := node.New("T", nil, nil)
	a := node.Leaf("id", "a", nil)
	b := node.Leaf("id", "b", nil)
	src.AppendChild(a)
	src.AppendChild(b)

	dst := node.New("T", nil, nil)
	dst.AppendChild(node.Leaf("id", "b", nil))
	dst.AppendChild(node.Leaf("id", "a", nil))

	store := mapping.New()
	store.Put(src, dst)
	store.Put(a, dst.Children()[1])
	store.Put(b, dst.Children()[0])

	actions, err := editscript.GenerateChawathe(store, src, dst)
	c.Assert(err, qt.IsNil)

	result := apply(src, dst, actions)
	c.Assert(cmp.Equal(result, dst, nodeComparer), qt.IsTrue)
}

func TestRoundTripUnderApplicationInsertBetween(t *testing.T) {
	c := qt.New(t)

	src := node.New("root", nil, nil)
	a := node.Leaf("id", "a", nil)
	b := node.Leaf("id", "b", nil)
	src.AppendChild(a)
	src.AppendChild(b)

	dst := node.New("root", nil, nil)
	dst.AppendChild(node.Leaf("id", "a", nil))
	dst.AppendChild(node.Leaf("id", "c", nil))
	dst.AppendChild(node.Leaf("id", "b", nil))

	store := mapping.New()
	store.Put(src, dst)
	store.Put(a, dst.Children()[0])
	store.Put(b, dst.Children()[2])

	actions, err := editscript.GenerateChawathe(store, src, dst)
	c.Assert(err, qt.IsNil)
	actions = editscript.Simplify(actions)

	result := apply(src, dst, actions)
	c.Assert(cmp.Equal(result, dst, nodeComparer), qt.IsTrue)
}

func TestRoundTripUnderApplicationWholeSubtreeDelete(t *testing.T) {
	c := qt.New(t)

	src := node.New("P", nil, nil)
	q := node.New("Q", nil, nil)
	q.AppendChild(node.Leaf("id", "r", nil))
	q.AppendChild(node.Leaf("id", "s", nil))
	src.AppendChild(q)

	dst := node.New("P", nil, nil)

	store := mapping.New()
	store.Put(src, dst)

	actions, err := editscript.GenerateChawathe(store, src, dst)
	c.Assert(err, qt.IsNil)
	actions = editscript.Simplify(actions)

	result := apply(src, dst, actions)
	c.Assert(cmp.Equal(result, dst, nodeComparer), qt.IsTrue)
}

func TestRoundTripUnderApplicationRenameAndMove(t *testing.T) {
	c := qt.New(t)

	src := node.New("root", nil, nil)
	nodeA := node.New("A", nil, nil)
	nodeA.AppendChild(node.Leaf("id", "x", nil))
	nodeB := node.New("B", nil, nil)
	src.AppendChild(nodeA)
	src.AppendChild(nodeB)

	dst := node.New("root", nil, nil)
	dstB := node.New("B", nil, nil)
	dstA := node.New("A", nil, nil)
	dstA.AppendChild(node.Leaf("id", "y", nil))
	dst.AppendChild(dstB)
	dst.AppendChild(dstA)

	store := mapping.New()
	store.Put(src, dst)
	store.Put(nodeA, dstA)
	store.Put(nodeB, dstB)
	store.Put(nodeA.Children()[0], dstA.Children()[0])

	actions, err := editscript.GenerateChawathe(store, src, dst)
	c.Assert(err, qt.IsNil)

	result := apply(src, dst, actions)
	c.Assert(cmp.Equal(result, dst, nodeComparer), qt.IsTrue)
}
