// Package node implements the ordered labeled tree that sequoia-diff's
// matchers and edit-script generator operate on, along with the cached
// subtree statistics (size, height, node and subtree digests) and the
// position-in-parent lookup those algorithms rely on.
//
// A *Node's identity is its pointer: two distinct Node values are never
// considered the same node even if they carry identical type/label/children,
// and the mapping and matcher packages key their maps on that pointer
// identity rather than on any notion of structural equality.
package node

import (
	"fmt"

	"github.com/JonahSussman/sequoia-diff/internal/xhash"
)

// SentinelType is the type assigned to the short-lived "fake" nodes the
// Chawathe generator creates to anchor roots and to stand in for unmapped
// parents. A Node with this type must never appear in an emitted Action.
const SentinelType = "fake-type"

// Node is one position in an ordered labeled tree.
type Node struct {
	Type string
	// Label is the node's optional value (an identifier, a literal, ...).
	// nil means "no label", distinct from a present-but-empty string.
	Label *string
	// OrigRef is an opaque back-pointer to the caller's original node. The
	// core never interprets it.
	OrigRef any

	children []*Node
	parent   *Node

	dirty            bool
	size             int
	height           int
	hashValue        xhash.Hash
	subtreeHashValue xhash.Hash
	subtreeTypeHash  xhash.Hash
}

// New returns a leaf Node with no children and no parent.
func New(typ string, label *string, origRef any) *Node {
	return &Node{Type: typ, Label: label, OrigRef: origRef, dirty: true}
}

// Leaf is a convenience constructor for a labeled leaf.
func Leaf(typ, label string, origRef any) *Node {
	return New(typ, &label, origRef)
}

// Sentinel returns a fresh fake node of SentinelType, used internally by the
// Chawathe generator to anchor roots and to stand in for unmapped parents.
func Sentinel() *Node {
	label := "fake-label"
	return New(SentinelType, &label, nil)
}

// Children returns the node's children in order. Callers must not mutate the
// returned slice.
func (n *Node) Children() []*Node { return n.children }

// SetLabel updates n's label and invalidates its (and its ancestors')
// cached statistics. Used by the Chawathe generator's Update step, where a
// working-copy node's label is changed in place.
func (n *Node) SetLabel(label *string) {
	n.Label = label
	n.markDirty()
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// AppendChild appends c as n's last child, re-parenting c if it already had
// a different parent.
func (n *Node) AppendChild(c *Node) {
	c.detach()
	n.children = append(n.children, c)
	c.parent = n
	c.markDirty()
}

// InsertChild inserts c at position i among n's children, re-parenting c if
// it already had a different parent.
func (n *Node) InsertChild(i int, c *Node) {
	c.detach()
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	c.parent = n
	c.markDirty()
}

// RemoveChild removes c from n's children. It is a no-op if c is not
// currently a child of n.
func (n *Node) RemoveChild(c *Node) {
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			n.markDirty()
			c.markDirty()
			return
		}
	}
}

// SetParent re-parents n under parent, detaching it from any current parent
// first. Passing nil detaches n entirely.
func (n *Node) SetParent(parent *Node) {
	n.detach()
	if parent != nil {
		parent.AppendChild(n)
	}
}

// detach removes n from its current parent's children, if any, without
// touching n.parent itself (the caller is expected to immediately reattach
// or explicitly clear it).
func (n *Node) detach() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// markDirty marks n (and, per invariant 4, its entire ancestor chain) as
// needing statistics recomputation.
func (n *Node) markDirty() {
	for cur := n; cur != nil; cur = cur.parent {
		cur.dirty = true
	}
}

// DeepCopy returns a new subtree with identical shape, types, labels, and
// OrigRefs, rooted at a fresh, parentless Node with a fresh identity.
func (n *Node) DeepCopy() *Node {
	cp := New(n.Type, n.Label, n.OrigRef)
	for _, c := range n.children {
		cp.AppendChild(c.DeepCopy())
	}
	return cp
}

// Size returns 1 + the sizes of all descendants.
func (n *Node) Size() int {
	n.recomputeIfNeeded()
	return n.size
}

// Height returns 0 for a leaf, else 1 + the max height of its children.
func (n *Node) Height() int {
	n.recomputeIfNeeded()
	return n.height
}

// HashValue is a deterministic digest of (is_leaf, type, label) alone; it
// does not cover children. Isomorphism buckets are keyed on
// SubtreeHashValue, not on this value.
func (n *Node) HashValue() xhash.Hash {
	n.recomputeIfNeeded()
	return n.hashValue
}

// SubtreeHashValue folds HashValue with the ordered SubtreeHashValue of every
// child. Two subtrees with equal SubtreeHashValue are treated as isomorphic.
func (n *Node) SubtreeHashValue() xhash.Hash {
	n.recomputeIfNeeded()
	return n.subtreeHashValue
}

// SubtreeTypeHashValue is SubtreeHashValue but computed without Label,
// so it groups nodes that differ only in label together.
func (n *Node) SubtreeTypeHashValue() xhash.Hash {
	n.recomputeIfNeeded()
	return n.subtreeTypeHash
}

// PositionInParent returns n's index in its parent's Children. It panics if
// n has no parent, mirroring the reference implementation's assumption that
// callers only ask mapped, attached nodes for their position.
func (n *Node) PositionInParent() int {
	if n.parent == nil {
		panic("node: PositionInParent called on a node with no parent")
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	panic("node: not found among its own parent's children")
}

func (n *Node) recomputeIfNeeded() {
	if !n.dirty {
		return
	}
	b := xhash.NewBuilder()
	b.WriteBool(len(n.children) > 0).WriteString(n.Type).WriteString(n.labelOrEmpty())
	n.hashValue = b.Sum()

	bt := xhash.NewBuilder()
	bt.WriteBool(len(n.children) > 0).WriteString(n.Type)

	size, height := 1, 0
	for _, c := range n.children {
		c.recomputeIfNeeded()
		size += c.size
		if c.height+1 > height {
			height = c.height + 1
		}
		b.WriteHash(c.subtreeHashValue)
		bt.WriteHash(c.subtreeTypeHash)
	}
	n.size = size
	n.height = height
	n.subtreeHashValue = b.Sum()
	n.subtreeTypeHash = bt.Sum()
	n.dirty = false
}

func (n *Node) labelOrEmpty() string {
	if n.Label == nil {
		return ""
	}
	return *n.Label
}

// Less provides a total, purely lexicographic ordering on (Type, Label),
// used solely as a heap tiebreaker (pqueue) and never as a stand-in for
// semantic equality.
func (n *Node) Less(other *Node) bool {
	if n.Type != other.Type {
		return n.Type < other.Type
	}
	return n.labelOrEmpty() < other.labelOrEmpty()
}

// PreOrder visits n and its descendants root-first, left-to-right.
func (n *Node) PreOrder() []*Node {
	return n.preOrder(false, false)
}

// PreOrderSkipSelf is PreOrder without n itself.
func (n *Node) PreOrderSkipSelf() []*Node {
	return n.preOrder(true, false)
}

// PreOrderRTL visits n and its descendants root-first, right-to-left.
func (n *Node) PreOrderRTL() []*Node {
	return n.preOrder(false, true)
}

func (n *Node) preOrder(skipSelf, rtl bool) []*Node {
	var out []*Node
	if !skipSelf {
		out = append(out, n)
	}
	if !rtl {
		for _, c := range n.children {
			out = append(out, c.preOrder(false, false)...)
		}
	} else {
		for i := len(n.children) - 1; i >= 0; i-- {
			out = append(out, n.children[i].preOrder(false, true)...)
		}
	}
	return out
}

// PostOrder visits n's descendants then n, left-to-right.
func (n *Node) PostOrder() []*Node {
	var out []*Node
	for _, c := range n.children {
		out = append(out, c.PostOrder()...)
	}
	return append(out, n)
}

// BFS visits n and its descendants in breadth-first order.
func (n *Node) BFS() []*Node {
	out := make([]*Node, 0, n.Size())
	queue := []*Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		queue = append(queue, cur.children...)
	}
	return out
}

// String renders a single-line summary of n, used by pretty-printing and
// test failure messages.
func (n *Node) String() string {
	label := ""
	if n.Label != nil {
		label = fmt.Sprintf(" label=%q", *n.Label)
	}
	return fmt.Sprintf("%s%s", n.Type, label)
}

// PrettyPrint renders n's subtree as an indented multi-line tree, one node
// per line, annotated with a short prefix of its subtree hash.
func (n *Node) PrettyPrint() string {
	var buf []byte
	n.prettyPrint(0, &buf)
	return string(buf)
}

func (n *Node) prettyPrint(level int, buf *[]byte) {
	for range level {
		*buf = append(*buf, ' ', ' ')
	}
	h := n.SubtreeHashValue()
	line := fmt.Sprintf("%s subtree_hash=%x\n", n.String(), h[:8])
	*buf = append(*buf, line...)
	for _, c := range n.children {
		c.prettyPrint(level+1, buf)
	}
}
