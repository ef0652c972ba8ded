package editscript

import (
	"github.com/gammazero/deque"
	"github.com/pkg/errors"

	"github.com/JonahSussman/sequoia-diff/mapping"
	"github.com/JonahSussman/sequoia-diff/node"
)

// ErrMissingParentPartner is an invariant violation (§7): BFS order over dst
// guarantees every node's parent has already been visited and mapped by
// the time the node itself is visited, so this should never happen.
var ErrMissingParentPartner = errors.New("editscript: destination node's parent has no mapped partner")

// nodeMap is a map[*node.Node]*node.Node that returns a fresh sentinel node
// for any key it doesn't hold, mirroring the reference implementation's use
// of a default-factory dict keyed by node identity.
type nodeMap struct {
	m map[*node.Node]*node.Node
}

func newNodeMap() *nodeMap { return &nodeMap{m: make(map[*node.Node]*node.Node)} }

func (nm *nodeMap) get(k *node.Node) *node.Node {
	if v, ok := nm.m[k]; ok {
		return v
	}
	return node.Sentinel()
}

func (nm *nodeMap) set(k, v *node.Node) { nm.m[k] = v }

// findPos implements §4.9's find_pos: the position dstNode should occupy
// among its (already-aligned) siblings, expressed in terms of the source
// copy's positions via cpyMappings.
func findPos(dstNode *node.Node, dstInOrder map[*node.Node]bool, cpyMappings *mapping.Store) int {
	parent := dstNode.Parent()
	if parent == nil {
		return 0
	}
	siblings := parent.Children()

	for _, sibling := range siblings {
		if dstInOrder[sibling] {
			if sibling == dstNode {
				return 0
			}
			break
		}
	}

	var rightmostInOrder *node.Node
	for i := 0; i < dstNode.PositionInParent(); i++ {
		if sibling := siblings[i]; dstInOrder[sibling] {
			rightmostInOrder = sibling
		}
	}
	if rightmostInOrder == nil {
		return 0
	}

	u, _ := cpyMappings.ContainsDst(rightmostInOrder)
	return u.PositionInParent() + 1
}

// alignChildren implements §4.9's "Align children" step: it computes the
// LCS of w's and x's mapped children (under the equivalence a == partner of
// b), marks the LCS pairs in order, and emits Move actions (mutating the
// working copy as it goes) for every other matched pair so that w's
// children end up in the same relative order as x's.
func alignChildren(
	partnerNode, currentNode *node.Node,
	srcInOrder, dstInOrder map[*node.Node]bool,
	cpyMappings *mapping.Store,
	cpyToSrc *nodeMap,
) []Action {
	var actions []Action

	for _, c := range partnerNode.Children() {
		delete(srcInOrder, c)
	}
	for _, c := range currentNode.Children() {
		delete(dstInOrder, c)
	}

	var matchedPartnerChildren []*node.Node
	for _, c := range partnerNode.Children() {
		if d, ok := cpyMappings.ContainsSrc(c); ok && isChildOf(d, currentNode) {
			matchedPartnerChildren = append(matchedPartnerChildren, c)
		}
	}

	var matchedCurrentChildren []*node.Node
	for _, c := range currentNode.Children() {
		if s, ok := cpyMappings.ContainsDst(c); ok && isChildOf(s, partnerNode) {
			matchedCurrentChildren = append(matchedCurrentChildren, c)
		}
	}

	lcsPairs := lcs(matchedPartnerChildren, matchedCurrentChildren, func(a, b *node.Node) bool {
		s, ok := cpyMappings.ContainsDst(b)
		return ok && s == a
	})
	inLCS := func(p, c *node.Node) bool {
		for _, m := range lcsPairs {
			if m.X == p && m.Y == c {
				return true
			}
		}
		return false
	}

	for _, m := range lcsPairs {
		srcInOrder[m.X] = true
		dstInOrder[m.Y] = true
	}

	// Ensure left-to-right insertions by iterating destination-outer,
	// source-inner.
	for _, c := range matchedCurrentChildren {
		for _, p := range matchedPartnerChildren {
			if !cpyMappings.Has(p, c) {
				continue
			}
			if inLCS(p, c) {
				continue
			}

			partnerNode.RemoveChild(p)
			position := findPos(c, dstInOrder, cpyMappings)
			actions = append(actions, &Move{cpyToSrc.get(p), cpyToSrc.get(partnerNode), position})
			partnerNode.InsertChild(position, p)

			srcInOrder[p] = true
			dstInOrder[c] = true
		}
	}

	return actions
}

func isChildOf(n, parent *node.Node) bool {
	for _, c := range parent.Children() {
		if c == n {
			return true
		}
	}
	return false
}

// GenerateChawathe runs the Chawathe edit-script generator (§4.9) over the
// given mapping and returns the resulting (unsimplified) action list. src
// itself is never mutated; the algorithm works on a deep copy internally.
// dst's parent pointer is temporarily repointed at a sentinel root and
// restored before returning.
func GenerateChawathe(store *mapping.Store, src, dst *node.Node) ([]Action, error) {
	cpySrc := src.DeepCopy()

	srcToCpy := newNodeMap()
	cpyToSrc := newNodeMap()
	srcPre, cpyPre := src.PreOrder(), cpySrc.PreOrder()
	for i := range srcPre {
		srcToCpy.set(srcPre[i], cpyPre[i])
		cpyToSrc.set(cpyPre[i], srcPre[i])
	}

	cpyMappings := mapping.New()
	for _, p := range store.Pairs() {
		cpyMappings.Put(srcToCpy.get(p.Src), p.Dst)
	}

	dstOrigParent := dst.Parent()
	newCpySrcParent := node.Sentinel()
	cpySrc.SetParent(newCpySrcParent)
	newDstParent := node.Sentinel()
	dst.SetParent(newDstParent)
	cpyMappings.Put(newCpySrcParent, newDstParent)

	var actions []Action
	dstInOrder := make(map[*node.Node]bool)
	srcInOrder := make(map[*node.Node]bool)

	// The BFS frontier over dst: a proper deque avoids the O(n) slice[1:]
	// pop-front pattern node.BFS's materialized-slice traversal would incur
	// on a tree this size.
	var frontier deque.Deque[*node.Node]
	frontier.PushBack(dst)

	for frontier.Len() > 0 {
		currentNode := frontier.PopFront()
		for _, c := range currentNode.Children() {
			frontier.PushBack(c)
		}

		parentPartner, ok := cpyMappings.ContainsDst(currentNode.Parent())
		if !ok {
			dst.SetParent(dstOrigParent)
			return nil, ErrMissingParentPartner
		}

		var partnerNode *node.Node
		switch {
		case !isMapped(cpyMappings, currentNode):
			partnerNode = node.Sentinel()
			position := findPos(currentNode, dstInOrder, cpyMappings)
			actions = append(actions, &Insert{currentNode, cpyToSrc.get(parentPartner), position, len(currentNode.Children()) == 0})

			cpyToSrc.set(partnerNode, currentNode)
			cpyMappings.Put(partnerNode, currentNode)
			parentPartner.InsertChild(position, partnerNode)

		case currentNode != dst:
			partnerNode, _ = cpyMappings.ContainsDst(currentNode)
			v := partnerNode.Parent()

			if !sameLabel(partnerNode, currentNode) {
				oldLabel := partnerNode.Label
				actions = append(actions, &Update{cpyToSrc.get(partnerNode), oldLabel, currentNode.Label})
				partnerNode.SetLabel(currentNode.Label)
			}

			if parentPartner != v {
				position := findPos(currentNode, dstInOrder, cpyMappings)
				actions = append(actions, &Move{cpyToSrc.get(partnerNode), cpyToSrc.get(parentPartner), position})

				v.RemoveChild(partnerNode)
				parentPartner.InsertChild(position, partnerNode)
			}

		default:
			partnerNode, _ = cpyMappings.ContainsDst(currentNode)
		}

		srcInOrder[partnerNode] = true
		dstInOrder[currentNode] = true

		actions = append(actions, alignChildren(partnerNode, currentNode, srcInOrder, dstInOrder, cpyMappings, cpyToSrc)...)
	}

	for _, n := range cpySrc.PostOrder() {
		if n.Type == node.SentinelType {
			continue
		}
		if _, ok := cpyMappings.ContainsSrc(n); !ok {
			actions = append(actions, &Delete{cpyToSrc.get(n)})
		}
	}

	dst.SetParent(dstOrigParent)

	return actions, nil
}

func isMapped(cpyMappings *mapping.Store, currentNode *node.Node) bool {
	_, ok := cpyMappings.ContainsDst(currentNode)
	return ok
}

func sameLabel(a, b *node.Node) bool {
	if a.Label == nil || b.Label == nil {
		return a.Label == nil && b.Label == nil
	}
	return *a.Label == *b.Label
}
