// Package treeviz adapts a *node.Node subtree to mermaid.GraphInterface so
// that a loaded tree (or an edit-script Action's before/after node) can be
// rendered as a Mermaid flowchart for inspection.
package treeviz

import (
	"fmt"

	"github.com/JonahSussman/sequoia-diff/mermaid"
	"github.com/JonahSussman/sequoia-diff/node"
)

// edge is a directed parent-to-child edge in a node tree.
type edge struct {
	from, to *node.Node
}

// Tree wraps a *node.Node subtree so it satisfies mermaid.GraphInterface.
// Node identity is the node's own pointer; Mermaid IDs are assigned by
// pre-order position so the same tree always renders with the same IDs.
type Tree struct {
	root  *node.Node
	nodes []*node.Node
	ids   map[*node.Node]string
}

// New builds a Tree over root's subtree.
func New(root *node.Node) *Tree {
	nodes := root.PreOrder()
	ids := make(map[*node.Node]string, len(nodes))
	for i, n := range nodes {
		ids[n] = fmt.Sprintf("n%d", i)
	}
	return &Tree{root: root, nodes: nodes, ids: ids}
}

// AllNodes returns the subtree's nodes in pre-order.
func (t *Tree) AllNodes() []*node.Node { return t.nodes }

// NodeInfo renders n's type and label (if any) as its Mermaid label.
func (t *Tree) NodeInfo(n *node.Node) mermaid.NodeInfo {
	text := n.Type
	if n.Label != nil {
		text = fmt.Sprintf("%s: %s", n.Type, *n.Label)
	}
	return mermaid.NodeInfo{ID: t.ids[n], Text: text}
}

// EdgesFrom returns the single parent-to-child edge from n to each of its
// children. It reports ok=false only for nodes outside the wrapped subtree.
func (t *Tree) EdgesFrom(n *node.Node) ([]edge, bool) {
	if _, ok := t.ids[n]; !ok {
		return nil, false
	}
	children := n.Children()
	if len(children) == 0 {
		return nil, true
	}
	out := make([]edge, len(children))
	for i, c := range children {
		out[i] = edge{from: n, to: c}
	}
	return out, true
}

// Nodes returns e's endpoints.
func (t *Tree) Nodes(e edge) (from, to *node.Node) { return e.from, e.to }

// CmpNode orders nodes by their assigned pre-order Mermaid ID.
func (t *Tree) CmpNode(a, b *node.Node) int {
	ai, bi := t.ids[a], t.ids[b]
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	default:
		return 0
	}
}

// Marshal renders root's subtree as a Mermaid flowchart.
func Marshal(root *node.Node) ([]byte, error) {
	return mermaid.NewGraph[*node.Node, edge](New(root)).MarshalMermaid()
}
