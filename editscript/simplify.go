package editscript

import "github.com/JonahSussman/sequoia-diff/node"

// Simplify collapses Insert/Delete actions over fully-inserted or
// fully-deleted subtrees (§4.10): when every descendant of an inserted node
// is itself being inserted, the descendants' individual Insert actions are
// dropped and the ancestor's Insert is marked WholeSubtree. The symmetric
// collapse applies to Delete. Update and Move actions pass through
// unchanged.
func Simplify(actions []Action) []Action {
	insertedNodes := make(map[*node.Node]*Insert)
	deletedNodes := make(map[*node.Node]bool)

	for _, a := range actions {
		switch act := a.(type) {
		case *Insert:
			insertedNodes[act.Node] = act
		case *Delete:
			deletedNodes[act.Node] = true
		}
	}

	dropInsert := make(map[*node.Node]bool)
	for n, ins := range insertedNodes {
		if wholeSubtreeInserted(n, insertedNodes) {
			ins.WholeSubtree = true
			for _, d := range n.PreOrderSkipSelf() {
				dropInsert[d] = true
			}
		}
	}

	dropDelete := make(map[*node.Node]bool)
	for n := range deletedNodes {
		if wholeSubtreeDeleted(n, deletedNodes) {
			for _, d := range n.PreOrderSkipSelf() {
				dropDelete[d] = true
			}
		}
	}

	var out []Action
	for _, a := range actions {
		switch act := a.(type) {
		case *Insert:
			if dropInsert[act.Node] {
				continue
			}
		case *Delete:
			if dropDelete[act.Node] {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// wholeSubtreeInserted reports whether n and every one of its descendants
// appear in insertedNodes.
func wholeSubtreeInserted(n *node.Node, insertedNodes map[*node.Node]*Insert) bool {
	for _, d := range n.PreOrder() {
		if _, ok := insertedNodes[d]; !ok {
			return false
		}
	}
	return true
}

// wholeSubtreeDeleted reports whether n and every one of its descendants
// appear in deletedNodes.
func wholeSubtreeDeleted(n *node.Node, deletedNodes map[*node.Node]bool) bool {
	for _, d := range n.PreOrder() {
		if !deletedNodes[d] {
			return false
		}
	}
	return true
}
