// Package editscript implements the edit-script generation phase of
// sequoia-diff: Chawathe's 1996 algorithm for turning a node mapping into a
// compact sequence of Insert/Update/Move/Delete actions, followed by a
// simplification pass that collapses actions over fully-inserted or
// fully-deleted subtrees.
//
// S. S. Chawathe, A. Rajaraman, H. Garcia-Molina, and J. Widom. Change
// detection in hierarchically structured information. SIGMOD 1996.
// https://doi.org/10.1145/235968.233366
package editscript

import (
	"fmt"

	"github.com/JonahSussman/sequoia-diff/node"
)

// Action is one step of an edit script: Insert, Update, Move, or Delete.
type Action interface {
	// OrigRef reads through to the acted-upon node's OrigRef, so downstream
	// tools can recover the caller's original parser handle.
	OrigRef() any
	fmt.Stringer
	isAction()
}

// Insert creates Node as a new child of Parent at index Pos. WholeSubtree
// is true when Node's entire subtree is new (set directly for inserted
// leaves, and by the simplification pass for inserted internal nodes all of
// whose descendants are themselves inserted).
type Insert struct {
	Node         *node.Node
	Parent       *node.Node
	Pos          int
	WholeSubtree bool
}

func (a *Insert) OrigRef() any { return a.Node.OrigRef }
func (*Insert) isAction()      {}
func (a *Insert) String() string {
	return fmt.Sprintf("Insert(%s, parent=%s, pos=%d, whole_subtree=%t)", a.Node, a.Parent, a.Pos, a.WholeSubtree)
}

// Update changes Node's label from OldLabel to NewLabel.
type Update struct {
	Node               *node.Node
	OldLabel, NewLabel *string
}

func (a *Update) OrigRef() any { return a.Node.OrigRef }
func (*Update) isAction()      {}
func (a *Update) String() string {
	return fmt.Sprintf("Update(%s, %q -> %q)", a.Node, derefOr(a.OldLabel, ""), derefOr(a.NewLabel, ""))
}

// Move relocates Node to be a child of Parent at index Pos.
type Move struct {
	Node   *node.Node
	Parent *node.Node
	Pos    int
}

func (a *Move) OrigRef() any { return a.Node.OrigRef }
func (*Move) isAction()      {}
func (a *Move) String() string {
	return fmt.Sprintf("Move(%s, parent=%s, pos=%d)", a.Node, a.Parent, a.Pos)
}

// Delete removes Node from the tree.
type Delete struct {
	Node *node.Node
}

func (a *Delete) OrigRef() any   { return a.Node.OrigRef }
func (*Delete) isAction()        {}
func (a *Delete) String() string { return fmt.Sprintf("Delete(%s)", a.Node) }

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
