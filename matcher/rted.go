package matcher

import (
	"math"

	"github.com/pkg/errors"

	"github.com/JonahSussman/sequoia-diff/mapping"
	"github.com/JonahSussman/sequoia-diff/node"
	"github.com/JonahSussman/sequoia-diff/simtext"
)

// ErrIncompatibleMapping is returned when RTED's backtracking reaches a step
// that would map two nodes of different types — an invariant violation per
// the spec's error-handling design (§7), since a forced step in the
// dynamic program must only ever align same-typed nodes.
var ErrIncompatibleMapping = errors.New("matcher: RTED backtracking would map nodes of different types")

// zsTree is the Zhang–Shasha post-order numbering of a subtree: every node
// gets an index in [1, nodeCount], leftmostLeafDesc[i] holds the (0-based)
// index of i's leftmost leaf descendant, and keyRoots lists the indices
// that drive the outer loops of the dynamic program.
type zsTree struct {
	nodeCount int
	leafCount int
	// leftmostLeafDesc is 0-indexed by (post-order index - 1).
	leftmostLeafDesc []int
	labels           []*node.Node
	keyRoots         []int
}

func newZSTree(root *node.Node) *zsTree {
	t := &zsTree{
		nodeCount:        root.Size(),
		leftmostLeafDesc: make([]int, root.Size()),
		labels:           make([]*node.Node, root.Size()),
	}

	idx := 1
	postOrderIndex := make(map[*node.Node]int)
	for _, n := range root.PostOrder() {
		postOrderIndex[n] = idx
		t.labels[idx-1] = n

		leaf := n
		for len(leaf.Children()) != 0 {
			leaf = leaf.Children()[0]
		}
		t.leftmostLeafDesc[idx-1] = postOrderIndex[leaf] - 1

		if len(n.Children()) == 0 {
			t.leafCount++
		}
		idx++
	}

	t.keyRoots = make([]int, t.leafCount+1)
	visited := make([]bool, t.nodeCount+1)
	k := len(t.keyRoots) - 1
	for i := t.nodeCount; i >= 1; i-- {
		if !visited[t.lld(i)] {
			t.keyRoots[k] = i
			visited[t.lld(i)] = true
			k--
		}
	}
	return t
}

// lld returns the 1-based post-order index of i's leftmost leaf descendant.
func (t *zsTree) lld(i int) int { return t.leftmostLeafDesc[i-1] + 1 }

// tree returns the node at 1-based post-order index i.
func (t *zsTree) tree(i int) *node.Node { return t.labels[i-1] }

// MatchRTED computes a minimum-cost edit mapping between src and dst under
// unit insert/delete costs and simtext.NormalizedTrigramDistance-weighted
// updates (infinite when types differ), using the classical Zhang–Shasha
// tree-edit-distance dynamic program, and records every (src, dst) pair the
// backtrack recovers whose types agree.
func MatchRTED(store *mapping.Store, src, dst *node.Node) error {
	zsSrc, zsDst := newZSTree(src), newZSTree(dst)

	treeDist := make2D(zsSrc.nodeCount+1, zsDst.nodeCount+1)
	forestDist := make2D(zsSrc.nodeCount+1, zsDst.nodeCount+1)

	updateCost := func(a, b *node.Node) float64 {
		if a.Type != b.Type {
			return math.Inf(1)
		}
		return simtext.NormalizedTrigramDistance(a.Label, b.Label)
	}

	computeForestDist := func(i, j int) {
		forestDist[zsSrc.lld(i)-1][zsDst.lld(j)-1] = 0

		for di := zsSrc.lld(i); di <= i; di++ {
			const costDel = 1.0
			forestDist[di][zsDst.lld(j)-1] = forestDist[di-1][zsDst.lld(j)-1] + costDel

			for dj := zsDst.lld(j); dj <= j; dj++ {
				const costIns = 1.0
				forestDist[zsSrc.lld(i)-1][dj] = forestDist[zsSrc.lld(i)-1][dj-1] + costIns

				if zsSrc.lld(di) == zsSrc.lld(i) && zsDst.lld(dj) == zsDst.lld(j) {
					costUpd := updateCost(zsSrc.tree(di), zsDst.tree(dj))
					forestDist[di][dj] = minOf(
						minOf(forestDist[di-1][dj]+costDel, forestDist[di][dj-1]+costIns),
						forestDist[di-1][dj-1]+costUpd,
					)
					treeDist[di][dj] = forestDist[di][dj]
				} else {
					forestDist[di][dj] = minOf(
						minOf(forestDist[di-1][dj]+costDel, forestDist[di][dj-1]+costIns),
						forestDist[zsSrc.lld(di)-1][zsDst.lld(dj)-1]+treeDist[di][dj],
					)
				}
			}
		}
	}

	for i := 1; i < len(zsSrc.keyRoots); i++ {
		for j := 1; j < len(zsDst.keyRoots); j++ {
			computeForestDist(zsSrc.keyRoots[i], zsDst.keyRoots[j])
		}
	}

	type pair struct{ row, col int }
	rootPair := true
	pairs := []pair{{zsSrc.nodeCount, zsDst.nodeCount}}

	for len(pairs) > 0 {
		lastRow, lastCol := pairs[0].row, pairs[0].col
		pairs = pairs[1:]

		if !rootPair {
			computeForestDist(lastRow, lastCol)
		}
		rootPair = false

		firstRow, firstCol := zsSrc.lld(lastRow)-1, zsDst.lld(lastCol)-1
		row, col := lastRow, lastCol

		for row > firstRow && col > firstCol {
			switch {
			case row > firstRow && forestDist[row-1][col]+1.0 == forestDist[row][col]:
				row--
			case col > firstCol && forestDist[row][col-1]+1.0 == forestDist[row][col]:
				col--
			default:
				if zsSrc.lld(row)-1 == zsSrc.lld(lastRow)-1 && zsDst.lld(col)-1 == zsDst.lld(lastCol)-1 {
					tSrc, tDst := zsSrc.tree(row), zsDst.tree(col)
					if tSrc.Type != tDst.Type {
						return ErrIncompatibleMapping
					}
					store.Put(tSrc, tDst)
					row--
					col--
				} else {
					pairs = append([]pair{{row, col}}, pairs...)
					row = zsSrc.lld(row) - 1
					col = zsDst.lld(col) - 1
				}
			}
		}
	}

	return nil
}

func make2D(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	return out
}

func minOf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
