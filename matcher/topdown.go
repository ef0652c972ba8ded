// Package matcher implements the mapping phase of sequoia-diff: the
// greedy height-first top-down isomorphism matcher (GreedyTopDown), the
// Dice-driven bottom-up container matcher (GreedyBottomUp), the RTED
// tree-edit-distance fallback those two call into, and GenerateMappings,
// which runs a configurable list of them over a shared mapping.Store.
package matcher

import (
	"github.com/JonahSussman/sequoia-diff/internal/xhash"
	"github.com/JonahSussman/sequoia-diff/mapping"
	"github.com/JonahSussman/sequoia-diff/node"
	"github.com/JonahSussman/sequoia-diff/pqueue"
)

// MatchFunc is one matching strategy: given a shared Store and the two tree
// roots, it adds whatever mappings it can establish. GenerateMappings runs
// an ordered list of these, sharing one Store.
type MatchFunc func(store *mapping.Store, src, dst *node.Node) error

func newHeightQueue() *pqueue.Queue[*node.Node] {
	return pqueue.New(
		(*node.Node).Height,
		(*node.Node).Children,
		(*node.Node).Less,
	)
}

type bucket struct {
	src, dst []*node.Node
}

// GreedyTopDown matches the largest isomorphic subtrees of src and dst,
// walking both trees down in lockstep by height and grouping each
// equal-height batch by subtree hash. Unique same-hash pairs are mapped
// immediately (recursively); ambiguous buckets (more than one candidate on
// either side) are resolved afterward, in the order they were discovered,
// by greedily pairing up still-unmapped candidates.
func GreedyTopDown(store *mapping.Store, src, dst *node.Node) error {
	pqSrc, pqDst := newHeightQueue(), newHeightQueue()
	pqSrc.Push(src)
	pqDst.Push(dst)

	var ambiguous []bucket

	for pqSrc.SynchronizeAndPushChildren(pqDst) {
		srcNodes := pqSrc.PopEqualPriority()
		dstNodes := pqDst.PopEqualPriority()

		buckets := make(map[xhash.Hash]*bucket)
		var order []xhash.Hash
		get := func(h xhash.Hash) *bucket {
			b, ok := buckets[h]
			if !ok {
				b = &bucket{}
				buckets[h] = b
				order = append(order, h)
			}
			return b
		}
		for _, n := range srcNodes {
			b := get(n.SubtreeHashValue())
			b.src = append(b.src, n)
		}
		for _, n := range dstNodes {
			b := get(n.SubtreeHashValue())
			b.dst = append(b.dst, n)
		}

		for _, h := range order {
			b := buckets[h]
			switch {
			case len(b.src) == 0 || len(b.dst) == 0:
				for _, n := range b.src {
					pqSrc.PushChildren(n)
				}
				for _, n := range b.dst {
					pqDst.PushChildren(n)
				}
			case len(b.src) == 1 && len(b.dst) == 1:
				store.PutRecursively(b.src[0], b.dst[0])
			default:
				ambiguous = append(ambiguous, *b)
			}
		}
	}

	for _, b := range ambiguous {
		for _, a := range b.src {
			for _, d := range b.dst {
				if _, ok := store.ContainsSrc(a); ok {
					continue
				}
				if _, ok := store.ContainsDst(d); ok {
					continue
				}
				store.PutRecursively(a, d)
			}
		}
	}

	return nil
}
