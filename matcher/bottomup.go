package matcher

import (
	"github.com/JonahSussman/sequoia-diff/mapping"
	"github.com/JonahSussman/sequoia-diff/node"
)

// SimThreshold is the minimum Dice similarity a source/destination pair must
// reach for GreedyBottomUp to map them.
const SimThreshold = 0.5

// SizeThreshold bounds the "last-chance" RTED fallback to subtree pairs
// where both sides have fewer than SizeThreshold nodes. Deliberately
// checked on both sides (unlike GumTree's single-sided threshold) — this
// differs subtly from upstream GumTree and is preserved verbatim for
// compatibility with the reference implementation this package is ported
// from.
const SizeThreshold = 1000

// numberOfMappedDescendants counts proper descendants of src whose mapped
// partner (if any) is a proper descendant of dst.
func numberOfMappedDescendants(store *mapping.Store, src, dst *node.Node) int {
	dstDescendants := make(map[*node.Node]bool)
	for _, n := range dst.PreOrderSkipSelf() {
		dstDescendants[n] = true
	}

	mapped := 0
	for _, n := range src.PreOrderSkipSelf() {
		partner, ok := store.ContainsSrc(n)
		if ok && dstDescendants[partner] {
			mapped++
		}
	}
	return mapped
}

// diceSimilarity is 2*|mapped descendant pairs| / (size(src) + size(dst)).
func diceSimilarity(store *mapping.Store, src, dst *node.Node) float64 {
	common := numberOfMappedDescendants(store, src, dst)
	return 2.0 * float64(common) / float64(src.Size()+dst.Size())
}

// getDstCandidates collects destination candidates for src by walking up
// from each already-mapped descendant's destination partner's parent chain,
// stopping at the first ancestor already visited for that chain. A
// candidate must share src's type, must not be the destination root, and
// must not already be mapped.
func getDstCandidates(store *mapping.Store, src *node.Node) []*node.Node {
	var seeds []*node.Node
	for _, n := range src.PreOrderSkipSelf() {
		if partner, ok := store.ContainsSrc(n); ok {
			seeds = append(seeds, partner)
		}
	}

	var candidates []*node.Node
	visited := make(map[*node.Node]bool)
	for _, seed := range seeds {
		cur := seed
		for cur.Parent() != nil {
			parent := cur.Parent()
			if visited[parent] {
				break
			}
			visited[parent] = true
			if _, mapped := store.ContainsDst(parent); parent.Type == src.Type && parent.Parent() != nil && !mapped {
				candidates = append(candidates, parent)
			}
			cur = parent
		}
	}
	return candidates
}

// MatchLastChance is the complexity-bounded fallback used by
// GreedyBottomUp: if both a and b have fewer than SizeThreshold nodes, it
// runs MatchRTED into a scratch store and transfers every resulting pair
// that's still an allowed mapping in store.
func MatchLastChance(store *mapping.Store, a, b *node.Node) error {
	if a.Size() >= SizeThreshold || b.Size() >= SizeThreshold {
		return nil
	}

	scratch := mapping.New()
	if err := MatchRTED(scratch, a, b); err != nil {
		return err
	}

	for _, p := range scratch.Pairs() {
		if store.IsMappingAllowed(p.Src, p.Dst) {
			store.Put(p.Src, p.Dst)
		}
	}
	return nil
}

// GreedyBottomUp propagates mappings upward: for every unmapped, non-leaf
// source node, it picks the best-scoring destination candidate (by Dice
// similarity, ties broken by discovery order) that clears SimThreshold,
// maps the pair, and runs MatchLastChance on it. The source root, reached
// last in post-order, is always mapped to the destination root, followed by
// a final MatchLastChance on the two roots.
func GreedyBottomUp(store *mapping.Store, src, dst *node.Node) error {
	for _, n := range src.PostOrder() {
		if n.Parent() == nil {
			store.Put(n, dst)
			return MatchLastChance(store, n, dst)
		}

		if len(n.Children()) == 0 {
			continue
		}
		if _, ok := store.ContainsSrc(n); ok {
			continue
		}

		var best *node.Node
		theMax := -1.0
		for _, candidate := range getDstCandidates(store, n) {
			sim := diceSimilarity(store, n, candidate)
			if sim > theMax && sim >= SimThreshold {
				theMax = sim
				best = candidate
			}
		}

		if best != nil {
			if err := MatchLastChance(store, n, best); err != nil {
				return err
			}
			store.Put(n, best)
		}
	}
	return nil
}
