package matcher

import (
	"github.com/JonahSussman/sequoia-diff/mapping"
	"github.com/JonahSussman/sequoia-diff/node"
)

// DefaultPipeline is the matcher order used when the caller doesn't supply
// one: greedy top-down isomorphism matching first, then Dice-driven
// bottom-up propagation.
func DefaultPipeline() []MatchFunc {
	return []MatchFunc{GreedyTopDown, GreedyBottomUp}
}

// GenerateMappings runs funcs (DefaultPipeline if nil) against src and dst
// in order, sharing one mapping.Store, and returns the resulting store.
// Every matcher in funcs is responsible for only adding allowed
// (type-compatible, one-to-one) mappings; GenerateMappings does not
// re-validate the result itself.
func GenerateMappings(src, dst *node.Node, funcs []MatchFunc) (*mapping.Store, error) {
	if funcs == nil {
		funcs = DefaultPipeline()
	}

	store := mapping.New()
	for _, f := range funcs {
		if err := f(store, src, dst); err != nil {
			return nil, err
		}
	}
	return store, nil
}
