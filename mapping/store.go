// Package mapping implements the bidirectional one-to-one correspondence
// between source and destination nodes that the matcher pipeline builds and
// the Chawathe edit-script generator consumes.
package mapping

import "github.com/JonahSussman/sequoia-diff/node"

// Store holds a one-to-one, type-compatible correspondence between nodes of
// two trees. Keys are node pointer identity, never structural equality.
type Store struct {
	srcToDst map[*node.Node]*node.Node
	dstToSrc map[*node.Node]*node.Node
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		srcToDst: make(map[*node.Node]*node.Node),
		dstToSrc: make(map[*node.Node]*node.Node),
	}
}

// Len returns the number of pairs in the store.
func (s *Store) Len() int { return len(s.srcToDst) }

// Put records src <-> dst. It does not check IsMappingAllowed; callers that
// need the invariant enforced should check it themselves.
func (s *Store) Put(src, dst *node.Node) {
	s.srcToDst[src] = dst
	s.dstToSrc[dst] = src
}

// PutRecursively maps src to dst, then maps src.Children()[i] to
// dst.Children()[i] for every i, recursively. It assumes src and dst are
// isomorphic; behavior is undefined if they are not (the child slices are
// zipped positionally without a length check beyond the shorter one).
func (s *Store) PutRecursively(src, dst *node.Node) {
	s.Put(src, dst)
	srcChildren, dstChildren := src.Children(), dst.Children()
	n := len(srcChildren)
	if len(dstChildren) < n {
		n = len(dstChildren)
	}
	for i := 0; i < n; i++ {
		s.PutRecursively(srcChildren[i], dstChildren[i])
	}
}

// Pop removes the src <-> dst pair. It is a no-op if the pair is not
// present.
func (s *Store) Pop(src, dst *node.Node) {
	if !s.Has(src, dst) {
		return
	}
	delete(s.srcToDst, src)
	delete(s.dstToSrc, dst)
}

// Has reports whether src is mapped to dst specifically.
func (s *Store) Has(src, dst *node.Node) bool {
	got, ok := s.srcToDst[src]
	return ok && got == dst
}

// ContainsSrc reports whether src is mapped to anything, and returns the
// partner if so.
func (s *Store) ContainsSrc(src *node.Node) (*node.Node, bool) {
	dst, ok := s.srcToDst[src]
	return dst, ok
}

// ContainsDst reports whether dst is mapped to anything, and returns the
// partner if so.
func (s *Store) ContainsDst(dst *node.Node) (*node.Node, bool) {
	src, ok := s.dstToSrc[dst]
	return src, ok
}

// IsMappingAllowed reports whether src and dst may be mapped together: their
// types must match and neither endpoint may already be mapped.
func (s *Store) IsMappingAllowed(src, dst *node.Node) bool {
	if src.Type != dst.Type {
		return false
	}
	if _, ok := s.srcToDst[src]; ok {
		return false
	}
	if _, ok := s.dstToSrc[dst]; ok {
		return false
	}
	return true
}

// Pair is one (src, dst) correspondence.
type Pair struct {
	Src, Dst *node.Node
}

// Pairs returns every (src, dst) pair currently in the store. Order is
// unspecified (Go map iteration order); callers that need determinism must
// sort the result themselves.
func (s *Store) Pairs() []Pair {
	out := make([]Pair, 0, len(s.srcToDst))
	for src, dst := range s.srcToDst {
		out = append(out, Pair{src, dst})
	}
	return out
}
