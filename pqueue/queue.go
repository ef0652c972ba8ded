// Package pqueue implements a max-heap keyed by an item's height, with the
// "synchronize" cooperation between two queues that the top-down matcher
// needs to walk both trees down to a common height level at a time.
//
// The heap mechanics (up/down/swap) mirror graph.Heap in the sibling
// package this module was built from; what's new here is the
// height-batching and two-queue synchronization on top.
package pqueue

import "container/heap"

// Queue is a max-heap of items of type T, keyed by height (ties broken by
// the caller-supplied less function so that iteration order is fully
// deterministic).
type Queue[T any] struct {
	h        *impl[T]
	height   func(T) int
	children func(T) []T
	less     func(a, b T) bool
	minHeight int
}

// New returns an empty Queue. height and children extract an item's height
// and its ordered children; less breaks ties between items of equal height
// so that pop order is deterministic. minHeight defaults to 1: Push ignores
// any item whose height is below it.
func New[T any](height func(T) int, children func(T) []T, less func(a, b T) bool) *Queue[T] {
	return &Queue[T]{
		h:         &impl[T]{height: height},
		height:    height,
		children:  children,
		less:      less,
		minHeight: 1,
	}
}

// SetMinHeight overrides the default minimum height of 1.
func (q *Queue[T]) SetMinHeight(h int) { q.minHeight = h }

// Len reports the number of items currently queued.
func (q *Queue[T]) Len() int { return q.h.Len() }

// Empty reports whether the queue holds no items.
func (q *Queue[T]) Empty() bool { return q.h.Len() == 0 }

// Push adds item to the queue, unless its height is below the configured
// minimum height, in which case it is silently dropped.
func (q *Queue[T]) Push(item T) {
	if q.height(item) < q.minHeight {
		return
	}
	heap.Push(q.h, entry[T]{item, q.less})
}

// PushChildren pushes every child of item (per the configured children
// function).
func (q *Queue[T]) PushChildren(item T) {
	for _, c := range q.children(item) {
		q.Push(c)
	}
}

// CurrentHeight returns the height of the item at the front of the queue.
// It panics if the queue is empty.
func (q *Queue[T]) CurrentHeight() int {
	return q.height(q.h.items[0].v)
}

// PopEqualPriority pops and returns every item currently at the queue's
// maximum height.
func (q *Queue[T]) PopEqualPriority() []T {
	if q.Empty() {
		return nil
	}
	priority := q.CurrentHeight()
	var out []T
	for !q.Empty() && q.CurrentHeight() == priority {
		out = append(out, heap.Pop(q.h).(entry[T]).v)
	}
	return out
}

// Clear empties the queue.
func (q *Queue[T]) Clear() {
	q.h.items = nil
}

// SynchronizeAndPushChildren walks q and other down in lockstep, popping the
// equal-priority batch from whichever queue currently has the taller front
// and pushing those items' children back, until both queues agree on their
// front height. It reports false (and clears both queues) if either queue
// empties out before that happens.
func (q *Queue[T]) SynchronizeAndPushChildren(other *Queue[T]) bool {
	for !q.Empty() && !other.Empty() && q.CurrentHeight() != other.CurrentHeight() {
		if q.CurrentHeight() > other.CurrentHeight() {
			for _, item := range q.PopEqualPriority() {
				q.PushChildren(item)
			}
		} else {
			for _, item := range other.PopEqualPriority() {
				other.PushChildren(item)
			}
		}
	}
	if q.Empty() || other.Empty() {
		q.Clear()
		other.Clear()
		return false
	}
	return true
}

// entry wraps a queued item together with the tiebreak function, so the
// underlying container/heap implementation can compare two entries without
// needing a second type parameter on impl.
type entry[T any] struct {
	v    T
	less func(a, b T) bool
}

// impl is the container/heap.Interface backing a Queue. Ordering is by
// height descending (computed via the stored items, since height isn't
// threaded through entry) then by the caller's less function.
type impl[T any] struct {
	items  []entry[T]
	height func(T) int
}

func (h *impl[T]) Len() int { return len(h.items) }

func (h *impl[T]) Less(i, j int) bool {
	hi, hj := h.height(h.items[i].v), h.height(h.items[j].v)
	if hi != hj {
		return hi > hj // max-heap on height
	}
	return h.items[i].less(h.items[i].v, h.items[j].v)
}

func (h *impl[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *impl[T]) Push(x any) { h.items = append(h.items, x.(entry[T])) }

func (h *impl[T]) Pop() any {
	n := len(h.items)
	x := h.items[n-1]
	h.items = h.items[:n-1]
	return x
}
