package geokdnn

import "container/heap"

// BoundedTopK is a fixed-capacity collection keyed by a real-valued score
// (distance). It behaves as a max-heap of size <= k: once full, offering a
// new item evicts the current worst (largest score) only if the new score
// is strictly smaller. Equal-score ties favor the earlier-inserted item,
// via a monotonic insertion counter folded in as the secondary key.
//
// lane/v2's PriorityQueue (used elsewhere in this package for explicit
// work stacks) requires a cmp.Ordered priority and exposes no
// peek-without-pop primitive, so it cannot carry the composite
// (score, insertion order) key this structure needs; container/heap, the
// standard tool for a hand-rolled heap with custom ordering, is used
// directly instead.
type BoundedTopK struct {
	cap   int
	items topkHeap
	next  uint64
}

type topkEntry struct {
	record   Record
	score    float64
	inserted uint64
}

// NewBoundedTopK creates a BoundedTopK with the given fixed capacity.
func NewBoundedTopK(k int) *BoundedTopK {
	return &BoundedTopK{cap: k}
}

// Offer inserts record at score if there is room, or if score beats the
// current worst held score. Otherwise the item is dropped.
func (b *BoundedTopK) Offer(record Record, score float64) {
	entry := topkEntry{record: record, score: score, inserted: b.next}
	b.next++

	if len(b.items) < b.cap {
		heap.Push(&b.items, entry)
		return
	}
	if score < b.items[0].score {
		b.items[0] = entry
		heap.Fix(&b.items, 0)
	}
	// score >= current worst: the earlier-inserted occupant wins, drop.
}

// IsFull reports whether the collection holds exactly its capacity.
func (b *BoundedTopK) IsFull() bool {
	return len(b.items) == b.cap
}

// Len reports the number of items currently held.
func (b *BoundedTopK) Len() int {
	return len(b.items)
}

// PeekMaxScore returns the worst (largest) score currently held. It is
// only meaningful when Len() > 0; the searcher never calls it otherwise.
func (b *BoundedTopK) PeekMaxScore() float64 {
	return b.items[0].score
}

// DrainSortedAscending destructively empties the collection, returning
// its records in ascending score order.
func (b *BoundedTopK) DrainSortedAscending() []Record {
	n := len(b.items)
	out := make([]Record, n)
	for i := n - 1; i >= 0; i-- {
		entry := heap.Pop(&b.items).(topkEntry)
		out[i] = entry.record
	}
	return out
}

// topkHeap is a max-heap over (score desc, inserted desc): the element at
// the root is always the current worst-scoring (or, on ties, the
// latest-inserted) occupant — the one Offer evicts first.
type topkHeap []topkEntry

func (h topkHeap) Len() int { return len(h) }

func (h topkHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score > h[j].score
	}
	return h[i].inserted > h[j].inserted
}

func (h topkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *topkHeap) Push(x any) {
	*h = append(*h, x.(topkEntry))
}

func (h *topkHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
