package geokdnn

import "github.com/oleiade/lane/v2"

// workStack is an explicit LIFO work list used by IndexBuilder and
// KnnSearcher in place of native recursion, so traversal depth is
// bounded by heap rather than goroutine stack once populations run into
// the tens of millions. It is built on lane.MinPriorityQueue, driven
// with a strictly decreasing sequence number as the priority so Pop
// always returns the most-recently-pushed item — a priority queue doing
// double duty as a stack, rather than pulling in a second queue package
// for the same concern.
type workStack[T any] struct {
	pq   *lane.PriorityQueue[T, int]
	next int
	size int
}

func newWorkStack[T any]() *workStack[T] {
	return &workStack[T]{pq: lane.NewMinPriorityQueue[T, int]()}
}

func (s *workStack[T]) push(item T) {
	s.next--
	s.pq.Push(item, s.next)
	s.size++
}

func (s *workStack[T]) pop() (T, bool) {
	item, _, ok := s.pq.Pop()
	if ok {
		s.size--
	}
	return item, ok
}

func (s *workStack[T]) empty() bool {
	return s.size == 0
}
