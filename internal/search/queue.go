package search

import (
	"container/heap"

	"github.com/mExOms/pathsearch/pkg/result"
)

// entry pairs a State with the insertion-order counter it was pushed with,
// modeled on the teacher pack's lucendex pathfinder priorityQueue/node
// pattern (own Len/Less/Swap/Push/Pop over container/heap).
type entry struct {
	state          State
	insertionOrder int64
	index          int
}

// priorityQueue is a min-heap ordered by PathOrderKey (§4.4).
type priorityQueue []*entry

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return result.Less(pq[i].state.OrderKey(pq[i].insertionOrder), pq[j].state.OrderKey(pq[j].insertionOrder))
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	e := x.(*entry)
	e.index = len(*pq)
	*pq = append(*pq, e)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*pq = old[:n-1]
	return e
}

// Queue wraps container/heap with the single-counter insertion-order
// allocation the spec requires (§4.4): a single counter owned by the
// current search, monotonically increasing.
type Queue struct {
	pq      priorityQueue
	counter int64
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.pq)
	return q
}

// Push enqueues state, allocating the next insertion-order value.
func (q *Queue) Push(s State) int64 {
	order := q.counter
	q.counter++
	heap.Push(&q.pq, &entry{state: s, insertionOrder: order})
	return order
}

// Len reports the number of queued entries.
func (q *Queue) Len() int { return q.pq.Len() }

// Pop removes and returns the minimum entry.
func (q *Queue) Pop() (State, int64, bool) {
	if q.pq.Len() == 0 {
		return State{}, 0, false
	}
	e := heap.Pop(&q.pq).(*entry)
	return e.state, e.insertionOrder, true
}

// PeekOrderKey returns the order key of the current minimum entry without
// removing it.
func (q *Queue) PeekOrderKey() (result.PathOrderKey, bool) {
	if q.pq.Len() == 0 {
		return result.PathOrderKey{}, false
	}
	e := q.pq[0]
	return e.state.OrderKey(e.insertionOrder), true
}
