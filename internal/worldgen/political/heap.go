package political

import "container/heap"

type pqItem struct {
	key      float64
	id       int
	payload  int     // secondary payload, e.g. the candidate owner id
	pathCost float64 // used by the population-balanced county frontier only
}

// priorityQueue is a binary min-heap keyed by (key asc, id asc), used by
// every Dijkstra and frontier expansion in this package.
type priorityQueue []pqItem

func (h priorityQueue) Len() int { return len(h) }
func (h priorityQueue) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	return h[i].id < h[j].id
}
func (h priorityQueue) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *priorityQueue) Push(x any)   { *h = append(*h, x.(pqItem)) }
func (h *priorityQueue) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func newPriorityQueue() *priorityQueue {
	h := &priorityQueue{}
	heap.Init(h)
	return h
}

func (h *priorityQueue) push(key float64, id, payload int) {
	heap.Push(h, pqItem{key: key, id: id, payload: payload})
}

func (h *priorityQueue) pushWithPathCost(priority float64, id, payload int, pathCost float64) {
	heap.Push(h, pqItem{key: priority, id: id, payload: payload, pathCost: pathCost})
}

func (h *priorityQueue) pop() pqItem {
	return heap.Pop(h).(pqItem)
}
