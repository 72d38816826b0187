package hydrology

import "container/heap"

type heapItem struct {
	priority float64
	id       int
}

// vertexHeap is a binary min-heap keyed by (priority asc, id asc), used
// by the priority-flood depression fill.
type vertexHeap []heapItem

func (h vertexHeap) Len() int { return len(h) }
func (h vertexHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].id < h[j].id
}
func (h vertexHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *vertexHeap) Push(x any)   { *h = append(*h, x.(heapItem)) }
func (h *vertexHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func newVertexHeap() *vertexHeap {
	h := &vertexHeap{}
	heap.Init(h)
	return h
}

func (h *vertexHeap) push(priority float64, id int) {
	heap.Push(h, heapItem{priority, id})
}

func (h *vertexHeap) pop() (float64, int) {
	item := heap.Pop(h).(heapItem)
	return item.priority, item.id
}
