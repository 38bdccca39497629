package queue

import "container/heap"

// HeapQueue is an indexed binary min-heap over the active elements.
// Ordering: key, then element id (lower first, deterministic tie-breaker).
type HeapQueue struct {
	store    *KeyStore
	heap     elementHeap
	topIndex int
}

// elementHeap implements heap.Interface over element ids.
type elementHeap struct {
	keys  []float64
	ids   []int
	slots []int // slots[id] is the heap position of id, -1 when absent
}

// NewHeapQueue creates a heap queue over capacity elements.
func NewHeapQueue(capacity int) *HeapQueue {
	store := NewKeyStore(capacity)
	q := &HeapQueue{
		store: store,
		heap: elementHeap{
			keys:  store.keys,
			ids:   make([]int, 0, capacity),
			slots: make([]int, capacity),
		},
		topIndex: -1,
	}
	for i := range q.heap.slots {
		q.heap.slots[i] = -1
	}
	return q
}

// Len implements heap.Interface
func (h *elementHeap) Len() int {
	return len(h.ids)
}

// Less implements heap.Interface with deterministic ordering
func (h *elementHeap) Less(i, j int) bool {
	a, b := h.ids[i], h.ids[j]
	if h.keys[a] != h.keys[b] {
		return h.keys[a] < h.keys[b]
	}
	return a < b
}

// Swap implements heap.Interface
func (h *elementHeap) Swap(i, j int) {
	h.ids[i], h.ids[j] = h.ids[j], h.ids[i]
	h.slots[h.ids[i]] = i
	h.slots[h.ids[j]] = j
}

// Push implements heap.Interface
func (h *elementHeap) Push(x interface{}) {
	id := x.(int)
	h.slots[id] = len(h.ids)
	h.ids = append(h.ids, id)
}

// Pop implements heap.Interface
func (h *elementHeap) Pop() interface{} {
	n := len(h.ids)
	id := h.ids[n-1]
	h.ids = h.ids[:n-1]
	h.slots[id] = -1
	return id
}

func (q *HeapQueue) Capacity() int { return q.store.Capacity() }

func (q *HeapQueue) Len() int { return q.store.Len() }

func (q *HeapQueue) Get(i int) (float64, bool) { return q.store.Get(i) }

// Top returns the heap root.
func (q *HeapQueue) Top() (int, bool) {
	if q.heap.Len() == 0 {
		q.topIndex = -1
		return -1, false
	}
	q.topIndex = q.heap.ids[0]
	return q.topIndex, true
}

func (q *HeapQueue) Push(i int, key float64) {
	q.Set(i, key)
}

// Set inserts or re-sifts element i.
func (q *HeapQueue) Set(i int, key float64) {
	q.store.Set(i, key)
	if slot := q.heap.slots[i]; slot >= 0 {
		heap.Fix(&q.heap, slot)
		return
	}
	heap.Push(&q.heap, i)
}

func (q *HeapQueue) Pop(i int) {
	q.store.Pop(i)
	if slot := q.heap.slots[i]; slot >= 0 {
		heap.Remove(&q.heap, slot)
	}
}

func (q *HeapQueue) PopTop() {
	if q.topIndex < 0 {
		precondition(ErrNoTop, q.topIndex)
	}
	q.Pop(q.topIndex)
}

func (q *HeapQueue) PushTop(key float64) {
	if q.topIndex < 0 {
		precondition(ErrNoTop, q.topIndex)
	}
	q.Push(q.topIndex, key)
}

func (q *HeapQueue) Clear() {
	q.store.Clear()
	for _, id := range q.heap.ids {
		q.heap.slots[id] = -1
	}
	q.heap.ids = q.heap.ids[:0]
	q.topIndex = -1
}
