package queue

// LinearScanQueue finds the minimum with a full scan on every Top. Updates are
// O(1), Top is O(capacity); it wins when the index space is small or updates
// dominate queries.
type LinearScanQueue struct {
	store    *KeyStore
	capacity int
	topIndex int
}

// NewLinearScanQueue creates a queue over capacity elements. The store is
// padded to an even size so Top can compare slots in pairs; the padding slot
// stays Sentinel forever.
func NewLinearScanQueue(capacity int) *LinearScanQueue {
	return &LinearScanQueue{
		store:    NewKeyStore(capacity + capacity%2),
		capacity: capacity,
		topIndex: -1,
	}
}

func (q *LinearScanQueue) Capacity() int { return q.capacity }

func (q *LinearScanQueue) Len() int { return q.store.Len() }

func (q *LinearScanQueue) Get(i int) (float64, bool) { return q.store.Get(i) }

// Top scans the keys two at a time: the smaller of each pair is compared to
// the running minimum, so ties resolve to the lowest index.
func (q *LinearScanQueue) Top() (int, bool) {
	keys := q.store.keys
	best := -1
	bestKey := Sentinel
	for i := 0; i < len(keys); i += 2 {
		j := i
		if keys[i+1] < keys[i] {
			j = i + 1
		}
		if keys[j] < bestKey {
			best, bestKey = j, keys[j]
		}
	}
	q.topIndex = best
	return best, best >= 0
}

func (q *LinearScanQueue) Push(i int, key float64) {
	q.checkIndex(i)
	q.store.Push(i, key)
}

func (q *LinearScanQueue) Set(i int, key float64) {
	q.checkIndex(i)
	q.store.Set(i, key)
}

func (q *LinearScanQueue) Pop(i int) {
	q.checkIndex(i)
	q.store.Pop(i)
}

func (q *LinearScanQueue) PopTop() {
	if q.topIndex < 0 {
		precondition(ErrNoTop, q.topIndex)
	}
	q.Pop(q.topIndex)
}

func (q *LinearScanQueue) PushTop(key float64) {
	if q.topIndex < 0 {
		precondition(ErrNoTop, q.topIndex)
	}
	q.Push(q.topIndex, key)
}

func (q *LinearScanQueue) Clear() {
	q.store.Clear()
	q.topIndex = -1
}

// checkIndex keeps writes out of the padding slot.
func (q *LinearScanQueue) checkIndex(i int) {
	if i >= q.capacity {
		panic(indexError(i, q.capacity))
	}
}
