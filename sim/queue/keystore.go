package queue

import "math"

// Sentinel marks an element as inactive. It must never be pushed as a key.
const Sentinel = math.MaxFloat64

// KeyStore is a fixed-capacity, densely indexed array of keys. It is the
// storage layer shared by every queue strategy.
type KeyStore struct {
	keys   []float64
	active int
}

// NewKeyStore creates a store of the given capacity with every slot inactive.
func NewKeyStore(capacity int) *KeyStore {
	s := &KeyStore{keys: make([]float64, capacity)}
	s.Clear()
	return s
}

// Capacity returns the number of slots.
func (s *KeyStore) Capacity() int {
	return len(s.keys)
}

// Len returns the number of active slots.
func (s *KeyStore) Len() int {
	return s.active
}

// Key returns the raw key of slot i, Sentinel included.
func (s *KeyStore) Key(i int) float64 {
	return s.keys[i]
}

// Get returns the key of slot i; ok is false when the slot is inactive.
func (s *KeyStore) Get(i int) (float64, bool) {
	k := s.keys[i]
	return k, k != Sentinel
}

// Set stores key in slot i. Pushing Sentinel panics with ErrSentinelKey;
// +Inf and NaN panic with ErrInvalidKey.
func (s *KeyStore) Set(i int, key float64) {
	if key == Sentinel {
		precondition(ErrSentinelKey, i)
	}
	if !(key < Sentinel) {
		precondition(ErrInvalidKey, i)
	}
	if s.keys[i] == Sentinel {
		s.active++
	}
	s.keys[i] = key
}

// Push is Set, used when reactivating a slot.
func (s *KeyStore) Push(i int, key float64) {
	s.Set(i, key)
}

// Pop deactivates slot i.
func (s *KeyStore) Pop(i int) {
	if s.keys[i] != Sentinel {
		s.active--
	}
	s.keys[i] = Sentinel
}

// Clear deactivates every slot.
func (s *KeyStore) Clear() {
	for i := range s.keys {
		s.keys[i] = Sentinel
	}
	s.active = 0
}

// Min returns the slot holding the smallest key, lowest index first on ties.
// ok is false when no slot is active.
func (s *KeyStore) Min() (index int, ok bool) {
	index = -1
	best := Sentinel
	for i, k := range s.keys {
		if k < best {
			best, index = k, i
		}
	}
	return index, index >= 0
}
