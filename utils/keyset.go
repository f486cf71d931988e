package utils

// KeySet tracks which keys have been seen and how often. It is not safe for
// concurrent use.
type KeySet[K comparable] struct {
	seen  map[K]int
	order []K
}

// NewKeySet creates an empty KeySet.
func NewKeySet[K comparable]() *KeySet[K] {
	return &KeySet[K]{seen: make(map[K]int)}
}

// Add returns true if key was newly added, false if already present.
func (s *KeySet[K]) Add(key K) bool {
	n, exists := s.seen[key]
	s.seen[key] = n + 1
	if exists {
		return false
	}
	s.order = append(s.order, key)
	return true
}

// Contains returns true if key has been added.
func (s *KeySet[K]) Contains(key K) bool {
	_, exists := s.seen[key]
	return exists
}

// Size returns the number of distinct keys tracked.
func (s *KeySet[K]) Size() int {
	return len(s.order)
}

// Repeated returns the keys added more than once with their add counts, in
// first-seen order.
func (s *KeySet[K]) Repeated() ([]K, []int) {
	var keys []K
	var counts []int
	for _, k := range s.order {
		if n := s.seen[k]; n > 1 {
			keys = append(keys, k)
			counts = append(counts, n)
		}
	}
	return keys, counts
}
