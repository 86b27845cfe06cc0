package pipeline

// orderedMap is a map that remembers the order in which keys were first inserted.
// Overwriting a key keeps its original position.
type orderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{values: make(map[K]V)}
}

// Set stores v under k. A new key is appended to the iteration order.
func (m *orderedMap[K, V]) Set(k K, v V) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// SetIfAbsent stores v under k only if k has never been set.
// Reports whether the value was stored.
func (m *orderedMap[K, V]) SetIfAbsent(k K, v V) bool {
	if _, ok := m.values[k]; ok {
		return false
	}
	m.Set(k, v)
	return true
}

func (m *orderedMap[K, V]) Get(k K) (V, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Keys returns the keys in first-insertion order.
func (m *orderedMap[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *orderedMap[K, V]) Len() int {
	return len(m.keys)
}
