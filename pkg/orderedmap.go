// Package pkg is a package that provides utilities for covreport.
package pkg

// OrderedMap is a map that remembers the order in which keys were first set.
type OrderedMap[K comparable, V any] interface {
	Len() int
	Get(key K) (V, bool)
	Set(key K, value V)
	Range(f func(key K, value V) error) error
}

type orderedMapImpl[K comparable, V any] struct {
	index  map[K]int
	keys   []K
	values []V
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() OrderedMap[K, V] {
	return &orderedMapImpl[K, V]{
		index: make(map[K]int),
	}
}

// Len implements OrderedMap.
func (o *orderedMapImpl[K, V]) Len() int {
	return len(o.keys)
}

// Get implements OrderedMap.
func (o *orderedMapImpl[K, V]) Get(key K) (V, bool) {
	i, ok := o.index[key]
	if !ok {
		var zero V
		return zero, false
	}

	return o.values[i], true
}

// Set implements OrderedMap. Overwriting an existing key keeps its position.
func (o *orderedMapImpl[K, V]) Set(key K, value V) {
	if i, ok := o.index[key]; ok {
		o.values[i] = value
		return
	}

	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, value)
}

// Range implements OrderedMap. Iteration stops at the first error returned by f.
func (o *orderedMapImpl[K, V]) Range(f func(key K, value V) error) error {
	for i, key := range o.keys {
		if err := f(key, o.values[i]); err != nil {
			return err
		}
	}

	return nil
}
