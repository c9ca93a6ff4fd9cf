/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Tabella Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package ordered provides a map that preserves insertion order.
// Column sets, hidden-column sets and transform registries are all
// rendered in the order they were configured, so plain Go maps are
// not usable for them.
package ordered

// Map is a map that preserves the order in which keys were first set.
// Updating an existing key keeps its original position.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New creates an empty ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		keys:   make([]K, 0),
		values: make(map[K]V),
	}
}

// Set adds a key-value pair, or updates the value of an existing key
// in place.
func (m *Map[K, V]) Set(key K, value V) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// SetFront adds a key-value pair at the front of the map. An existing
// key is moved to the front and its value replaced.
func (m *Map[K, V]) SetFront(key K, value V) {
	if _, exists := m.values[key]; exists {
		m.removeKey(key)
	}
	m.keys = append([]K{key}, m.keys...)
	m.values[key] = value
}

// Get retrieves a value by key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	val, exists := m.values[key]
	return val, exists
}

// Has checks if a key exists.
func (m *Map[K, V]) Has(key K) bool {
	_, exists := m.values[key]
	return exists
}

// Delete removes a key-value pair. Deleting an absent key is a no-op.
func (m *Map[K, V]) Delete(key K) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	m.removeKey(key)
}

func (m *Map[K, V]) removeKey(key K) {
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			return
		}
	}
}

// Keys returns all keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	result := make([]K, len(m.keys))
	copy(result, m.keys)
	return result
}

// Values returns all values in insertion order.
func (m *Map[K, V]) Values() []V {
	result := make([]V, len(m.keys))
	for i, k := range m.keys {
		result[i] = m.values[k]
	}
	return result
}

// Len returns the number of key-value pairs.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Range iterates over the map in insertion order.
// If f returns false, iteration stops.
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	for _, k := range m.keys {
		if !f(k, m.values[k]) {
			break
		}
	}
}

// Clone returns a copy of the map sharing the same values.
func (m *Map[K, V]) Clone() *Map[K, V] {
	clone := &Map[K, V]{
		keys:   make([]K, len(m.keys)),
		values: make(map[K]V, len(m.values)),
	}
	copy(clone.keys, m.keys)
	for k, v := range m.values {
		clone.values[k] = v
	}
	return clone
}
