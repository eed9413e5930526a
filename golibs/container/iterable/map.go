// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package iterable

import "fmt"

type (
	// Map is a map which keeps the order the elements were added into it. The
	// content may be walked through by an iterator, which visits the elements
	// from the oldest one to the newest one. The map may be modified while an
	// iterator exists, the iterator observes the changes, but it never breaks
	// the insertion order.
	Map[K comparable, V any] struct {
		entries map[K]*entry[K, V]
		// root anchors the ring, root.next is the oldest element and
		// root.prev is the newest one
		root entry[K, V]
	}

	// MapEntry is the element an iterator over the Map returns
	MapEntry[K comparable, V any] struct {
		Key   K
		Value V
	}

	mapIterator[K comparable, V any] struct {
		m   *Map[K, V]
		cur *entry[K, V]
	}

	// entry is a node of the ring. Remove unlinks the node, but leaves its
	// next pointer untouched, so an iterator standing on the removed node
	// catches up with the ring on the following move.
	entry[K comparable, V any] struct {
		prev *entry[K, V]
		next *entry[K, V]
		dead bool
		key  K
		val  V
	}
)

// NewMap returns the new empty Map[K, V]
func NewMap[K comparable, V any]() *Map[K, V] {
	m := new(Map[K, V])
	m.entries = make(map[K]*entry[K, V])
	m.root.next = &m.root
	m.root.prev = &m.root
	return m
}

// Iterator returns the Iterator[MapEntry[K, V]] over the map content. The
// caller must Close() the iterator when it is not needed anymore.
func (m *Map[K, V]) Iterator() Iterator[MapEntry[K, V]] {
	return &mapIterator[K, V]{m: m, cur: &m.root}
}

// Add puts the new key-value pair to the end of the order. It returns an
// error if the key is already in the map.
func (m *Map[K, V]) Add(k K, v V) error {
	if _, ok := m.entries[k]; ok {
		return fmt.Errorf("the key=%v is already in the Map", k)
	}
	e := &entry[K, V]{prev: m.root.prev, next: &m.root, key: k, val: v}
	e.prev.next = e
	m.root.prev = e
	m.entries[k] = e
	return nil
}

// Get returns the value stored for the key
func (m *Map[K, V]) Get(k K) (V, bool) {
	if e, ok := m.entries[k]; ok {
		return e.val, true
	}
	var v V
	return v, false
}

// Remove drops the key and its value from the map
func (m *Map[K, V]) Remove(k K) {
	e, ok := m.entries[k]
	if !ok {
		return
	}
	delete(m.entries, k)
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.dead = true
	e.val = *new(V)
}

// Len returns the number of elements in the map
func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

// First returns the oldest key in the map and whether the key exists or not
func (m *Map[K, V]) First() (K, bool) {
	if len(m.entries) == 0 {
		var k K
		return k, false
	}
	return m.root.next.key, true
}

// advance returns the node the iterator must visit next. Only live nodes stay
// on the ring, so a walk over a chain of dead nodes always returns to it.
func (it *mapIterator[K, V]) advance() *entry[K, V] {
	p := it.cur
	if !p.dead {
		p = p.next
	}
	for p.dead {
		p = p.next
	}
	return p
}

func (it *mapIterator[K, V]) HasNext() bool {
	return it.advance() != &it.m.root
}

func (it *mapIterator[K, V]) Next() (MapEntry[K, V], bool) {
	p := it.advance()
	if p == &it.m.root {
		return MapEntry[K, V]{}, false
	}
	it.cur = p
	return MapEntry[K, V]{p.key, p.val}, true
}

func (it *mapIterator[K, V]) Close() error {
	it.m = nil
	it.cur = nil
	return nil
}
