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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapEmpty(t *testing.T) {
	m := NewMap[string, string]()
	assert.Equal(t, 0, m.Len())
	_, ok := m.First()
	assert.False(t, ok)

	it := m.Iterator()
	defer it.Close()
	assert.False(t, it.HasNext())
	e, ok := it.Next()
	assert.False(t, ok)
	assert.Equal(t, MapEntry[string, string]{}, e)
}

func TestMapInsertionOrder(t *testing.T) {
	m := NewMap[string, int]()
	for i, w := range []string{"north", "east", "south", "west"} {
		assert.Nil(t, m.Add(w, i))
	}
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, []MapEntry[string, int]{{"north", 0}, {"east", 1}, {"south", 2}, {"west", 3}},
		drainMap(t, m.Iterator()))
}

func TestMapAddExisting(t *testing.T) {
	m := NewMap[int, int]()
	assert.Nil(t, m.Add(1, 1))
	assert.NotNil(t, m.Add(1, 2))
	assert.Equal(t, 1, m.Len())
	v, ok := m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestMapGet(t *testing.T) {
	m := NewMap[string, int]()
	m.Add("one", 1)
	_, ok := m.Get("two")
	assert.False(t, ok)
	v, ok := m.Get("one")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestMapRemove(t *testing.T) {
	m := NewMap[int, string]()
	m.Add(1, "a")
	m.Add(2, "b")
	m.Add(3, "c")

	// removing the unknown key changes nothing
	m.Remove(5)
	assert.Equal(t, 3, m.Len())

	m.Remove(2)
	assert.Equal(t, 2, m.Len())
	_, ok := m.Get(2)
	assert.False(t, ok)
	assert.Equal(t, []MapEntry[int, string]{{1, "a"}, {3, "c"}}, drainMap(t, m.Iterator()))
}

func TestMapReinsertMovesToEnd(t *testing.T) {
	m := NewMap[int, int]()
	m.Add(1, 1)
	m.Add(2, 2)
	m.Remove(1)
	m.Add(1, 3)
	k, ok := m.First()
	assert.True(t, ok)
	assert.Equal(t, 2, k)
	assert.Equal(t, []MapEntry[int, int]{{2, 2}, {1, 3}}, drainMap(t, m.Iterator()))
}

func TestMapFirst(t *testing.T) {
	m := NewMap[string, int]()
	_, ok := m.First()
	assert.False(t, ok)

	m.Add("old", 1)
	m.Add("new", 2)
	k, ok := m.First()
	assert.True(t, ok)
	assert.Equal(t, "old", k)

	m.Remove("old")
	k, ok = m.First()
	assert.True(t, ok)
	assert.Equal(t, "new", k)

	m.Remove("new")
	_, ok = m.First()
	assert.False(t, ok)
}

func TestMapIteratorSkipsRemovedAhead(t *testing.T) {
	m := NewMap[string, int]()
	for i, k := range []string{"a", "b", "c", "d", "e"} {
		m.Add(k, i)
	}
	it := m.Iterator()
	defer it.Close()
	e, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, "a", e.Key)

	// the nodes removed ahead of the iterator leave the ring at once
	m.Remove("b")
	m.Remove("c")
	m.Remove("d")
	e, ok = it.Next()
	assert.True(t, ok)
	assert.Equal(t, MapEntry[string, int]{"e", 4}, e)
	assert.False(t, it.HasNext())
}

func TestMapIteratorParkedOnRemoved(t *testing.T) {
	m := NewMap[string, int]()
	for i, k := range []string{"a", "b", "c", "d"} {
		m.Add(k, i)
	}
	it := m.Iterator().(*mapIterator[string, int])
	it.Next()
	e, _ := it.Next()
	assert.Equal(t, "b", e.Key)

	// the iterator stands on "b", the chain of the removed nodes leads it to "d"
	m.Remove("b")
	m.Remove("c")
	assert.True(t, it.cur.dead)
	assert.True(t, it.HasNext())
	e, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, MapEntry[string, int]{"d", 3}, e)
	assert.Nil(t, it.Close())
}

func TestMapIteratorCreatedEarly(t *testing.T) {
	m := NewMap[int, int]()
	it := m.Iterator()
	defer it.Close()
	assert.False(t, it.HasNext())

	m.Add(1, 1)
	assert.True(t, it.HasNext())

	// HasNext and Next disagree when the element goes away in between
	m.Remove(1)
	e, ok := it.Next()
	assert.False(t, ok)
	assert.Equal(t, MapEntry[int, int]{}, e)
}

func TestMapIteratorCatchesNewTail(t *testing.T) {
	m := NewMap[int, int]()
	m.Add(1, 10)
	it := m.Iterator()
	defer it.Close()
	it.Next()
	_, ok := it.Next()
	assert.False(t, ok)

	// the drained iterator stands on the tail and picks up the additions
	m.Add(2, 20)
	assert.True(t, it.HasNext())
	e, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, MapEntry[int, int]{2, 20}, e)
}

func TestMapRemoveUnlinks(t *testing.T) {
	m := NewMap[string, []byte]()
	m.Add("blob", make([]byte, 1024))
	m.Add("tiny", []byte{1})
	e := m.entries["blob"]

	// the value and the back reference are dropped with the node
	m.Remove("blob")
	assert.True(t, e.dead)
	assert.Nil(t, e.prev)
	assert.Nil(t, e.val)
	assert.Equal(t, "tiny", e.next.key)
	assert.Equal(t, "tiny", m.root.next.key)
}

func drainMap[K comparable, V any](t *testing.T, it Iterator[MapEntry[K, V]]) []MapEntry[K, V] {
	var res []MapEntry[K, V]
	for it.HasNext() {
		e, ok := it.Next()
		assert.True(t, ok)
		res = append(res, e)
	}
	assert.Nil(t, it.Close())
	return res
}

func BenchmarkMapAddRemove(b *testing.B) {
	m := NewMap[int, int]()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Add(i, i)
		m.Remove(i)
	}
}
