// Copyright 2024 The Solaris Authors
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

package cache

import (
	"fmt"
	"sync"

	"github.com/solarisdb/lrucache/golibs/container/iterable"
	"github.com/solarisdb/lrucache/golibs/errors"
)

type (
	// Cache implements the key-value container with the limited size capacity and the LRU
	// (Least Recently Used) eviction discipline. Every successful Get or Put for a key makes
	// the key the most recently used one, so when the cache overflows its capacity, the key
	// which was not touched for the longest time is removed. The zero capacity is allowed,
	// this case the cache always stays empty and any value put into it is evicted immediately.
	//
	// All the Cache functions are safe for the concurrent use.
	Cache[K comparable, V any] struct {
		lock      sync.Mutex
		capacity  int
		items     *iterable.Map[K, V]
		onDeleteF OnDeleteF[K, V]
	}

	// OnDeleteF is the callback type, which is called for every value removed from the cache
	// either by the eviction or explicitly via Remove or Clear calls
	OnDeleteF[K comparable, V any] func(k K, v V)
)

// New creates the new Cache object with the capacity provided. The onDeleteF may be nil, if
// the notifications about the removed values are not needed. The function returns an error
// if the capacity is negative.
func New[K comparable, V any](capacity int, onDeleteF OnDeleteF[K, V]) (*Cache[K, V], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("New(): the capacity=%d, but it cannot be negative: %w", capacity, errors.ErrInvalid)
	}
	c := new(Cache[K, V])
	c.capacity = capacity
	c.items = iterable.NewMap[K, V]()
	c.onDeleteF = onDeleteF
	return c, nil
}

// Get returns the value by its key k. It returns errors.ErrNotExist if the key is not in the
// cache. The successful call makes the key the most recently used one.
func (c *Cache[K, V]) Get(k K) (V, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	v, ok := c.items.Get(k)
	if !ok {
		return *new(V), errors.ErrNotExist
	}
	// make it recently used, by adding to the end of the list
	c.items.Remove(k)
	c.items.Add(k, v)
	return v, nil
}

// Peek returns the value by its key k like Get does, but it doesn't affect the eviction
// order of the keys
func (c *Cache[K, V]) Peek(k K) (V, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	v, ok := c.items.Get(k)
	if !ok {
		return *new(V), errors.ErrNotExist
	}
	return v, nil
}

// Contains reports whether the key k is in the cache. The call doesn't affect the eviction
// order of the keys
func (c *Cache[K, V]) Contains(k K) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	_, ok := c.items.Get(k)
	return ok
}

// Put adds the value v for the key k into the cache. If the key is already there, its value
// is replaced. In both cases the key becomes the most recently used one. If the new key
// overflows the capacity, the least recently used key is evicted with the onDeleteF called
// for it. Put into the cache with the zero capacity is not an error, but the value is evicted
// immediately, so the cache stays empty.
//
// Replacing the value for an existing key is not a removal, so the onDeleteF is NOT called
// for the old value this case.
func (c *Cache[K, V]) Put(k K, v V) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.items.Remove(k)
	c.items.Add(k, v)
	c.evictOverflow()
}

// Remove deletes the value by its key k. It returns true if the value was in the cache and
// false if it was not found there. Removing the key, which is not in the cache, is not an error.
func (c *Cache[K, V]) Remove(k K) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	v, ok := c.items.Get(k)
	if !ok {
		return false
	}
	c.items.Remove(k)
	if c.onDeleteF != nil {
		c.onDeleteF(k, v)
	}
	return true
}

// Resize changes the cache capacity on the fly. If the new capacity is less than the current
// number of the values in the cache, the least recently used values are evicted until the
// cache fits the new capacity. Resize to 0 drains the cache completely. The function returns
// an error if the capacity is negative.
func (c *Cache[K, V]) Resize(capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("Resize(): the capacity=%d, but it cannot be negative: %w", capacity, errors.ErrInvalid)
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.capacity = capacity
	c.evictOverflow()
	return nil
}

// Len returns the number of the values in the cache
func (c *Cache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.items.Len()
}

// Capacity returns the current cache capacity
func (c *Cache[K, V]) Capacity() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.capacity
}

// Keys returns all the keys in the cache ordered from the least recently used one to the
// most recently used one. The call doesn't affect the eviction order of the keys.
func (c *Cache[K, V]) Keys() []K {
	c.lock.Lock()
	defer c.lock.Unlock()
	res := make([]K, 0, c.items.Len())
	it := c.items.Iterator()
	defer it.Close()
	for it.HasNext() {
		e, ok := it.Next()
		if !ok {
			continue
		}
		res = append(res, e.Key)
	}
	return res
}

// Clear removes all the values from the cache calling the onDeleteF for each of them. The
// function returns the number of the values removed.
func (c *Cache[K, V]) Clear() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	it := c.items.Iterator()
	defer it.Close()
	removed := 0
	for it.HasNext() {
		e, ok := it.Next()
		if !ok {
			continue
		}
		c.items.Remove(e.Key)
		if c.onDeleteF != nil {
			c.onDeleteF(e.Key, e.Value)
		}
		removed++
	}
	return removed
}

// evictOverflow removes the least recently used values until the cache fits its capacity.
// It must be called under the lock held.
func (c *Cache[K, V]) evictOverflow() {
	for c.capacity < c.items.Len() {
		k, _ := c.items.First()
		v, _ := c.items.Get(k)
		c.items.Remove(k)
		if c.onDeleteF != nil {
			c.onDeleteF(k, v)
		}
	}
}
