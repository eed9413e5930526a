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
	"context"
	"fmt"
	"sync"

	"github.com/solarisdb/lrucache/golibs/container/iterable"
	"github.com/solarisdb/lrucache/golibs/errors"
)

type (
	// LoadingCache implements the LRU container, which populates the missing values itself
	// via the loaderF function call provided at the cache creation. The values ejection
	// discipline is the same as for the Cache - the least recently used value is evicted as
	// soon as the cache overflows its capacity.
	//
	// Concurrent requests for the same missing key are collapsed: only one of the callers
	// invokes the loaderF, all other ones are blocked until the result is ready. The loaderF
	// is always called outside of the cache lock, so it can be as slow as needed.
	LoadingCache[K comparable, V any] struct {
		lock      sync.Mutex
		capacity  int
		items     *iterable.Map[K, V]
		inflight  map[K]chan struct{}
		loaderF   LoaderF[K, V]
		onDeleteF OnDeleteF[K, V]
	}

	// LoaderF is the function type used for loading the values missing in the cache. The
	// function may be blocked for a while, so it accepts ctx to be cancellable.
	LoaderF[K comparable, V any] func(ctx context.Context, k K) (V, error)
)

// NewLoading creates the new LoadingCache object with the capacity and the loaderF provided.
// The onDeleteF may be nil. The function returns an error if the capacity is negative or the
// loaderF is nil.
func NewLoading[K comparable, V any](capacity int, loaderF LoaderF[K, V], onDeleteF OnDeleteF[K, V]) (*LoadingCache[K, V], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("NewLoading(): the capacity=%d, but it cannot be negative: %w", capacity, errors.ErrInvalid)
	}
	if loaderF == nil {
		return nil, fmt.Errorf("NewLoading(): loaderF must not be nil: %w", errors.ErrInvalid)
	}
	lc := new(LoadingCache[K, V])
	lc.capacity = capacity
	lc.items = iterable.NewMap[K, V]()
	lc.inflight = make(map[K]chan struct{})
	lc.loaderF = loaderF
	lc.onDeleteF = onDeleteF
	return lc, nil
}

// GetOrLoad returns an existing value or loads the missing one by its key k. The function may
// be blocked until the value is loaded or the ctx is closed. If the loaderF returns an error,
// nothing is cached and the error is returned to the caller, so the next GetOrLoad for the
// key will try to load it again.
func (lc *LoadingCache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	for {
		lc.lock.Lock()
		if v, ok := lc.items.Get(k); ok {
			// make it recently used, by adding to the end of the list
			lc.items.Remove(k)
			lc.items.Add(k, v)
			lc.lock.Unlock()
			return v, nil
		}
		ch, watcher := lc.inflight[k]
		if !watcher {
			ch = make(chan struct{})
			lc.inflight[k] = ch
		}
		lc.lock.Unlock()

		// if watcher is true, it means that another goroutine already loading the value,
		// so it needs to wait for the result instead of requesting the loader again.
		if watcher {
			select {
			case <-ch:
				continue
			case <-ctx.Done():
				return *new(V), ctx.Err()
			}
		}

		v, err := lc.loaderF(ctx, k)

		lc.lock.Lock()
		close(ch)
		delete(lc.inflight, k)
		if err == nil {
			lc.items.Add(k, v)
			if lc.capacity < lc.items.Len() {
				k, _ := lc.items.First()
				v, _ := lc.items.Get(k)
				lc.items.Remove(k)
				if lc.onDeleteF != nil {
					lc.onDeleteF(k, v)
				}
			}
		}
		lc.lock.Unlock()

		return v, err
	}
}

// Put adds the value v for the key k into the cache directly, without calling the loaderF.
// The put value becomes the most recently used one. The eviction rules are the same as for
// the Cache - the least recently used value is dropped when the cache overflows its capacity.
func (lc *LoadingCache[K, V]) Put(k K, v V) {
	lc.lock.Lock()
	defer lc.lock.Unlock()
	lc.items.Remove(k)
	lc.items.Add(k, v)
	if lc.capacity < lc.items.Len() {
		k, _ := lc.items.First()
		v, _ := lc.items.Get(k)
		lc.items.Remove(k)
		if lc.onDeleteF != nil {
			lc.onDeleteF(k, v)
		}
	}
}

// Remove deletes the value by its key k. It returns true if the value was in the cache and
// false if it was not found there
func (lc *LoadingCache[K, V]) Remove(k K) bool {
	lc.lock.Lock()
	defer lc.lock.Unlock()
	v, ok := lc.items.Get(k)
	if !ok {
		return false
	}
	lc.items.Remove(k)
	if lc.onDeleteF != nil {
		lc.onDeleteF(k, v)
	}
	return true
}

// Len returns the number of the values in the cache
func (lc *LoadingCache[K, V]) Len() int {
	lc.lock.Lock()
	defer lc.lock.Unlock()
	return lc.items.Len()
}

// Clear removes all the values from the cache calling the onDeleteF for each of them. The
// function returns the number of the values removed.
func (lc *LoadingCache[K, V]) Clear() int {
	lc.lock.Lock()
	defer lc.lock.Unlock()
	it := lc.items.Iterator()
	defer it.Close()
	removed := 0
	for it.HasNext() {
		e, ok := it.Next()
		if !ok {
			continue
		}
		lc.items.Remove(e.Key)
		if lc.onDeleteF != nil {
			lc.onDeleteF(e.Key, e.Value)
		}
		removed++
	}
	return removed
}
