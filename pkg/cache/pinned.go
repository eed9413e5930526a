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

	"github.com/solarisdb/lrucache/golibs/chans"
	"github.com/solarisdb/lrucache/golibs/container/iterable"
	"github.com/solarisdb/lrucache/golibs/errors"
)

type (
	// PinnedCache keeps up to capacity loaded objects and evicts, with the LRU discipline, only
	// the objects which are not in use. To let the cache know which objects are in use, every
	// object obtained via Acquire must be returned back via Release as soon as the caller is done
	// with it. A released object stays in the cache and may be acquired again, or it may be
	// evicted when the room for a new object is needed. An acquired object is never evicted, so
	// a client which doesn't release its objects eventually blocks everyone.
	PinnedCache[K comparable, V any] struct {
		lock      sync.Mutex
		capacity  int
		allKnown  map[K]*holder[V]
		idle      *iterable.Map[K, V]
		inflight  map[K]chan struct{}
		loaderF   LoaderF[K, V]
		onDeleteF OnDeleteF[K, V]
		waiter    chan struct{}
		closed    bool
	}

	holder[V any] struct {
		value      V
		refCounter int
	}

	// Pinned represents an acquired object. The object itself is available via the Value()
	// function
	Pinned[V any] struct {
		k any
		h *holder[V]
	}
)

// NewPinned creates the new PinnedCache object. The capacity must be at least 1, a cache
// which can pin nothing would block all its clients forever.
func NewPinned[K comparable, V any](capacity int, loaderF LoaderF[K, V], onDeleteF OnDeleteF[K, V]) (*PinnedCache[K, V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("NewPinned(): the capacity=%d, but it cannot be less than 1: %w", capacity, errors.ErrInvalid)
	}
	if loaderF == nil {
		return nil, fmt.Errorf("NewPinned(): loaderF must not be nil: %w", errors.ErrInvalid)
	}
	p := new(PinnedCache[K, V])
	p.allKnown = make(map[K]*holder[V])
	p.idle = iterable.NewMap[K, V]()
	p.inflight = make(map[K]chan struct{})
	p.capacity = capacity
	p.loaderF = loaderF
	p.onDeleteF = onDeleteF
	return p, nil
}

// Acquire returns the object by its key k, either found in the cache or loaded via the
// loaderF. If the whole capacity is pinned by the acquired objects, the call is blocked until
// some object is released or the ctx is closed.
func (p *PinnedCache[K, V]) Acquire(ctx context.Context, k K) (Pinned[V], error) {
	for {
		p.lock.Lock()
		if p.closed {
			p.lock.Unlock()
			return Pinned[V]{}, errors.ErrClosed
		}
		if h, ok := p.allKnown[k]; ok {
			h.refCounter++
			if h.refCounter == 1 {
				p.idle.Remove(k)
			}
			p.lock.Unlock()
			return Pinned[V]{k: k, h: h}, nil
		}
		ch, watcher := p.inflight[k]
		waiter := false
		if !watcher {
			p.sweep(p.capacity)
			if p.capacity <= p.used() {
				// no room for a loader, wait until somebody releases an object
				if !chans.IsOpened(p.waiter) {
					p.waiter = make(chan struct{})
				}
				ch = p.waiter
				waiter = true
			} else {
				ch = make(chan struct{})
				p.inflight[k] = ch
			}
		}
		p.lock.Unlock()

		// watcher means another goroutine is loading the same key now, so its result will
		// be shared. waiter means the capacity is exhausted and the load cannot even start.
		if watcher || waiter {
			select {
			case <-ch:
				continue
			case <-ctx.Done():
				return Pinned[V]{}, ctx.Err()
			}
		}

		// only loaders may be here
		v, err := p.loaderF(ctx, k)

		p.lock.Lock()
		// the cache could be closed while the load was in progress
		if p.closed {
			if p.onDeleteF != nil {
				p.onDeleteF(k, v)
			}
			p.lock.Unlock()
			return Pinned[V]{}, errors.ErrClosed
		}

		close(ch)
		delete(p.inflight, k)
		var h *holder[V]
		if err == nil {
			h = &holder[V]{refCounter: 1, value: v}
			p.allKnown[k] = h
		}
		p.lock.Unlock()

		return Pinned[V]{k: k, h: h}, err
	}
}

// Release returns the object back to the cache. The pnd must not be used after the call.
func (p *PinnedCache[K, V]) Release(pnd *Pinned[V]) {
	p.lock.Lock()
	defer p.lock.Unlock()
	pnd.h.refCounter--
	if pnd.h.refCounter < 0 {
		panic(fmt.Sprintf("unacceptable usage of Release() for key=%v, v=%v, refCounter is negative", pnd.k, pnd.h.value))
	}
	if pnd.h.refCounter == 0 {
		if p.closed {
			if p.onDeleteF != nil {
				p.onDeleteF((pnd.k).(K), pnd.h.value)
			}
			return
		}
		p.idle.Add((pnd.k).(K), pnd.h.value)
		if p.waiter != nil {
			p.sweep(p.capacity)
			if p.used() < p.capacity {
				close(p.waiter)
				p.waiter = nil
			}
		}
	}
	pnd.h = nil
}

// Close evicts all the objects which are not acquired at the moment and marks the cache
// closed, so the new objects cannot be acquired anymore. The objects, which are still
// acquired, are deleted as soon as they are released.
func (p *PinnedCache[K, V]) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.closed {
		return errors.ErrClosed
	}
	p.sweep(0)
	p.closed = true
	for _, ch := range p.inflight {
		close(ch)
	}
	if p.waiter != nil {
		close(p.waiter)
		p.waiter = nil
	}
	p.inflight = nil
	p.allKnown = nil
	p.idle = nil
	return nil
}

// used returns the number of the loaded and the in-flight keys. Must be called under the lock
func (p *PinnedCache[K, V]) used() int {
	return len(p.allKnown) + len(p.inflight)
}

// sweep evicts the idle objects until the used count drops below maxAllowed or nothing
// idle is left
func (p *PinnedCache[K, V]) sweep(maxAllowed int) {
	for p.idle.Len() > 0 && p.used() >= maxAllowed {
		k, _ := p.idle.First()
		p.idle.Remove(k)
		if p.onDeleteF != nil {
			v := p.allKnown[k].value
			p.onDeleteF(k, v)
		}
		delete(p.allKnown, k)
	}
}

// Value returns the object the pnd represents. The function must not be called after the
// pnd is released back to the cache
func (pnd Pinned[V]) Value() V {
	return pnd.h.value
}
