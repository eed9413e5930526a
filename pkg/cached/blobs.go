package cached

import (
	"bytes"
	"context"
	"io"
	"sync/atomic"

	"github.com/solarisdb/lrucache/golibs/container"
	"github.com/solarisdb/lrucache/golibs/sss"
	"github.com/solarisdb/lrucache/pkg/cache"
)

// Blobs serves reads from a sss.Storage through the cache of the downloaded
// values. The read of a missing value downloads the whole blob and keeps it
// in the cache, concurrent reads of the same key share one download. The
// writes go to the underlying storage and invalidate the cached copy.
type Blobs struct {
	storage   sss.Storage
	blobCache *cache.LoadingCache[string, []byte]

	gets  int64
	loads int64
}

// NewBlobs wraps storage with the cache of the given capacity. The capacity=0
// turns the Blobs into a pass-through, every read downloads the blob again.
func NewBlobs(storage sss.Storage, capacity int) (*Blobs, error) {
	b := &Blobs{storage: storage}
	var err error
	b.blobCache, err = cache.NewLoading(capacity, func(ctx context.Context, key string) ([]byte, error) {
		atomic.AddInt64(&b.loads, 1)
		r, err := b.storage.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	}, nil)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Get returns the value by its key. The result is a copy, the caller may
// modify it freely.
func (b *Blobs) Get(ctx context.Context, key string) ([]byte, error) {
	atomic.AddInt64(&b.gets, 1)
	buf, err := b.blobCache.GetOrLoad(ctx, key)
	if err != nil {
		return nil, err
	}
	return container.SliceCopy(buf), nil
}

// Put stores the value by the key and drops the cached copy if any
func (b *Blobs) Put(ctx context.Context, key string, value []byte) error {
	if err := b.storage.Put(ctx, key, bytes.NewReader(value)); err != nil {
		return err
	}
	b.blobCache.Remove(key)
	return nil
}

// Delete removes the value by its key from the underlying storage and from
// the cache
func (b *Blobs) Delete(ctx context.Context, key string) error {
	if err := b.storage.Delete(ctx, key); err != nil {
		return err
	}
	b.blobCache.Remove(key)
	return nil
}

// Stats returns the read counters collected since the Blobs creation
func (b *Blobs) Stats() Stats {
	return Stats{
		Gets:  atomic.LoadInt64(&b.gets),
		Loads: atomic.LoadInt64(&b.loads),
	}
}
