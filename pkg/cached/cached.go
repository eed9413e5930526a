package cached

import (
	"context"
	"sync/atomic"

	"github.com/logrange/linker"
	"github.com/solarisdb/lrucache/golibs/container/iterable"
	"github.com/solarisdb/lrucache/golibs/kvs"
	"github.com/solarisdb/lrucache/pkg/cache"
)

type (
	// Storage wraps a kvs.Storage with the read-through records cache.
	// Get is served from the cache, which is refilled from the underlying
	// storage on misses. The writes go to the underlying storage and
	// invalidate the affected keys. The Storage expects to be the only
	// writer, so an imparity may be observed if the underlying storage is
	// updated around it.
	Storage struct {
		storage  kvs.Storage
		recCache *cache.LoadingCache[string, kvs.Record]

		gets  int64
		loads int64
	}

	// Stats describes the read traffic served by the Storage
	Stats struct {
		// Gets is the total number of the Get calls
		Gets int64
		// Loads is how many of the Gets fell through to the underlying storage
		Loads int64
	}
)

var _ kvs.Storage = (*Storage)(nil)

// NewStorage wraps storage with the cache of the given capacity. The capacity=0
// turns the Storage into a pass-through, every read goes to the underlying storage.
func NewStorage(storage kvs.Storage, capacity int) (*Storage, error) {
	s := &Storage{storage: storage}
	var err error
	s.recCache, err = cache.NewLoading(capacity, func(ctx context.Context, key string) (kvs.Record, error) {
		atomic.AddInt64(&s.loads, 1)
		return s.storage.Get(ctx, key)
	}, nil)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Init implements linker.Initializer
func (s *Storage) Init(ctx context.Context) error {
	if init, ok := s.storage.(linker.Initializer); ok {
		return init.Init(ctx)
	}
	return nil
}

// Shutdown implements linker.Shutdowner
func (s *Storage) Shutdown() {
	if shut, ok := s.storage.(linker.Shutdowner); ok {
		shut.Shutdown()
	}
}

// Create implements kvs.Storage
func (s *Storage) Create(ctx context.Context, record kvs.Record) (string, error) {
	return s.storage.Create(ctx, record)
}

// Get implements kvs.Storage
func (s *Storage) Get(ctx context.Context, key string) (kvs.Record, error) {
	atomic.AddInt64(&s.gets, 1)
	rec, err := s.recCache.GetOrLoad(ctx, key)
	if err != nil {
		return kvs.Record{}, err
	}
	return rec.Copy(), nil
}

// GetMany implements kvs.Storage. The result is built by the underlying
// storage, the cache keeps a subset of the records only
func (s *Storage) GetMany(ctx context.Context, keys ...string) ([]*kvs.Record, error) {
	return s.storage.GetMany(ctx, keys...)
}

// Put implements kvs.Storage
func (s *Storage) Put(ctx context.Context, record kvs.Record) (kvs.Record, error) {
	r, err := s.storage.Put(ctx, record)
	if err != nil {
		return kvs.Record{}, err
	}
	s.recCache.Remove(record.Key)
	return r, nil
}

// PutMany implements kvs.Storage
func (s *Storage) PutMany(ctx context.Context, records []kvs.Record) error {
	if err := s.storage.PutMany(ctx, records); err != nil {
		return err
	}
	for _, r := range records {
		s.recCache.Remove(r.Key)
	}
	return nil
}

// CasByVersion implements kvs.Storage
func (s *Storage) CasByVersion(ctx context.Context, record kvs.Record) (kvs.Record, error) {
	rec, err := s.storage.CasByVersion(ctx, record)
	if err != nil {
		return rec, err
	}
	s.recCache.Remove(record.Key)
	return rec, nil
}

// Delete implements kvs.Storage
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.storage.Delete(ctx, key); err != nil {
		return err
	}
	s.recCache.Remove(key)
	return nil
}

// ListKeys implements kvs.Storage
func (s *Storage) ListKeys(ctx context.Context, pattern string) (iterable.Iterator[string], error) {
	return s.storage.ListKeys(ctx, pattern)
}

// Stats returns the read counters collected since the Storage creation
func (s *Storage) Stats() Stats {
	return Stats{
		Gets:  atomic.LoadInt64(&s.gets),
		Loads: atomic.LoadInt64(&s.loads),
	}
}
