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
package inmem

import (
	"context"
	"fmt"
	"sync"

	"github.com/gobwas/glob"
	"github.com/solarisdb/lrucache/golibs/container"
	"github.com/solarisdb/lrucache/golibs/container/iterable"
	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/kvs"
	"github.com/solarisdb/lrucache/golibs/ulidutils"
)

type (
	storage struct {
		mx   sync.Mutex
		data map[string]kvs.Record
	}
)

// New returns kvs.Storage which keeps all the records in the process memory.
// The implementation serves the tests and the single process configurations.
func New() kvs.Storage {
	return &storage{data: make(map[string]kvs.Record)}
}

func (s *storage) Create(ctx context.Context, record kvs.Record) (string, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if r, ok := s.data[record.Key]; ok {
		return r.Version, errors.ErrExist
	}
	record.Version = ulidutils.NewID()
	s.data[record.Key] = record
	return record.Version, nil
}

func (s *storage) Get(ctx context.Context, key string) (kvs.Record, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	if r, ok := s.data[key]; ok {
		return r, nil
	}
	return kvs.Record{}, errors.ErrNotExist
}

func (s *storage) GetMany(ctx context.Context, keys ...string) ([]*kvs.Record, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	res := make([]*kvs.Record, len(keys))
	for i, key := range keys {
		if r, ok := s.data[key]; ok {
			res[i] = &r
		}
	}
	return res, nil
}

func (s *storage) Put(ctx context.Context, record kvs.Record) (kvs.Record, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	record.Version = ulidutils.NewID()
	s.data[record.Key] = record
	return record, nil
}

func (s *storage) PutMany(ctx context.Context, records []kvs.Record) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	for _, r := range records {
		r.Version = ulidutils.NewID()
		s.data[r.Key] = r
	}
	return nil
}

func (s *storage) CasByVersion(ctx context.Context, record kvs.Record) (kvs.Record, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	r, ok := s.data[record.Key]
	if !ok {
		return kvs.Record{}, errors.ErrNotExist
	}
	if r.Version != record.Version {
		return kvs.Record{}, errors.ErrConflict
	}
	record.Version = ulidutils.NewID()
	s.data[record.Key] = record
	return record, nil
}

func (s *storage) Delete(ctx context.Context, key string) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if _, ok := s.data[key]; !ok {
		return errors.ErrNotExist
	}
	delete(s.data, key)
	return nil
}

func (s *storage) ListKeys(ctx context.Context, pattern string) (iterable.Iterator[string], error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("could not compile the pattern %q: %w", pattern, err)
	}

	s.mx.Lock()
	defer s.mx.Unlock()
	res := make([]string, 0, len(s.data))
	for _, k := range container.Keys(s.data) {
		if g.Match(k) {
			res = append(res, k)
		}
	}
	if len(res) == 0 {
		return &iterable.EmptyIterator[string]{}, nil
	}
	return iterable.WrapSlice(res), nil
}
