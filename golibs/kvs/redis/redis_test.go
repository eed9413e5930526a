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
package redis

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/solarisdb/lrucache/golibs/container/iterable"
	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/kvs"
	"github.com/stretchr/testify/assert"
)

type (
	testStorage struct {
		*storage
	}
)

func TestStorage_Create(t *testing.T) {
	s := getStorage(t)
	defer s.Delete(context.Background(), "k1")

	r := kvs.Record{Key: "k1", Value: []byte("v1")}
	ver, err := s.Create(context.Background(), r)
	assert.Nil(t, err)
	assert.NotEqual(t, r.Version, ver)

	_, err = s.Create(context.Background(), r)
	assert.Equal(t, errors.ErrExist, err)
}

func TestStorage_Get(t *testing.T) {
	s := getStorage(t)
	defer s.Delete(context.Background(), "k1")

	_, err := s.Get(context.Background(), "k1")
	assert.Equal(t, errors.ErrNotExist, err)

	r := kvs.Record{Key: "k1", Value: []byte("v1"), Version: "stale"}
	ver, err := s.Create(context.Background(), r)
	assert.Nil(t, err)
	assert.NotEqual(t, "stale", ver)
	r.Version = ver

	r1, err := s.Get(context.Background(), "k1")
	assert.Nil(t, err)
	assert.Equal(t, r, r1)
}

func TestStorage_GetMany(t *testing.T) {
	s := getStorage(t)
	defer s.Delete(context.Background(), "k1")
	defer s.Delete(context.Background(), "k2")

	recs := []kvs.Record{
		{Key: "k1", Value: []byte("v1")},
		{Key: "k2", Value: []byte("v2")},
	}
	assert.Nil(t, s.PutMany(context.Background(), recs))

	res, err := s.GetMany(context.Background(), "k1", "lost", "k2")
	assert.Nil(t, err)
	assert.Len(t, res, 3)
	assert.Equal(t, "k1", res[0].Key)
	assert.Equal(t, "v1", string(res[0].Value))
	assert.Nil(t, res[1])
	assert.Equal(t, "v2", string(res[2].Value))
}

func TestStorage_Put(t *testing.T) {
	s := getStorage(t)
	defer s.Delete(context.Background(), "k1")

	r := kvs.Record{Key: "k1", Value: []byte("v1"), Version: "stale"}
	r1, err := s.Put(context.Background(), r)
	assert.Nil(t, err)
	r2, err := s.Get(context.Background(), r.Key)
	assert.Nil(t, err)
	assert.Equal(t, r1, r2)

	r.Value = []byte("v2")
	r1, err = s.Put(context.Background(), r)
	assert.Nil(t, err)
	assert.NotEqual(t, r.Version, r1.Version)
	r.Version = r1.Version
	assert.Equal(t, r, r1)

	r2, err = s.Get(context.Background(), r.Key)
	assert.Nil(t, err)
	assert.Equal(t, r1, r2)
}

func TestStorage_PutMany(t *testing.T) {
	s := getStorage(t)
	defer s.Delete(context.Background(), "k1")
	defer s.Delete(context.Background(), "k2")

	recs := []kvs.Record{
		{Key: "k1", Value: []byte("v1"), Version: "stale"},
		{Key: "k2", Value: []byte("v2"), Version: "stale"},
	}
	assert.Nil(t, s.PutMany(context.Background(), recs))
	assert.Nil(t, s.PutMany(context.Background(), nil))

	recs[1].Value = []byte("v2.1")
	assert.Nil(t, s.PutMany(context.Background(), recs))

	r, err := s.Get(context.Background(), "k2")
	assert.Nil(t, err)
	assert.Equal(t, []byte("v2.1"), r.Value)
	assert.NotEqual(t, "stale", r.Version)
}

func TestStorage_CasByVersion(t *testing.T) {
	s := getStorage(t)
	defer s.Delete(context.Background(), "k1")

	_, err := s.CasByVersion(context.Background(), kvs.Record{Key: "k1", Version: "none"})
	assert.Equal(t, errors.ErrNotExist, err)

	_, err = s.Create(context.Background(), kvs.Record{Key: "k1", Value: []byte("v1")})
	assert.Nil(t, err)
	r, err := s.Get(context.Background(), "k1")
	assert.Nil(t, err)

	r.Value = []byte("v2")
	r, err = s.CasByVersion(context.Background(), r)
	assert.Nil(t, err)

	r.Version = "stale"
	_, err = s.CasByVersion(context.Background(), r)
	assert.Equal(t, errors.ErrConflict, err)
}

func TestStorage_CasByVersionTwice(t *testing.T) {
	s := getStorage(t)
	defer s.Delete(context.Background(), "k1")

	assert.Equal(t, errors.ErrNotExist, s.Delete(context.Background(), "k1"))
	r, err := s.Put(context.Background(), kvs.Record{Key: "k1", Value: []byte{33}, Version: "stale"})
	assert.Nil(t, err)

	r.Value = []byte{55}
	_, err = s.CasByVersion(context.Background(), r)
	assert.Nil(t, err)
	_, err = s.CasByVersion(context.Background(), r)
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestStorage_CasByVersionStress(t *testing.T) {
	s := getStorage(t)
	defer s.Delete(context.Background(), "k1")

	_, err := s.Create(context.Background(), kvs.Record{Key: "k1", Value: []byte("v1")})
	assert.Nil(t, err)
	rec, err := s.Get(context.Background(), "k1")
	assert.Nil(t, err)

	workers := 1000
	start := sync.WaitGroup{}
	start.Add(workers)
	done := sync.WaitGroup{}
	done.Add(workers)
	var wins int32
	for i := 0; i < workers; i++ {
		go func(r kvs.Record) {
			start.Done()
			start.Wait()
			if _, err := s.CasByVersion(context.Background(), r); err == nil {
				atomic.AddInt32(&wins, 1)
			}
			done.Done()
		}(rec)
	}

	done.Wait()
	assert.Equal(t, int32(1), wins)
}

func TestStorage_Delete(t *testing.T) {
	s := getStorage(t)

	assert.Equal(t, errors.ErrNotExist, s.Delete(context.Background(), "k1"))
	_, err := s.Create(context.Background(), kvs.Record{Key: "k1", Value: []byte("v1")})
	assert.Nil(t, err)

	assert.Nil(t, s.Delete(context.Background(), "k1"))
	_, err = s.Get(context.Background(), "k1")
	assert.Equal(t, errors.ErrNotExist, err)
}

func TestStorage_ListKeys(t *testing.T) {
	keys := []string{"rec1", "rec2", "zzz", "re", "ec"}
	sort.Strings(keys)
	s := getStorage(t)
	defer func() {
		for _, k := range keys {
			s.Delete(context.Background(), k)
		}
	}()
	s.cli.FlushAll(context.Background())

	for _, k := range keys {
		_, err := s.Create(context.Background(), kvs.Record{Key: k, Value: []byte(k)})
		assert.Nil(t, err)
	}

	it, err := s.ListKeys(context.Background(), "*")
	assert.Nil(t, err)
	assert.Equal(t, keys, readKeys(it))

	it, err = s.ListKeys(context.Background(), "rec*")
	assert.Nil(t, err)
	assert.Equal(t, []string{"rec1", "rec2"}, readKeys(it))

	it, err = s.ListKeys(context.Background(), "*ec*")
	assert.Nil(t, err)
	assert.Equal(t, []string{"ec", "rec1", "rec2"}, readKeys(it))

	it, err = s.ListKeys(context.Background(), "none")
	assert.Nil(t, err)
	assert.Equal(t, []string{}, readKeys(it))
}

func Test_dbKeys(t *testing.T) {
	assert.Equal(t, "/kvs/k1", toDBKey("k1"))
	assert.Equal(t, "/kvs/k1", toDBKey("/k1"))
	assert.Equal(t, "/kvs/k1", toDBKey("///k1"))
	assert.Equal(t, "/kvs/", toDBKey(""))
	assert.Equal(t, "k1", fromDBKey(toDBKey("k1")))
	assert.Equal(t, "", fromDBKey("/kvs/"))
	assert.Equal(t, "", fromDBKey("oops"))
	assert.Equal(t, []string{"/kvs/a", "/kvs/b"}, toDBKeys([]string{"a", "/b"}))
}

func Test_mapErr(t *testing.T) {
	assert.Nil(t, mapErr(nil))
	assert.Equal(t, errors.ErrNotExist, mapErr(redis.Nil))
	assert.Equal(t, errors.ErrInternal, mapErr(errors.ErrInternal))
}

func Test_marshalRecord(t *testing.T) {
	r := kvs.Record{Key: "k1", Value: []byte{1, 3, 4}, Version: "v1"}
	assert.Equal(t, r, unmarshalRecord(string(marshalRecord(r))))

	r = kvs.Record{Key: "k2"}
	assert.Equal(t, r, unmarshalRecord(string(marshalRecord(r))))
}

// readKeys drains the iterator and returns the sorted keys
func readKeys(it iterable.Iterator[string]) []string {
	defer it.Close()
	res := []string{}
	for it.HasNext() {
		k, ok := it.Next()
		if !ok {
			break
		}
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

func getStorage(t *testing.T) *testStorage {
	return getMini(t)
	return getRealRedis()
}

func getMini(t *testing.T) *testStorage {
	srv := miniredis.RunT(t)
	return &testStorage{storage: New(&redis.Options{Addr: srv.Addr()}).(*storage)}
}

func getRealRedis() *testStorage {
	return &testStorage{storage: New(&redis.Options{
		Addr:     "localhost:6379",
		Password: "", // no password set
		DB:       0,  // use default DB
	}).(*storage)}
}
