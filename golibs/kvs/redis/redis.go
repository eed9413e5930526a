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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/solarisdb/lrucache/golibs/cast"
	"github.com/solarisdb/lrucache/golibs/container/iterable"
	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/kvs"
	"github.com/solarisdb/lrucache/golibs/ulidutils"
)

type (
	storage struct {
		cli *redis.Client
	}

	scanIterator struct {
		it   *redis.ScanIterator
		next *string
	}
)

// keyPrefix separates the records from whatever else lives in the database
const keyPrefix = "/kvs/"

// scanBatch is the SCAN page size for ListKeys
const scanBatch = 1000

// New returns kvs.Storage on top of the Redis server the opts point to
func New(opts *redis.Options) kvs.Storage {
	return &storage{cli: redis.NewClient(opts)}
}

func (s *storage) Create(ctx context.Context, record kvs.Record) (string, error) {
	record.Version = ulidutils.NewID()
	ok, err := s.cli.SetNX(ctx, toDBKey(record.Key), marshalRecord(record), 0).Result()
	if err != nil {
		return "", mapErr(err)
	}
	if !ok {
		return "", errors.ErrExist
	}
	return record.Version, nil
}

func (s *storage) Get(ctx context.Context, key string) (kvs.Record, error) {
	val, err := s.cli.Get(ctx, toDBKey(key)).Result()
	if err != nil {
		return kvs.Record{}, mapErr(err)
	}
	r := unmarshalRecord(val)
	r.Key = key
	return r, nil
}

func (s *storage) GetMany(ctx context.Context, keys ...string) ([]*kvs.Record, error) {
	vals, err := s.cli.MGet(ctx, toDBKeys(keys)...).Result()
	if err != nil {
		return nil, mapErr(err)
	}
	res := make([]*kvs.Record, len(keys))
	for i, val := range vals {
		if val == nil {
			// not found keys are skipped in the result
			continue
		}
		r := unmarshalRecord(val.(string))
		r.Key = keys[i]
		res[i] = &r
	}
	return res, nil
}

func (s *storage) Put(ctx context.Context, record kvs.Record) (kvs.Record, error) {
	record.Version = ulidutils.NewID()
	_, err := s.cli.Set(ctx, toDBKey(record.Key), marshalRecord(record), 0).Result()
	return record, mapErr(err)
}

func (s *storage) PutMany(ctx context.Context, records []kvs.Record) error {
	if len(records) == 0 {
		return nil
	}
	pairs := make([]string, 0, len(records)*2)
	for _, r := range records {
		r.Version = ulidutils.NewID()
		pairs = append(pairs, toDBKey(r.Key), cast.ByteArrayToString(marshalRecord(r)))
	}
	_, err := s.cli.MSet(ctx, pairs).Result()
	return mapErr(err)
}

func (s *storage) CasByVersion(ctx context.Context, record kvs.Record) (kvs.Record, error) {
	dbKey := toDBKey(record.Key)
	err := s.cli.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, dbKey).Result()
		if err != nil {
			return mapErr(err)
		}
		if unmarshalRecord(val).Version != record.Version {
			return errors.ErrConflict
		}
		record.Version = ulidutils.NewID()
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return pipe.Set(ctx, dbKey, marshalRecord(record), 0).Err()
		})
		return err
	}, dbKey)
	return record, err
}

func (s *storage) Delete(ctx context.Context, key string) error {
	cnt, err := s.cli.Del(ctx, toDBKey(key)).Result()
	if err != nil {
		return mapErr(err)
	}
	if cnt == 0 {
		return errors.ErrNotExist
	}
	return nil
}

// ListKeys returns the iterator over the keys matching the glob-alike pattern
func (s *storage) ListKeys(ctx context.Context, pattern string) (iterable.Iterator[string], error) {
	it := s.cli.Scan(ctx, 0, toDBKey(pattern), scanBatch).Iterator()
	return &scanIterator{it: it}, nil
}

func (s *storage) Close() error {
	return s.cli.Close()
}

// mapErr turns the redis miss into the errors.ErrNotExist
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return errors.ErrNotExist
	}
	return err
}

func toDBKey(key string) string {
	return keyPrefix + strings.TrimLeft(key, "/")
}

func toDBKeys(keys []string) []string {
	res := make([]string, len(keys))
	for i, k := range keys {
		res[i] = toDBKey(k)
	}
	return res
}

func fromDBKey(dbKey string) string {
	if len(dbKey) <= len(keyPrefix) {
		return ""
	}
	return dbKey[len(keyPrefix):]
}

func marshalRecord(r kvs.Record) []byte {
	buf, err := json.Marshal(r)
	if err != nil {
		panic(fmt.Sprintf("could not marshal the record %v: %s", r, err))
	}
	return buf
}

func unmarshalRecord(val string) kvs.Record {
	var r kvs.Record
	if err := json.Unmarshal(cast.StringToByteArray(val), &r); err != nil {
		panic(fmt.Sprintf("could not unmarshal the record: %s", err))
	}
	return r
}

var _ iterable.Iterator[string] = (*scanIterator)(nil)

func (si *scanIterator) HasNext() bool {
	if si.next == nil && si.it.Next(context.Background()) {
		si.next = cast.Ptr(fromDBKey(si.it.Val()))
	}
	return si.next != nil
}

func (si *scanIterator) Next() (string, bool) {
	if !si.HasNext() {
		return "", false
	}
	res := *si.next
	si.next = nil
	return res, true
}

func (si *scanIterator) Close() error {
	si.it = nil
	si.next = nil
	return nil
}
