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
package buntdb

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/solarisdb/lrucache/golibs/cast"
	"github.com/solarisdb/lrucache/golibs/container/iterable"
	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/files"
	"github.com/solarisdb/lrucache/golibs/kvs"
	"github.com/solarisdb/lrucache/golibs/logging"
	"github.com/solarisdb/lrucache/golibs/ulidutils"
	"github.com/tidwall/buntdb"
)

type (
	// Config configures the key-value storage held in a single
	// BuntDB https://github.com/tidwall/buntdb file
	Config struct {
		// DBFilePath is the database file location. The empty value
		// turns the in-memory mode on, so the records do not survive
		// the process restart then.
		DBFilePath string
	}

	// Storage implements kvs.Storage over BuntDB. All the mutations run
	// in the writable transactions, so the batch operations are atomic.
	Storage struct {
		cfg    *Config
		db     *buntdb.DB
		logger logging.Logger
	}
)

var _ kvs.Storage = (*Storage)(nil)

// NewStorage creates the BuntDB-backed key-value storage. The storage
// is not usable until its Init is called.
func NewStorage(cfg Config) *Storage {
	return &Storage{cfg: &cfg}
}

// Init implements linker.Initializer
func (s *Storage) Init(ctx context.Context) error {
	path := s.cfg.DBFilePath
	if path == "" {
		path = ":memory:"
	} else if err := files.EnsureDirExists(filepath.Dir(path)); err != nil {
		return err
	}

	s.logger = logging.NewLogger("buntdb.Storage")
	s.logger.Infof("opening the database file=%s", path)

	db, err := buntdb.Open(path)
	if err != nil {
		return fmt.Errorf("could not open the database file=%s: %w", path, err)
	}
	s.db = db
	return nil
}

// Shutdown implements linker.Shutdowner
func (s *Storage) Shutdown() {
	s.logger.Infof("closing the database")
	if s.db != nil {
		_ = s.db.Close()
	}
}

// Create implements kvs.Storage
func (s *Storage) Create(ctx context.Context, record kvs.Record) (string, error) {
	var version string
	err := s.db.Update(func(tx *buntdb.Tx) error {
		if r, err := readRecord(tx, record.Key); err == nil {
			version = r.Version
			return errors.ErrExist
		} else if !errors.Is(err, errors.ErrNotExist) {
			return err
		}
		record.Version = ulidutils.NewID()
		version = record.Version
		return setRecord(tx, record)
	})
	if err != nil && !errors.Is(err, errors.ErrExist) {
		return "", err
	}
	return version, err
}

// Get implements kvs.Storage
func (s *Storage) Get(ctx context.Context, key string) (kvs.Record, error) {
	var rec kvs.Record
	err := s.db.View(func(tx *buntdb.Tx) error {
		var err error
		rec, err = readRecord(tx, key)
		return err
	})
	return rec, err
}

// GetMany implements kvs.Storage
func (s *Storage) GetMany(ctx context.Context, keys ...string) ([]*kvs.Record, error) {
	res := make([]*kvs.Record, len(keys))
	err := s.db.View(func(tx *buntdb.Tx) error {
		for i, key := range keys {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := readRecord(tx, key)
			if errors.Is(err, errors.ErrNotExist) {
				// the missing keys leave the nil holes in the result
				continue
			}
			if err != nil {
				return err
			}
			res[i] = &r
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Put implements kvs.Storage
func (s *Storage) Put(ctx context.Context, record kvs.Record) (kvs.Record, error) {
	record.Version = ulidutils.NewID()
	err := s.db.Update(func(tx *buntdb.Tx) error {
		return setRecord(tx, record)
	})
	if err != nil {
		return kvs.Record{}, err
	}
	return record, nil
}

// PutMany implements kvs.Storage
func (s *Storage) PutMany(ctx context.Context, records []kvs.Record) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		for _, r := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.Version = ulidutils.NewID()
			if err := setRecord(tx, r); err != nil {
				return err
			}
		}
		return nil
	})
}

// CasByVersion implements kvs.Storage
func (s *Storage) CasByVersion(ctx context.Context, record kvs.Record) (kvs.Record, error) {
	err := s.db.Update(func(tx *buntdb.Tx) error {
		r, err := readRecord(tx, record.Key)
		if err != nil {
			return err
		}
		if r.Version != record.Version {
			return errors.ErrConflict
		}
		record.Version = ulidutils.NewID()
		return setRecord(tx, record)
	})
	if err != nil {
		return kvs.Record{}, err
	}
	return record, nil
}

// Delete implements kvs.Storage
func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		if _, err := tx.Delete(key); err != nil {
			if errors.Is(err, buntdb.ErrNotFound) {
				return errors.ErrNotExist
			}
			return fmt.Errorf("could not delete the record with the key=%q: %w", key, err)
		}
		return nil
	})
}

// ListKeys implements kvs.Storage. The keys are collected in one
// transaction, so the iterator walks over the consistent snapshot.
func (s *Storage) ListKeys(ctx context.Context, pattern string) (iterable.Iterator[string], error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("the pattern %q is not valid (%v): %w", pattern, err, errors.ErrInvalid)
	}

	keys := []string{}
	err = s.db.View(func(tx *buntdb.Tx) error {
		var walkErr error
		err := tx.Ascend("", func(key, _ string) bool {
			if walkErr = ctx.Err(); walkErr != nil {
				return false
			}
			if g.Match(key) {
				keys = append(keys, key)
			}
			return true
		})
		if walkErr != nil {
			return walkErr
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return iterable.WrapSlice(keys), nil
}

func readRecord(tx *buntdb.Tx, key string) (kvs.Record, error) {
	val, err := tx.Get(key, true)
	if errors.Is(err, buntdb.ErrNotFound) {
		return kvs.Record{}, errors.ErrNotExist
	}
	if err != nil {
		return kvs.Record{}, fmt.Errorf("could not read the record with the key=%q: %w", key, err)
	}
	return unmarshalRecord(val), nil
}

func setRecord(tx *buntdb.Tx, record kvs.Record) error {
	if _, _, err := tx.Set(record.Key, marshalRecord(record), nil); err != nil {
		return fmt.Errorf("could not store the record with the key=%q: %w", record.Key, err)
	}
	return nil
}

func marshalRecord(r kvs.Record) string {
	buf, err := json.Marshal(r)
	if err != nil {
		panic(fmt.Sprintf("could not marshal the record %v: %s", r, err))
	}
	return cast.ByteArrayToString(buf)
}

func unmarshalRecord(val string) kvs.Record {
	var r kvs.Record
	if err := json.Unmarshal(cast.StringToByteArray(val), &r); err != nil {
		panic(fmt.Sprintf("could not unmarshal the record: %s", err))
	}
	return r
}
