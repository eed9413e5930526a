// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
/*
kvs package contains interfaces and structures for working with a key-value storage.
The kvs.Storage can be implemented on top of a remote storage like Redis, a local
persistent one like BuntDB, or the in-memory implementation for the test environments.
The package plays the role of the slow persistent layer for the caches, which keep
the hot subset of its records in memory.
*/

package kvs

import (
	"context"

	"github.com/solarisdb/lrucache/golibs/container"
	"github.com/solarisdb/lrucache/golibs/container/iterable"
)

type (

	// Record is a single key-value pair kept in the storage
	Record struct {
		// Key is a key for the record
		Key string
		// Value is a value for the record
		Value []byte

		// Version identifies the record revision. The field is managed by the
		// Storage, the Create and the update operations ignore the value provided
		Version string
	}

	// Storage interface defines the operations over the record storage. The
	// storage keeps key-value pairs and its operations set allows to build
	// some synchronization primitives on top of it
	Storage interface {
		// Create adds the new record into the storage and returns the version of
		// the record stored. If the key already exists, the ErrExist is returned
		Create(ctx context.Context, record Record) (string, error)

		// Get returns the record by its key. If the key is not found in the
		// storage, the ErrNotExist is returned
		Get(ctx context.Context, key string) (Record, error)

		// GetMany retrieves several records at a time. The keys, which are not
		// found, are silently skipped in the result
		GetMany(ctx context.Context, keys ...string) ([]*Record, error)

		// Put stores the record whether its key exists in the storage or not.
		// The record version is updated automatically
		Put(ctx context.Context, record Record) (Record, error)

		// PutMany stores multiple records in one call
		PutMany(ctx context.Context, records []Record) error

		// CasByVersion compares-and-sets the record Value if the stored version
		// matches the version of the record provided. The new record state is
		// returned in the first parameter.
		//
		// The operation failures are reported the following way:
		//   ErrConflict - the stored version is different from the expected one
		//   ErrNotExist - the record does not exist
		CasByVersion(ctx context.Context, record Record) (Record, error)

		// Delete removes the record from the storage by its key. The ErrNotExist
		// is returned if the record is not found
		Delete(ctx context.Context, key string) error

		// ListKeys returns the iterator over the keys matching the pattern
		// provided. The pattern is a glob-alike matcher (not a regexp), for the
		// matching rules please refer to the Glob library doc
		// https://github.com/gobwas/glob
		ListKeys(ctx context.Context, pattern string) (iterable.Iterator[string], error)
	}
)

// Copy returns copy of the record r
func (r Record) Copy() Record {
	res := r
	if r.Value != nil {
		res.Value = container.SliceCopy(r.Value)
	}
	return res
}
