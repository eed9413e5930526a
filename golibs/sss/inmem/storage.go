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

package inmem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/solarisdb/lrucache/golibs/container"
	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/sss"
)

// Storage provides the sss.Storage functionality in the process memory. The
// implementation serves the tests and the single process configurations.
type Storage struct {
	lock sync.Mutex
	data map[string][]byte
}

var _ sss.Storage = (*Storage)(nil)

// NewStorage creates new instance of Storage
func NewStorage() *Storage {
	return &Storage{data: make(map[string][]byte)}
}

// Get allows to read a value by its key. If key is not found the
// errors.ErrNotExist is returned
func (st *Storage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	if !sss.IsKeyValid(key) {
		return nil, fmt.Errorf("Get: the key=%q is not valid: %w", key, errors.ErrInvalid)
	}

	st.lock.Lock()
	defer st.lock.Unlock()

	// the stored buffers are never mutated after Put, so the reader may
	// outlive the lock
	if buf, ok := st.data[key]; ok {
		return io.NopCloser(bytes.NewReader(buf)), nil
	}

	return nil, errors.ErrNotExist
}

// Put allows to store value represented by reader r by the key
func (st *Storage) Put(_ context.Context, key string, r io.Reader) error {
	if !sss.IsKeyValid(key) {
		return fmt.Errorf("Put: the key=%q is not valid: %w", key, errors.ErrInvalid)
	}

	buf, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	st.lock.Lock()
	defer st.lock.Unlock()
	st.data[key] = container.SliceCopy(buf)
	return nil
}

// List returns the keys and the direct sub-paths found under the path provided
//
// Example:
// for the keys list: "/abc", "/def/abc", "/def/aa1"
// List("/") -> "/abc", "/def/"
// List("/def/") -> "/def/abc", "/def/aa1"
func (st *Storage) List(_ context.Context, path string) ([]string, error) {
	if !sss.IsPathValid(path) {
		return nil, fmt.Errorf("List: the path=%q is not valid: %w", path, errors.ErrInvalid)
	}

	st.lock.Lock()
	defer st.lock.Unlock()

	found := make(map[string]bool)
	for _, k := range container.Keys(st.data) {
		if !strings.HasPrefix(k, path) {
			continue
		}
		child := k[len(path):]
		if idx := strings.Index(child, "/"); idx >= 0 {
			// a sub-path, cut the child up to its first delimiter
			child = child[:idx+1]
		}
		found[path+child] = true
	}
	return container.Keys(found), nil
}

// Delete allows to delete a value by its key. If the key doesn't exist, the
// errors.ErrNotExist is returned
func (st *Storage) Delete(_ context.Context, key string) error {
	if !sss.IsKeyValid(key) {
		return fmt.Errorf("Delete: the key=%q is not valid: %w", key, errors.ErrInvalid)
	}

	st.lock.Lock()
	defer st.lock.Unlock()

	if _, ok := st.data[key]; !ok {
		return errors.ErrNotExist
	}
	delete(st.data, key)
	return nil
}
