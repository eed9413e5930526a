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

package sss

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/stretchr/testify/assert"
)

// TestSimpleStorage runs the Storage contract checks against the ss instance.
// The implementation tests call it with their own storage flavor.
func TestSimpleStorage(t *testing.T, ss Storage) {
	ctx := context.Background()

	// the key must not end on the delimiter
	assert.NotNil(t, ss.Put(ctx, "b0/", strings.NewReader("data-1")))

	put(t, ss, "/b1", "data-1")
	put(t, ss, "/b2", "data-1")
	put(t, ss, "/b2", "data-2")
	put(t, ss, "/arch/b3", "data-1")
	put(t, ss, "/arch/b4", "data-1")
	put(t, ss, "/arch/old/b5", "data-1")

	// the path must start from the delimiter
	_, err := ss.List(ctx, "")
	assert.NotNil(t, err)

	assert.Equal(t, []string{"/arch/", "/b1", "/b2"}, list(t, ss, "/"))
	assert.Equal(t, []string{"/arch/b3", "/arch/b4", "/arch/old/"}, list(t, ss, "/arch/"))

	// the second Put overwrites the value
	assert.Equal(t, "data-2", readBlob(t, ss, "/b2"))
	assert.Equal(t, "data-1", readBlob(t, ss, "/arch/b3"))

	_, err = ss.Get(ctx, "/b3")
	assert.Equal(t, errors.ErrNotExist, err)

	// the repeated Delete result is implementation specific, so it is ignored
	ss.Delete(ctx, "/arch/b3")
	ss.Delete(ctx, "/arch/b3")
	assert.Equal(t, []string{"/arch/b4", "/arch/old/"}, list(t, ss, "/arch/"))

	_, err = ss.Get(ctx, "/arch/b3")
	assert.Equal(t, errors.ErrNotExist, err)

	ss.Delete(ctx, "/arch/old/b5")
	ss.Delete(ctx, "/arch/b4")
	assert.Equal(t, []string{}, list(t, ss, "/arch/"))
	assert.Equal(t, []string{"/b1", "/b2"}, list(t, ss, "/"))

	ss.Delete(ctx, "/b1")
	ss.Delete(ctx, "/b2")
	assert.Equal(t, []string{}, list(t, ss, "/"))
}

func put(t *testing.T, ss Storage, key, data string) {
	assert.Nil(t, ss.Put(context.Background(), key, strings.NewReader(data)))
}

func list(t *testing.T, ss Storage, path string) []string {
	res, err := ss.List(context.Background(), path)
	assert.Nil(t, err)
	sort.Strings(res)
	return res
}

func readBlob(t *testing.T, ss Storage, key string) string {
	r, err := ss.Get(context.Background(), key)
	assert.Nil(t, err)
	buf, err := io.ReadAll(r)
	assert.Nil(t, err)
	assert.Nil(t, r.Close())
	return string(buf)
}
