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
package iterable

import (
	"testing"

	"github.com/solarisdb/lrucache/golibs"
	"github.com/stretchr/testify/assert"
)

func TestWrapSliceEmpty(t *testing.T) {
	for _, vals := range [][]int{nil, {}} {
		it := WrapSlice(vals)
		assert.False(t, it.HasNext())
		v, ok := it.Next()
		assert.False(t, ok)
		assert.Equal(t, 0, v)
		assert.Nil(t, it.Close())
	}
}

func TestWrapSliceOrder(t *testing.T) {
	vals := []string{"fee", "fi", "fo", "fum"}
	it := WrapSlice(vals)
	got := []string{}
	for it.HasNext() {
		v, ok := it.Next()
		assert.True(t, ok)
		got = append(got, v)
	}
	assert.Equal(t, vals, got)
	_, ok := it.Next()
	assert.False(t, ok)
}

func TestWrapSliceReset(t *testing.T) {
	it := WrapSlice([]int{5, 6})
	v, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	rs, ok := it.(golibs.Reseter)
	assert.True(t, ok)
	assert.Nil(t, rs.Reset())

	// the iterator walks from the head again
	v, ok = it.Next()
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	assert.Nil(t, it.Close())
	assert.False(t, it.HasNext())
}
