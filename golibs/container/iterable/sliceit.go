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

type sliceIterator[V any] struct {
	vals []V
	idx  int
}

// WrapSlice wraps the slice vals into the Iterator[V] object. The iterator doesn't hold any
// extra resources, but Close() should be called anyway to follow the Iterator contract
func WrapSlice[V any](vals []V) Iterator[V] {
	return (Iterator[V])(&sliceIterator[V]{vals, 0})
}

func (si *sliceIterator[V]) HasNext() bool {
	return si.idx < len(si.vals)
}

func (si *sliceIterator[V]) Next() (V, bool) {
	if si.idx < len(si.vals) {
		i := si.idx
		si.idx++
		return si.vals[i], true
	}
	return *new(V), false
}

func (si *sliceIterator[V]) Reset() error {
	si.idx = 0
	return nil
}

func (si *sliceIterator[V]) Close() error {
	si.vals = nil
	si.idx = 0
	return nil
}
