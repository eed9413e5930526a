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

// Iterator allows to move over an ordered collection. The caller walks the
// elements by the HasNext()-Next() calls and releases the iterator resources
// by Close() when it is done.
type Iterator[V any] interface {
	// HasNext reports whether the iterator has an element to be returned by Next()
	HasNext() bool

	// Next returns the current element and shifts the iterator to the following
	// one. The second result is false when there is nothing to return, the first
	// one is the default value of V then.
	//
	// Next() may disagree with the preceding HasNext() call if the element the
	// iterator points to is removed between the two calls. HasNext() reports
	// true then, but Next() has nothing to return anymore.
	Next() (V, bool)

	// Close releases the iterator resources. The iterator must not be used after
	// the call. Every iterator must be closed, skipping the call may cause a
	// memory leak.
	Close() error
}

// EmptyIterator is the Iterator over nothing, it never has an element to return
type EmptyIterator[V any] struct{}

var _ Iterator[int] = (*EmptyIterator[int])(nil)

func (ei *EmptyIterator[V]) HasNext() bool {
	return false
}

func (ei *EmptyIterator[V]) Next() (V, bool) {
	var v V
	return v, false
}

func (ei *EmptyIterator[V]) Close() error {
	return nil
}
