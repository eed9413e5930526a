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

/*
Package cache contains the containers with the limited size capacity and the LRU
(Least Recently Used) eviction discipline. The containers use golang generics, so
they can be instantiated for different key and value types.

The package offers three flavors of the container:

  - Cache is the basic key-value container. The values are stored and retrieved
    explicitly via Put and Get calls, the least recently used values are evicted
    as soon as the cache exceeds its capacity.
  - LoadingCache populates the missing values itself via the loader function
    provided at the cache creation. Concurrent requests for the same missing key
    are collapsed into the one loader call.
  - PinnedCache allows to borrow the values from the cache and guarantees that
    a borrowed value will not be evicted until it is released by all borrowers.

All the containers are safe for the concurrent use.
*/
package cache
