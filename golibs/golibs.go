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
package golibs

type (
	// Reseter is the interface that wraps the Reset method.
	//
	// The objects which may be turned back to their initial state implement
	// the interface. The iterators, for instance, support it to be walked
	// through several times.
	Reseter interface {
		// Reset turns the object back to its initial state. The error, if
		// any, reports why the object could not be reset.
		Reset() error
	}
)
