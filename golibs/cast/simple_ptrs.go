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
package cast

// Ptr returns pointer to the value provided (v)
func Ptr[T any](v T) *T {
	return &v
}

// Value turns the pointer v to the value it points to, or returns def if v is nil
func Value[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
