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
Package cast contains the utility functions for the values transformations.
The Ptr() and Value() functions turn scalars to the pointers and back. This
is useful for the structures with the optional fields (unmarshalled JSON
objects, for instance), where the nil pointer signals the value was not
provided. The StringToByteArray() and ByteArrayToString() functions cast a
string to a byte slice and back with no extra memory allocations.
*/
package cast
