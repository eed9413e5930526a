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
package ulidutils

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// New returns new ulid.ULID
func New() ulid.ULID {
	return ulid.Make()
}

// NewID returns new ulid.ULID in the string form. An ID generated in a later
// millisecond is lexicographically greater than any ID generated before, so the
// IDs may serve as the record versions
func NewID() string {
	return New().String()
}

// NewUUID returns new ulid.ULID converted to uuid.UUID
func NewUUID() uuid.UUID {
	return uuid.UUID(New())
}
