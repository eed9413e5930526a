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
sss stays for Simple Storage Service. The package defines an interface to the BLOB stores like AWS S3
*/
package sss

import (
	"context"
	"io"
	"strings"
)

// Storage interface provides access to a Simple Storage service. "Simple"
// means the consistency model of the store may be relaxed down to "eventual".
// The storage persists values (BLOBs, maybe big ones), every value is
// addressed by its key.
//
// A key looks like a path in a file system:
//   - every key starts from the '/' delimiter
//   - a key cannot end on the '/' delimiter
//   - the key prefix, which starts from '/' and ends on '/', is called path
//   - the key is a concatenation <path><valId>, the valId identifies the
//     value within the path and it cannot contain delimiters
//
// Examples:
// "/abc" - the key with path="/" and valId="abc"
// "/abc/def/ms.js" - the key with path="/abc/def/" and valId="ms.js"
// "abc.js", "", "/", "/abc/" - are not keys
type Storage interface {
	// Get allows to read a value by its key. If key is not found the
	// errors.ErrNotExist should be returned
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Put allows to store value represented by reader r by the key
	Put(ctx context.Context, key string, r io.Reader) error

	// List returns the keys and the sub-paths (the parts of the existing
	// keys, which are paths themselves) found directly under the path
	// provided.
	//
	// Example:
	// for the keys list: "/abc", "/def/abc", "/def/aa1"
	// List("/") -> "/abc", "/def/"
	// List("/def/") -> "/def/abc", "/def/aa1"
	List(ctx context.Context, path string) ([]string, error)

	// Delete allows to delete a value by its key. It returns
	// errors.ErrNotExist if the key is not found, but some implementations
	// (S3) don't report the absence and return no error
	Delete(ctx context.Context, key string) error
}

// IsKeyValid reports whether the key has the <path><valId> form
func IsKeyValid(key string) bool {
	idx := strings.LastIndex(key, "/")
	if idx < 0 || strings.TrimSpace(key[idx+1:]) == "" {
		return false
	}
	return IsPathValid(key[:idx+1])
}

// IsPathValid reports whether the path starts and ends on the '/' delimiter
// and has no empty elements in between
func IsPathValid(path string) bool {
	if path == "" || path[0] != '/' || path[len(path)-1] != '/' {
		return false
	}
	return !strings.Contains(path, "//")
}
