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

import (
	"unsafe"
)

// StringToByteArray casts the string v to []byte with no copying.
//
// NOTE! The string content stays behind the slice returned, so the caller
// must never modify the bytes.
func StringToByteArray(v string) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(v), len(v))
}

// ByteArrayToString casts the slice of bytes buf to a string with no copying.
//
// NOTE! The caller must keep the buf content unchanged while the string
// returned is in use.
func ByteArrayToString(buf []byte) string {
	if len(buf) == 0 {
		return ""
	}
	return unsafe.String(&buf[0], len(buf))
}
