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
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExist is returned when a new object cannot be created because another
	// object with the same identifier already exists
	ErrExist = errors.New("the object already exists")

	// ErrNotExist is returned when the requested object is not found
	ErrNotExist = errors.New("the object doesn't exist")

	// ErrInvalid indicates that the operation cannot be performed due to an
	// improper value or state of the request
	ErrInvalid = errors.New("invalid value or state")

	// ErrNotAuthorized indicates that the requester has no privileges to
	// perform the operation
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInternal indicates an internal unhandled situation
	ErrInternal = errors.New("internal error")

	// ErrDataLoss indicates an unrecoverable data loss or corruption
	ErrDataLoss = errors.New("unrecoverable data loss or corruption")

	// ErrExhausted indicates that a limit or a resource capacity is reached
	ErrExhausted = errors.New("the resource is exhausted")

	// ErrUnimplemented indicates that the operation is known, but not
	// implemented yet
	ErrUnimplemented = errors.New("not implemented")

	// ErrConflict indicates that the operation cannot be performed due to the
	// object state conflict. For example a concurrent update of an object
	// happened with the optimistic lock contention
	ErrConflict = errors.New("the operation is conflicting")

	// ErrCanceled indicates that the operation is interrupted (normally by the
	// context close)
	ErrCanceled = errors.New("the operation is canceled")

	// ErrCommunication indicates a communication problem with a remote
	// counterparty
	ErrCommunication = errors.New("communication error")

	// ErrClosed indicates that the object is already closed and it cannot be
	// used anymore
	ErrClosed = errors.New("the object is closed")
)

// Is reports whether any error in the err's tree matches the target. It is a
// convenience shortcut, so the package clients don't need to import the
// standard errors package together with this one.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// jsonErrorMarker surrounds the json payload embedded into an error message
// by EmbedObject
const jsonErrorMarker = "#json#"

// EmbedObject returns an error which wraps err and carries obj serialized to
// json in its message. The object may be recovered by ExtractObject on the
// other side of an API call. The function panics if obj or err is nil, or if
// err already contains an embedded object.
func EmbedObject(obj any, err error) error {
	if obj == nil {
		panic("EmbedObject(): obj must not be nil")
	}
	if err == nil {
		panic("EmbedObject(): err must not be nil")
	}
	if strings.Contains(err.Error(), jsonErrorMarker) {
		panic(fmt.Sprintf("EmbedObject(): the error %q already contains an embedded object", err))
	}
	buf, mErr := json.Marshal(obj)
	if mErr != nil {
		panic(fmt.Sprintf("EmbedObject(): could not marshal the object %v: %s", obj, mErr))
	}
	return fmt.Errorf("%w %s%s%s", err, jsonErrorMarker, string(buf), jsonErrorMarker)
}

// ExtractObject finds an object embedded by EmbedObject in the err message and
// unmarshals it into obj. It returns true if the object was found and decoded
// successfully.
func ExtractObject(err error, obj any) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	start := strings.Index(msg, jsonErrorMarker)
	if start < 0 {
		return false
	}
	end := strings.LastIndex(msg, jsonErrorMarker)
	if end == start {
		return false
	}
	return json.Unmarshal([]byte(msg[start+len(jsonErrorMarker):end]), obj) == nil
}
