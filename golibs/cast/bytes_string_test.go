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
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestStringToByteArray(t *testing.T) {
	assert.Nil(t, StringToByteArray(""))
	assert.Equal(t, []byte("abc"), StringToByteArray("abc"))
}

func TestByteArrayToString(t *testing.T) {
	assert.Equal(t, "", ByteArrayToString(nil))
	assert.Equal(t, "", ByteArrayToString([]byte{}))
	assert.Equal(t, "abc", ByteArrayToString([]byte("abc")))
}

func TestStringBytesRoundTrip(t *testing.T) {
	s := "la la la"
	assert.Equal(t, s, ByteArrayToString(StringToByteArray(s)))
}
