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

package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatement(t *testing.T) {
	s, err := Parse("put k1 'some value'")
	assert.Nil(t, err)
	assert.Len(t, s.Statements, 1)
	assert.Equal(t, &Put{Key: "k1", Value: "some value"}, s.Statements[0].Put)

	s, err = Parse("get k1")
	assert.Nil(t, err)
	assert.Equal(t, &Get{Key: "k1"}, s.Statements[0].Get)

	s, err = Parse("erase 12")
	assert.Nil(t, err)
	assert.Equal(t, &Erase{Key: "12"}, s.Statements[0].Erase)

	s, err = Parse("resize 42")
	assert.Nil(t, err)
	assert.Equal(t, &Resize{Capacity: 42}, s.Statements[0].Resize)

	s, err = Parse("len")
	assert.Nil(t, err)
	assert.True(t, s.Statements[0].Len)
}

func TestParseScript(t *testing.T) {
	s, err := Parse("put 1 data1; put 2 data2; get 1; put 3 data3; get 2")
	assert.Nil(t, err)
	assert.Len(t, s.Statements, 5)
	assert.Equal(t, &Put{Key: "1", Value: "data1"}, s.Statements[0].Put)
	assert.Equal(t, &Put{Key: "2", Value: "data2"}, s.Statements[1].Put)
	assert.Equal(t, &Get{Key: "1"}, s.Statements[2].Get)
	assert.Equal(t, &Put{Key: "3", Value: "data3"}, s.Statements[3].Put)
	assert.Equal(t, &Get{Key: "2"}, s.Statements[4].Get)
}

func TestParseTrailingSeparator(t *testing.T) {
	s, err := Parse("put a b; get a;")
	assert.Nil(t, err)
	assert.Len(t, s.Statements, 2)

	s, err = Parse("len ; ")
	assert.Nil(t, err)
	assert.Len(t, s.Statements, 1)
}

func TestParseEmpty(t *testing.T) {
	s, err := Parse("")
	assert.Nil(t, err)
	assert.Len(t, s.Statements, 0)

	s, err = Parse("   ;  ")
	assert.Nil(t, err)
	assert.Len(t, s.Statements, 0)
}

func TestParseCaseInsensitive(t *testing.T) {
	s, err := Parse("PUT Key vaLue; Get Key; LEN")
	assert.Nil(t, err)
	assert.Len(t, s.Statements, 3)
	assert.Equal(t, &Put{Key: "Key", Value: "vaLue"}, s.Statements[0].Put)
	assert.Equal(t, &Get{Key: "Key"}, s.Statements[1].Get)
	assert.True(t, s.Statements[2].Len)
}

func TestParseQuoted(t *testing.T) {
	s, err := Parse(`put "some key" 'v1 v2'; get "some key"`)
	assert.Nil(t, err)
	assert.Equal(t, &Put{Key: "some key", Value: "v1 v2"}, s.Statements[0].Put)
	assert.Equal(t, &Get{Key: "some key"}, s.Statements[1].Get)
}

func TestParseBad(t *testing.T) {
	testBad(t, "put")
	testBad(t, "put k")
	testBad(t, "get")
	testBad(t, "get k v")
	testBad(t, "erase")
	testBad(t, "resize")
	testBad(t, "resize many")
	testBad(t, "weird 1")
	testBad(t, "put k v get k")
}

func TestStatementString(t *testing.T) {
	for _, src := range []string{
		"put k v; get k; erase k; resize 10; len",
		"put 1 data1; get 1",
	} {
		s, err := Parse(src)
		assert.Nil(t, err)
		assert.Equal(t, src, s.String())
	}
}

func testBad(t *testing.T, src string) {
	_, err := Parse(src)
	assert.NotNil(t, err)
}
