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
	"fmt"
	"strconv"

	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/pkg/cache"
)

// NotFound is printed by the get statement when the key is not in the cache
const NotFound = "not found"

// Exec runs the script sc against the cache c. It returns the output lines
// produced by the get and len statements in the script order. The execution
// stops on the first failed statement.
func Exec(sc *Script, c *cache.Cache[string, string]) ([]string, error) {
	res := []string{}
	for _, st := range sc.Statements {
		out, ok, err := ExecStatement(st, c)
		if err != nil {
			return res, err
		}
		if ok {
			res = append(res, out)
		}
	}
	return res, nil
}

// ExecStatement applies the statement st to the cache c. It returns the
// printable result of the statement and whether the statement produces
// any output at all. The cache miss is not an error, the get statement
// reports it as the NotFound output.
func ExecStatement(st *Statement, c *cache.Cache[string, string]) (string, bool, error) {
	switch {
	case st.Put != nil:
		c.Put(st.Put.Key, st.Put.Value)
	case st.Get != nil:
		v, err := c.Get(st.Get.Key)
		if err == nil {
			return v, true, nil
		}
		if errors.Is(err, errors.ErrNotExist) {
			return NotFound, true, nil
		}
		return "", false, err
	case st.Erase != nil:
		c.Remove(st.Erase.Key)
	case st.Resize != nil:
		if err := c.Resize(st.Resize.Capacity); err != nil {
			return "", false, fmt.Errorf("failed to execute %q: %w", st.String(), err)
		}
	case st.Len:
		return strconv.Itoa(c.Len()), true, nil
	}
	return "", false, nil
}
