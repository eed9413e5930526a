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
package files

import (
	"fmt"
	"os"
)

// EnsureDirExists creates the dir with all its parents if it doesn't exist yet
func EnsureDirExists(dir string) error {
	fi, err := os.Stat(dir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(dir, 0740)
	} else if err == nil && !fi.IsDir() {
		err = fmt.Errorf("%s exists, but it is not a directory", dir)
	}

	if err != nil {
		return fmt.Errorf("could not ensure the dir %s exists: %w", dir, err)
	}
	return nil
}
