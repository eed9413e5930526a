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
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/solarisdb/lrucache/golibs/errors"
)

// LoadJSONAndApply reads the key-value pairs from the JSON file by the path and
// applies them to the enricher e the same way the ApplyEnvVariables does, but with
// no prefix. The function is intended for loading the secrets files.
//
// For the file content {"DB_PASSWORD": "123456"} and the structure
//
//	type Config struct {
//		DB struct {
//			Password string
//		}
//	}
//
// the call LoadJSONAndApply(e, path) sets cfg.DB.Password to "123456".
func LoadJSONAndApply[T any](e Enricher[T], path string) error {
	if path == "" {
		return fmt.Errorf("LoadJSONAndApply() is called with the empty path: %w", errors.ErrInvalid)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read the file %s: %w", path, err)
	}
	keyValues := map[string]string{}
	if err = json.Unmarshal(buf, &keyValues); err != nil {
		return fmt.Errorf("could not unmarshal the JSON file %s: %w", path, err)
	}
	e.ApplyKeyValues("", "_", keyValues)
	return nil
}
