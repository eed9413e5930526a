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

package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildConfigDefaults(t *testing.T) {
	cfg, err := BuildConfig("", "")
	assert.Nil(t, err)
	assert.Equal(t, getDefaultConfig(), cfg)
}

func TestBuildConfigFromFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "TestBuildConfigFromFile")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	fn := filepath.Join(dir, "cfg.yaml")
	assert.Nil(t, os.WriteFile(fn, []byte("CacheCapacity: 5\nStorage:\n  Type: buntdb\n"), 0644))

	cfg, err := BuildConfig(fn, "")
	assert.Nil(t, err)
	assert.Equal(t, 5, cfg.CacheCapacity)
	assert.Equal(t, "buntdb", cfg.Storage.Type)
	// the fields absent in the file keep their defaults
	assert.Equal(t, getDefaultConfig().Bench, cfg.Bench)
}

func TestBuildConfigFromEnv(t *testing.T) {
	t.Setenv("LRUCACHE_CACHECAPACITY", "42")
	t.Setenv("LRUCACHE_STORAGE_TYPE", "redis")
	t.Setenv("LRUCACHE_BENCH_WORKERS", "3")

	cfg, err := BuildConfig("", "")
	assert.Nil(t, err)
	assert.Equal(t, 42, cfg.CacheCapacity)
	assert.Equal(t, "redis", cfg.Storage.Type)
	assert.Equal(t, 3, cfg.Bench.Workers)
}

func TestBuildConfigNoFile(t *testing.T) {
	_, err := BuildConfig("/this/file/does/not/exist.yaml", "")
	assert.NotNil(t, err)
}

func TestBuildConfigSecrets(t *testing.T) {
	dir, err := os.MkdirTemp("", "TestBuildConfigSecrets")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	fn := filepath.Join(dir, "secrets")
	assert.Nil(t, os.WriteFile(fn, []byte(`{"STORAGE_REDISPASSWORD": "s3cr3t"}`), 0600))

	cfg, err := BuildConfig("", fn)
	assert.Nil(t, err)
	assert.Equal(t, "s3cr3t", cfg.Storage.RedisPassword)

	_, err = BuildConfig("", filepath.Join(dir, "lost"))
	assert.NotNil(t, err)
}

func TestConfigString(t *testing.T) {
	cfg := getDefaultConfig()
	s := cfg.String()
	assert.Contains(t, s, "CacheCapacity")
	assert.Contains(t, s, "inmem")
}
