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
	"encoding/json"
	"fmt"

	"github.com/solarisdb/lrucache/golibs/config"
	"github.com/solarisdb/lrucache/golibs/logging"
)

type (
	// Config defines the lrucache runner configuration
	Config struct {
		// CacheCapacity is the capacity of the caches the runner builds
		CacheCapacity int
		// Storage configures the persistent layer for the read-through run
		Storage StorageConfig
		// Bench configures the concurrent stress run
		Bench BenchConfig
		// ReadThrough configures the read-through run
		ReadThrough ReadThroughConfig
	}

	// StorageConfig selects and tunes the kvs.Storage implementation
	StorageConfig struct {
		// Type is one of the "inmem", "buntdb" or "redis"
		Type string
		// DBFilePath is the BuntDB database file. The empty value keeps
		// the data in memory. Used with Type="buntdb"
		DBFilePath string
		// RedisAddr is the address of the Redis server. Used with Type="redis"
		RedisAddr string
		// RedisPassword is the password for the Redis server, may be empty
		RedisPassword string
	}

	// BenchConfig tunes the concurrent stress run
	BenchConfig struct {
		// Mode selects the cache flavor to stress: "cache", "loading" or "pinned"
		Mode string
		// Workers is the number of the concurrent workers
		Workers int
		// Requests is how many operations every worker performs
		Requests int
		// Keys is the size of the key space the workers walk over
		Keys int
		// ValueSize is the length of the generated values
		ValueSize int
	}

	// ReadThroughConfig tunes the read-through run
	ReadThroughConfig struct {
		// Records is how many records are put into the storage before the run
		Records int
		// Reads is how many reads the run performs
		Reads int
	}
)

// getDefaultConfig returns the default runner config
func getDefaultConfig() *Config {
	return &Config{
		CacheCapacity: 1000,
		Storage: StorageConfig{
			Type: "inmem",
		},
		Bench: BenchConfig{
			Mode:      "cache",
			Workers:   8,
			Requests:  100000,
			Keys:      10000,
			ValueSize: 64,
		},
		ReadThrough: ReadThroughConfig{
			Records: 10000,
			Reads:   100000,
		},
	}
}

// BuildConfig builds the effective config from the defaults, the file cfgFile
// (when provided), the environment variables and the secrets file secretsFile
// (when provided), in that order
func BuildConfig(cfgFile, secretsFile string) (*Config, error) {
	log := logging.NewLogger("lrucache.ConfigBuilder")
	e := config.NewEnricher(*getDefaultConfig())
	if cfgFile != "" {
		log.Infof("trying to build config. cfgFile=%s", cfgFile)
		fe := config.NewEnricher(Config{})
		err := fe.LoadFromFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("could not read data from the file %s: %w", cfgFile, err)
		}
		// overwrite default
		_ = e.ApplyOther(fe)
	}
	_ = e.ApplyEnvVariables("LRUCACHE", "_")
	if secretsFile != "" {
		log.Infof("applying secrets from %s", secretsFile)
		if err := config.LoadJSONAndApply(e, secretsFile); err != nil {
			return nil, fmt.Errorf("could not apply the secrets file %s: %w", secretsFile, err)
		}
	}
	cfg := e.Value()
	return &cfg, nil
}

// String implements fmt.Stringify interface in a pretty console form
func (c *Config) String() string {
	b, _ := json.MarshalIndent(*c, "", "  ")
	return string(b)
}
