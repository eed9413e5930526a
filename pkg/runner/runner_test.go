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
	"context"
	"math/rand"
	"testing"

	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewStorage(t *testing.T) {
	cfg := getDefaultConfig()
	s, err := newStorage(cfg)
	assert.Nil(t, err)
	assert.NotNil(t, s)

	cfg.Storage.Type = "buntdb"
	s, err = newStorage(cfg)
	assert.Nil(t, err)
	assert.NotNil(t, s)

	cfg.Storage.Type = "martian"
	_, err = newStorage(cfg)
	assert.True(t, errors.Is(err, errors.ErrInvalid))
}

func TestBenchOpUnknownMode(t *testing.T) {
	cfg := getDefaultConfig()
	cfg.Bench.Mode = "warp"
	_, _, err := benchOp(cfg)
	assert.True(t, errors.Is(err, errors.ErrInvalid))
}

func TestBenchOpCountsMisses(t *testing.T) {
	ctx := context.Background()
	for _, mode := range []string{"cache", "loading", "pinned"} {
		cfg := getDefaultConfig()
		cfg.Bench.Mode = mode
		op, missesF, err := benchOp(cfg)
		assert.Nil(t, err, mode)
		assert.Nil(t, op(ctx, "k1"), mode)
		assert.Nil(t, op(ctx, "k1"), mode)
		assert.Nil(t, op(ctx, "k2"), mode)
		assert.Equal(t, int64(2), missesF(), mode)
	}
}

func TestBench(t *testing.T) {
	cfg := getDefaultConfig()
	cfg.CacheCapacity = 10
	cfg.Bench = BenchConfig{Mode: "cache", Workers: 2, Requests: 200, Keys: 20, ValueSize: 8}
	assert.Nil(t, Bench(context.Background(), cfg))

	cfg.Bench.Mode = "loading"
	assert.Nil(t, Bench(context.Background(), cfg))
}

func TestBenchInvalidConfig(t *testing.T) {
	cfg := getDefaultConfig()
	cfg.Bench.Workers = 0
	err := Bench(context.Background(), cfg)
	assert.True(t, errors.Is(err, errors.ErrInvalid))
}

func TestReadThrough(t *testing.T) {
	cfg := getDefaultConfig()
	cfg.CacheCapacity = 10
	cfg.ReadThrough = ReadThroughConfig{Records: 100, Reads: 500}
	assert.Nil(t, ReadThrough(context.Background(), cfg))
}

func TestSkewedIdx(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	hot := 0
	for i := 0; i < 1000; i++ {
		idx := skewedIdx(rnd, 100)
		assert.True(t, idx >= 0 && idx < 100)
		if idx < 10 {
			hot++
		}
	}
	// ~91% of the picks land in the first tenth of the range
	assert.Greater(t, hot, 800)

	for i := 0; i < 10; i++ {
		assert.Equal(t, 0, skewedIdx(rnd, 1))
	}
}

func TestReadThroughUnknownStorage(t *testing.T) {
	cfg := getDefaultConfig()
	cfg.Storage.Type = "martian"
	err := ReadThrough(context.Background(), cfg)
	assert.True(t, errors.Is(err, errors.ErrInvalid))
}

func TestDemo(t *testing.T) {
	cfg := getDefaultConfig()
	cfg.CacheCapacity = 2
	src := `put 1 data1; put 2 data2; get 1; put 3 data3; get 2`
	assert.Nil(t, Demo(context.Background(), cfg, src))

	err := Demo(context.Background(), cfg, "plot 1 2")
	assert.NotNil(t, err)
}

func TestDemoCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := getDefaultConfig()
	err := Demo(ctx, cfg, "put 1 data1")
	assert.True(t, errors.Is(err, context.Canceled))
}
