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
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	goredis "github.com/go-redis/redis/v8"
	"github.com/logrange/linker"
	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/kvs"
	"github.com/solarisdb/lrucache/golibs/kvs/buntdb"
	"github.com/solarisdb/lrucache/golibs/kvs/inmem"
	"github.com/solarisdb/lrucache/golibs/kvs/redis"
	"github.com/solarisdb/lrucache/golibs/logging"
	ssinmem "github.com/solarisdb/lrucache/golibs/sss/inmem"
	"github.com/solarisdb/lrucache/golibs/strutil"
	"github.com/solarisdb/lrucache/pkg/cache"
	"github.com/solarisdb/lrucache/pkg/cached"
	"github.com/solarisdb/lrucache/pkg/script"
)

// Demo executes the script src statement by statement against a new
// cache.Cache[string, string] with the cfg.CacheCapacity capacity. Every
// statement is echoed to the stdout, the get and len outputs are printed
// right after their statements.
func Demo(ctx context.Context, cfg *Config, src string) error {
	c, err := cache.New[string, string](cfg.CacheCapacity, nil)
	if err != nil {
		return err
	}
	sc, err := script.Parse(src)
	if err != nil {
		return err
	}
	for _, st := range sc.Statements {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Printf("> %s\n", st)
		out, ok, err := script.ExecStatement(st, c)
		if err != nil {
			return err
		}
		if ok {
			fmt.Println(out)
		}
	}
	return nil
}

// Bench runs the concurrent stress against the selected cache flavor. Every
// worker performs cfg.Bench.Requests operations over the random keys from the
// cfg.Bench.Keys key space.
func Bench(ctx context.Context, cfg *Config) error {
	log := logging.NewLogger("runner.bench")
	log.Infof("starting bench: %s", spew.Sprint(cfg.Bench))
	defer log.Infof("bench is over")

	bc := cfg.Bench
	if bc.Workers <= 0 || bc.Requests < 0 || bc.Keys <= 0 || bc.ValueSize < 0 {
		return fmt.Errorf("invalid bench config %s: %w", spew.Sprint(bc), errors.ErrInvalid)
	}
	op, missesF, err := benchOp(cfg)
	if err != nil {
		return err
	}

	var (
		ops        int64
		latencySum int64
		latencyMin int64 = 1<<63 - 1
		latencyMax int64
		wg         sync.WaitGroup
	)

	start := time.Now()
	for i := 0; i < bc.Workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))
			for j := 0; j < bc.Requests; j++ {
				if ctx.Err() != nil {
					return
				}
				key := fmt.Sprintf("key-%d", rnd.Intn(bc.Keys))
				opStart := time.Now()
				if err := op(ctx, key); err != nil {
					log.Warnf("the worker stops on the error: %v", err)
					return
				}
				lat := int64(time.Since(opStart))
				atomic.AddInt64(&ops, 1)
				atomic.AddInt64(&latencySum, lat)
				for {
					old := atomic.LoadInt64(&latencyMin)
					if lat >= old || atomic.CompareAndSwapInt64(&latencyMin, old, lat) {
						break
					}
				}
				for {
					old := atomic.LoadInt64(&latencyMax)
					if lat <= old || atomic.CompareAndSwapInt64(&latencyMax, old, lat) {
						break
					}
				}
			}
		}(time.Now().UnixNano() + int64(i)*12357)
	}
	wg.Wait()
	dur := time.Since(start)

	total := atomic.LoadInt64(&ops)
	fmt.Println("=== Bench results ===")
	fmt.Printf("Mode:         %s\n", bc.Mode)
	fmt.Printf("Workers:      %d\n", bc.Workers)
	fmt.Printf("Duration:     %v\n", dur.Round(time.Millisecond))
	fmt.Printf("Total ops:    %d\n", total)
	if total > 0 {
		misses := missesF()
		fmt.Printf("Misses:       %d (%.2f%%)\n", misses, float64(misses)/float64(total)*100)
		fmt.Printf("Ops/sec:      %.2f\n", float64(total)/dur.Seconds())
		fmt.Printf("Avg latency:  %v\n", time.Duration(atomic.LoadInt64(&latencySum)/total))
		fmt.Printf("Min latency:  %v\n", time.Duration(atomic.LoadInt64(&latencyMin)))
		fmt.Printf("Max latency:  %v\n", time.Duration(atomic.LoadInt64(&latencyMax)))
	}
	return nil
}

// benchOp builds the single operation for the configured bench mode. The
// second result reports how many operations missed the cache and had to
// build their values.
func benchOp(cfg *Config) (func(ctx context.Context, key string) error, func() int64, error) {
	bc := cfg.Bench
	var misses int64
	missesF := func() int64 { return atomic.LoadInt64(&misses) }
	switch bc.Mode {
	case "cache":
		c, err := cache.New[string, string](cfg.CacheCapacity, nil)
		if err != nil {
			return nil, nil, err
		}
		return func(_ context.Context, key string) error {
			if _, err := c.Get(key); err == nil {
				return nil
			}
			atomic.AddInt64(&misses, 1)
			c.Put(key, strutil.RandomString(bc.ValueSize))
			return nil
		}, missesF, nil
	case "loading":
		lc, err := cache.NewLoading(cfg.CacheCapacity, func(_ context.Context, key string) (string, error) {
			atomic.AddInt64(&misses, 1)
			return strutil.RandomString(bc.ValueSize), nil
		}, nil)
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context, key string) error {
			_, err := lc.GetOrLoad(ctx, key)
			return err
		}, missesF, nil
	case "pinned":
		pc, err := cache.NewPinned(cfg.CacheCapacity, func(_ context.Context, key string) (string, error) {
			atomic.AddInt64(&misses, 1)
			return strutil.RandomString(bc.ValueSize), nil
		}, nil)
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context, key string) error {
			pnd, err := pc.Acquire(ctx, key)
			if err != nil {
				return err
			}
			pc.Release(&pnd)
			return nil
		}, missesF, nil
	default:
		return nil, nil, fmt.Errorf("unknown bench mode %q: %w", bc.Mode, errors.ErrInvalid)
	}
}

// ReadThrough builds the kvs storage by the cfg.Storage config, wraps it with
// the read-through cache and runs cfg.ReadThrough.Reads reads over
// cfg.ReadThrough.Records records. 10% of the records take 90% of the reads,
// so the cache keeps the hot subset. The same workload is repeated against
// the blob storage after that.
func ReadThrough(ctx context.Context, cfg *Config) error {
	log := logging.NewLogger("runner.readThrough")
	log.Infof("starting the read-through run")
	log.Infof(spew.Sprint(cfg))
	defer log.Infof("the read-through run is over")

	rtc := cfg.ReadThrough
	if rtc.Records <= 0 || rtc.Reads < 0 {
		return fmt.Errorf("invalid read-through config %s: %w", spew.Sprint(rtc), errors.ErrInvalid)
	}
	strg, err := newStorage(cfg)
	if err != nil {
		return err
	}
	cs, err := cached.NewStorage(strg, cfg.CacheCapacity)
	if err != nil {
		return err
	}

	inj := linker.New()
	inj.Register(linker.Component{Name: "", Value: cs})
	inj.Init(ctx)
	defer inj.Shutdown()

	recs := make([]kvs.Record, 0, 100)
	for i := 0; i < rtc.Records; i++ {
		recs = append(recs, kvs.Record{Key: recordKey(i), Value: []byte(strutil.RandomString(64))})
		if len(recs) == cap(recs) || i == rtc.Records-1 {
			if err := cs.PutMany(ctx, recs); err != nil {
				return fmt.Errorf("could not seed the records: %w", err)
			}
			recs = recs[:0]
		}
	}
	log.Infof("seeded %d records", rtc.Records)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now()
	for i := 0; i < rtc.Reads; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := recordKey(skewedIdx(rnd, rtc.Records))
		if _, err := cs.Get(ctx, key); err != nil {
			return fmt.Errorf("could not read the record %s: %w", key, err)
		}
	}
	dur := time.Since(start)

	st := cs.Stats()
	fmt.Println("=== Read-through results ===")
	fmt.Printf("Storage:       %s\n", cfg.Storage.Type)
	fmt.Printf("Records:       %d\n", rtc.Records)
	fmt.Printf("Cache size:    %d\n", cfg.CacheCapacity)
	fmt.Printf("Reads:         %d\n", st.Gets)
	if st.Gets > 0 {
		fmt.Printf("Cache hits:    %d (%.2f%%)\n", st.Gets-st.Loads, float64(st.Gets-st.Loads)/float64(st.Gets)*100)
		fmt.Printf("Cache misses:  %d\n", st.Loads)
		fmt.Printf("Reads/sec:     %.2f\n", float64(rtc.Reads)/dur.Seconds())
	}
	return blobReadThrough(ctx, cfg, log)
}

// blobReadThrough runs the same skewed workload against the in-memory blob
// storage wrapped with the cache of the downloaded values
func blobReadThrough(ctx context.Context, cfg *Config, log logging.Logger) error {
	rtc := cfg.ReadThrough
	bs, err := cached.NewBlobs(ssinmem.NewStorage(), cfg.CacheCapacity)
	if err != nil {
		return err
	}
	for i := 0; i < rtc.Records; i++ {
		if err := bs.Put(ctx, blobKey(i), []byte(strutil.RandomString(512))); err != nil {
			return fmt.Errorf("could not seed the blobs: %w", err)
		}
	}
	log.Infof("seeded %d blobs", rtc.Records)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now()
	for i := 0; i < rtc.Reads; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := blobKey(skewedIdx(rnd, rtc.Records))
		if _, err := bs.Get(ctx, key); err != nil {
			return fmt.Errorf("could not read the blob %s: %w", key, err)
		}
	}
	dur := time.Since(start)

	st := bs.Stats()
	fmt.Println("=== Blob read-through results ===")
	fmt.Printf("Blobs:         %d\n", rtc.Records)
	fmt.Printf("Cache size:    %d\n", cfg.CacheCapacity)
	fmt.Printf("Reads:         %d\n", st.Gets)
	if st.Gets > 0 {
		fmt.Printf("Cache hits:    %d (%.2f%%)\n", st.Gets-st.Loads, float64(st.Gets-st.Loads)/float64(st.Gets)*100)
		fmt.Printf("Cache misses:  %d\n", st.Loads)
		fmt.Printf("Reads/sec:     %.2f\n", float64(rtc.Reads)/dur.Seconds())
	}
	return nil
}

// newStorage builds the kvs.Storage selected by cfg.Storage.Type
func newStorage(cfg *Config) (kvs.Storage, error) {
	switch cfg.Storage.Type {
	case "inmem":
		return inmem.New(), nil
	case "buntdb":
		return buntdb.NewStorage(buntdb.Config{DBFilePath: cfg.Storage.DBFilePath}), nil
	case "redis":
		return redis.New(&goredis.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
		}), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q: %w", cfg.Storage.Type, errors.ErrInvalid)
	}
}

// skewedIdx returns a random index from [0, n). 90% of the results fall into
// the first tenth of the range, so the picks simulate a hot working set.
func skewedIdx(rnd *rand.Rand, n int) int {
	hot := n / 10
	if hot == 0 {
		hot = 1
	}
	if rnd.Float64() < 0.9 {
		return rnd.Intn(hot)
	}
	return rnd.Intn(n)
}

func recordKey(i int) string {
	return fmt.Sprintf("/records/rec-%06d", i)
}

func blobKey(i int) string {
	return fmt.Sprintf("/blobs/blob-%06d", i)
}
