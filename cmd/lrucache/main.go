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

package main

import (
	"fmt"
	"os"
	"syscall"

	context2 "github.com/solarisdb/lrucache/golibs/context"
	"github.com/solarisdb/lrucache/golibs/logging"
	"github.com/solarisdb/lrucache/golibs/logging/zaplog"
	"github.com/solarisdb/lrucache/pkg/runner"
	"github.com/solarisdb/lrucache/pkg/version"
	"github.com/spf13/cobra"
)

const defaultScript = "put 1 data1; put 2 data2; get 1; put 3 data3; get 2"

var (
	cfgFile     string
	logLevel    string
	scriptSrc   string
	secretsFile string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lrucache",
		Short:        "lrucache runs demo and load scenarios over the LRU cache library",
		Version:      version.BuildVersionString(),
		SilenceUsage: true,
		// the logs go to stderr, so the demo and report outputs stay alone on stdout
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetConfig(zaplog.NewConfigWith(os.Stderr))
			lvl, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logging.SetLevel(lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "the configuration file (.yaml or .json)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "the log level (error, warn, info, debug or trace)")
	root.PersistentFlags().StringVar(&secretsFile, "secrets", "", "the JSON file with the key-values applied over the config")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "execute the cache script statement by statement and print the outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := runner.BuildConfig(cfgFile, secretsFile)
			if err != nil {
				return err
			}
			ctx := context2.NewSignalsContext(os.Interrupt, syscall.SIGTERM)
			return runner.Demo(ctx, cfg, scriptSrc)
		},
	}
	demoCmd.Flags().StringVar(&scriptSrc, "script", defaultScript, "the script to execute")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run the concurrent stress against the selected cache flavor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := runner.BuildConfig(cfgFile, secretsFile)
			if err != nil {
				return err
			}
			ctx := context2.NewSignalsContext(os.Interrupt, syscall.SIGTERM)
			return runner.Bench(ctx, cfg)
		},
	}

	readThroughCmd := &cobra.Command{
		Use:   "readthrough",
		Short: "run the read-through workload over the configured storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := runner.BuildConfig(cfgFile, secretsFile)
			if err != nil {
				return err
			}
			ctx := context2.NewSignalsContext(os.Interrupt, syscall.SIGTERM)
			return runner.ReadThrough(ctx, cfg)
		},
	}

	root.AddCommand(demoCmd, benchCmd, readThroughCmd)
	return root
}
