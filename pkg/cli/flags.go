/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cli is the command line entry shared by the heartbeat binaries.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/carverauto/heartbeat/pkg/config"
	"github.com/carverauto/heartbeat/pkg/models"
)

// verbosity is a counting flag: a bare -v adds one, -v=N sets N.
type verbosity struct {
	n int
}

func (v *verbosity) String() string {
	if v == nil {
		return strconv.Itoa(config.DefaultVerbosity)
	}

	return strconv.Itoa(v.n)
}

func (v *verbosity) Set(s string) error {
	if s == "true" {
		v.n++
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid verbosity %q: %w", s, err)
	}

	v.n = n

	return nil
}

func (*verbosity) IsBoolFlag() bool { return true }

type flags struct {
	url               string
	collectionSeconds int
	postSeconds       int
	verbose           verbosity
	diskPath          string
	configPath        string
	timeout           time.Duration
	attempts          int
	listen            string
	grpcListen        string
}

func newFlagSet(metric models.Metric, out io.Writer) (*flag.FlagSet, *flags) {
	fs := flag.NewFlagSet("heartbeat-"+metric.Key, flag.ContinueOnError)
	fs.SetOutput(out)

	f := &flags{verbose: verbosity{n: config.DefaultVerbosity}}

	fs.StringVar(&f.url, "url", "", "URL of the MonSpark Heartbeat Monitor (required)")
	fs.StringVar(&f.url, "u", "", "shorthand for -url")
	fs.IntVar(&f.collectionSeconds, "collection-seconds", int(config.DefaultCollectionInterval/time.Second),
		fmt.Sprintf("seconds between %s usage samples", metric.Noun))
	fs.IntVar(&f.collectionSeconds, "c", int(config.DefaultCollectionInterval/time.Second), "shorthand for -collection-seconds")
	fs.IntVar(&f.postSeconds, "post-seconds", int(config.DefaultPostInterval/time.Second),
		"seconds between reports to the MonSpark Heartbeat Monitor")
	fs.IntVar(&f.postSeconds, "p", int(config.DefaultPostInterval/time.Second), "shorthand for -post-seconds")
	fs.Var(&f.verbose, "verbose", "verbosity (0: only errors, 1: errors and posts, 2: all output); -v adds one")
	fs.Var(&f.verbose, "v", "shorthand for -verbose")

	if metric.Key == models.MetricDisk.Key {
		fs.StringVar(&f.diskPath, "disk-path", config.DefaultDiskPath, "path of the disk to monitor")
		fs.StringVar(&f.diskPath, "d", config.DefaultDiskPath, "shorthand for -disk-path")
	}

	fs.StringVar(&f.configPath, "config", "", "optional JSON or YAML config file; flags override it")
	fs.DurationVar(&f.timeout, "timeout", config.DefaultTimeout, "timeout of a single delivery attempt")
	fs.IntVar(&f.attempts, "attempts", config.DefaultAttempts, "delivery attempts per report")
	fs.StringVar(&f.listen, "listen", "", "status/metrics HTTP listen address, empty to disable")
	fs.StringVar(&f.grpcListen, "grpc-listen", "", "gRPC health listen address, empty to disable")

	return fs, f
}

// Parse builds a validated configuration for metric from command line
// arguments. Values from -config are loaded first and explicitly set flags
// override them.
func Parse(metric string, args []string, out io.Writer) (*config.AgentConfig, error) {
	m, ok := models.KnownMetrics[metric]
	if !ok {
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownMetric, metric)
	}

	fs, f := newFlagSet(m, out)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %v", errUnexpectedArgs, fs.Args())
	}

	cfg := &config.AgentConfig{}

	if f.configPath != "" {
		if err := config.LoadFile(f.configPath, cfg); err != nil {
			return nil, err
		}

		if cfg.Metric != "" && cfg.Metric != metric {
			return nil, fmt.Errorf("%w: %q", errMetricMismatch, cfg.Metric)
		}
	}

	cfg.Metric = metric

	if err := f.apply(fs, cfg, f.configPath == ""); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// apply copies flag values into cfg. Without a config file every flag
// applies; with one only flags given on the command line do.
func (f *flags) apply(fs *flag.FlagSet, cfg *config.AgentConfig, all bool) error {
	set := make(map[string]bool)

	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	given := func(names ...string) bool {
		if all {
			return true
		}

		for _, n := range names {
			if set[n] {
				return true
			}
		}

		return false
	}

	if given("url", "u") {
		cfg.URL = f.url
	}

	if given("collection-seconds", "c") {
		if f.collectionSeconds <= 0 {
			return fmt.Errorf("collection-seconds: %w", errInvalidSeconds)
		}

		cfg.CollectionInterval = config.Duration(time.Duration(f.collectionSeconds) * time.Second)
	}

	if given("post-seconds", "p") {
		if f.postSeconds <= 0 {
			return fmt.Errorf("post-seconds: %w", errInvalidSeconds)
		}

		cfg.PostInterval = config.Duration(time.Duration(f.postSeconds) * time.Second)
	}

	if given("verbose", "v") {
		n := f.verbose.n
		cfg.Verbose = &n
	}

	if cfg.Metric == models.MetricDisk.Key && given("disk-path", "d") {
		cfg.DiskPath = f.diskPath
	}

	if given("timeout") {
		cfg.Timeout = config.Duration(f.timeout)
	}

	if given("attempts") {
		cfg.Attempts = f.attempts
	}

	if given("listen") {
		cfg.ListenAddr = f.listen
	}

	if given("grpc-listen") {
		cfg.GRPCListenAddr = f.grpcListen
	}

	return nil
}
