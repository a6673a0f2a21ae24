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

package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/carverauto/heartbeat/pkg/agent"
	"github.com/carverauto/heartbeat/pkg/api"
	"github.com/carverauto/heartbeat/pkg/config"
	"github.com/carverauto/heartbeat/pkg/lifecycle"
	"github.com/carverauto/heartbeat/pkg/logger"
	"github.com/carverauto/heartbeat/pkg/models"
	"github.com/carverauto/heartbeat/pkg/observability"
	"github.com/carverauto/heartbeat/pkg/publisher"
	"github.com/carverauto/heartbeat/pkg/sampler"
)

// Run parses args and runs the agent for metric until it is interrupted.
// A graceful shutdown returns nil.
func Run(ctx context.Context, metric string, args []string) error {
	cfg, err := Parse(metric, args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}

	if err != nil {
		return err
	}

	log := logger.NewStdout(logger.Level(cfg.Verbosity()))

	opts, err := build(cfg, log, sampler.DefaultRegistry())
	if err != nil {
		return err
	}

	return lifecycle.RunServer(ctx, opts)
}

// build wires a validated configuration into runnable components.
func build(cfg *config.AgentConfig, log *logger.Logger, registry sampler.Registry) (*lifecycle.ServerOptions, error) {
	metric := models.KnownMetrics[cfg.Metric]

	source, err := registry.Get(cfg.Metric, sampler.Options{DiskPath: cfg.DiskPath})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s source: %w", metric.Noun, err)
	}

	pub := publisher.New(publisher.Config{
		URL:      cfg.URL,
		Metric:   metric,
		Attempts: cfg.Attempts,
		Timeout:  time.Duration(cfg.Timeout),
		Headers:  cfg.Headers,
	}, log)

	recorder := observability.New(metric)

	ag, err := agent.New(agent.Config{
		CollectionInterval: time.Duration(cfg.CollectionInterval),
		PostInterval:       time.Duration(cfg.PostInterval),
	}, source, pub, agent.WithLogger(log), agent.WithRecorder(recorder))
	if err != nil {
		return nil, err
	}

	opts := &lifecycle.ServerOptions{
		ServiceName:    cfg.ServiceName,
		Service:        ag,
		GRPCListenAddr: cfg.GRPCListenAddr,
		Log:            log,
	}

	if cfg.ListenAddr != "" {
		opts.StatusServer = api.NewAPIServer(cfg.ServiceName, ag,
			api.WithLogger(log),
			api.WithMetricsHandler(recorder.Handler()))
		opts.StatusListenAddr = cfg.ListenAddr
	}

	return opts, nil
}
