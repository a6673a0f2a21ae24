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

// Package lifecycle runs an agent alongside its health and status servers
// and coordinates shutdown.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/carverauto/heartbeat/pkg/api"
	"github.com/carverauto/heartbeat/pkg/grpc"
	"github.com/carverauto/heartbeat/pkg/logger"
)

const (
	ShutdownTimeout = 10 * time.Second
)

var errServiceExited = errors.New("service exited unexpectedly")

// Service defines the interface that all services must implement.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// ServerOptions holds configuration for running a service.
type ServerOptions struct {
	ServiceName string
	Service     Service
	// GRPCListenAddr enables the gRPC health server when set.
	GRPCListenAddr string
	// StatusServer is started on StatusListenAddr when both are set.
	StatusServer     *api.APIServer
	StatusListenAddr string
	Log              *logger.Logger
	// Shutdown may be supplied to trigger shutdown from elsewhere.
	Shutdown *Shutdown
}

// Shutdown is a one-shot shutdown latch. Only the first trigger counts.
type Shutdown struct {
	once sync.Once
	done chan struct{}
	log  *logger.Logger
}

// NewShutdown returns an untriggered latch.
func NewShutdown(log *logger.Logger) *Shutdown {
	if log == nil {
		log = logger.Discard()
	}

	return &Shutdown{done: make(chan struct{}), log: log}
}

// Trigger starts shutdown and reports whether this call was the first.
func (s *Shutdown) Trigger(reason string) bool {
	fired := false

	s.once.Do(func() {
		s.log.Infof("Interrupted by %s, shutting down", reason)
		close(s.done)

		fired = true
	})

	return fired
}

// Done is closed once shutdown has been triggered.
func (s *Shutdown) Done() <-chan struct{} {
	return s.done
}

func signalName(sig os.Signal) string {
	switch sig {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	case syscall.SIGHUP:
		return "SIGHUP"
	default:
		return sig.String()
	}
}

// RunServer starts a service with the provided options and handles lifecycle.
// It returns nil after a signal or Shutdown trigger, ctx.Err() if ctx ends
// first, and the service or server error otherwise.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}

	shutdown := opts.Shutdown
	if shutdown == nil {
		shutdown = NewShutdown(log)
	}

	log.Debugf("*** Starting service %s", opts.ServiceName)

	errChan := make(chan error, 3)

	report := func(err error) {
		select {
		case errChan <- err:
		default:
			log.Errorf("Dropped error: %v", err)
		}
	}

	var grpcServer *grpc.Server

	if opts.GRPCListenAddr != "" {
		grpcServer = grpc.NewServer(opts.GRPCListenAddr, opts.ServiceName, grpc.WithLogger(log))

		go func() {
			if err := grpcServer.Start(); err != nil {
				report(fmt.Errorf("gRPC server: %w", err))
			}
		}()
	}

	if opts.StatusServer != nil && opts.StatusListenAddr != "" {
		go func() {
			if err := opts.StatusServer.Start(opts.StatusListenAddr); err != nil {
				report(fmt.Errorf("status server: %w", err))
			}
		}()
	}

	go func() {
		err := opts.Service.Start(ctx)
		if ctx.Err() != nil {
			return
		}

		if err == nil {
			err = errServiceExited
		}

		report(err)
	}()

	if grpcServer != nil {
		grpcServer.SetServing(true)
	}

	return handleShutdown(ctx, cancel, log, shutdown, grpcServer, opts, errChan)
}

func handleShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	log *logger.Logger,
	shutdown *Shutdown,
	grpcServer *grpc.Server,
	opts *ServerOptions,
	errChan chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	defer signal.Stop(sigChan)

	go func() {
		for {
			select {
			case sig := <-sigChan:
				shutdown.Trigger(signalName(sig))
			case <-shutdown.Done():
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var runErr error

	select {
	case <-shutdown.Done():
	case err := <-errChan:
		log.Errorf("Received error: %v, initiating shutdown", err)

		runErr = fmt.Errorf("service error: %w", err)
	case <-ctx.Done():
		log.Debugf("Context canceled, initiating shutdown")

		runErr = ctx.Err()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	cancel()

	if grpcServer != nil {
		grpcServer.Stop(shutdownCtx)
	}

	if opts.StatusServer != nil {
		if err := opts.StatusServer.Stop(shutdownCtx); err != nil {
			log.Errorf("Error stopping status server: %v", err)
		}
	}

	if err := opts.Service.Stop(shutdownCtx); err != nil {
		log.Errorf("Error during service shutdown: %v", err)

		if runErr == nil {
			runErr = fmt.Errorf("shutdown error: %w", err)
		}
	}

	return runErr
}
