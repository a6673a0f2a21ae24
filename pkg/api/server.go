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

// Package api serves a read-only view of a running agent over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	httpx "github.com/carverauto/heartbeat/pkg/http"
	"github.com/carverauto/heartbeat/pkg/logger"
	"github.com/gorilla/mux"
)

const readHeaderTimeout = 5 * time.Second

// Option customizes an APIServer.
type Option func(*APIServer)

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *APIServer) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetricsHandler mounts h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *APIServer) {
		s.metrics = h
	}
}

type APIServer struct {
	service   string
	provider  StatusProvider
	metrics   http.Handler
	log       *logger.Logger
	router    *mux.Router
	startedAt time.Time

	mu      sync.Mutex
	srv     *http.Server
	stopped bool
}

func NewAPIServer(service string, provider StatusProvider, opts ...Option) *APIServer {
	s := &APIServer{
		service:   service,
		provider:  provider,
		log:       logger.Discard(),
		router:    mux.NewRouter(),
		startedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()

	return s
}

func (s *APIServer) setupRoutes() {
	s.router.Use(httpx.CommonMiddleware)
	s.router.Use(httpx.RequestLogger(s.log))

	s.router.HandleFunc("/api/status", s.getStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.getHealth).Methods(http.MethodGet)

	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics).Methods(http.MethodGet)
	}
}

// Handler returns the router, for embedding or testing.
func (s *APIServer) Handler() http.Handler {
	return s.router
}

func (s *APIServer) getStatus(w http.ResponseWriter, _ *http.Request) {
	resp := StatusResponse{
		Service:   s.service,
		StartedAt: s.startedAt,
		UpTime:    time.Since(s.startedAt).Round(time.Second).String(),
		Agent:     s.provider.Status(),
	}

	s.writeJSON(w, resp)
}

func (s *APIServer) getHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, healthResponse{Status: "ok"})
}

func (s *APIServer) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("Error encoding response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Start listens on addr and serves until Stop.
func (s *APIServer) Start(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return s.Serve(lis)
}

// Serve accepts connections on lis until Stop. If Stop already ran, lis is
// closed and Serve returns at once.
func (s *APIServer) Serve(lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()

		return lis.Close()
	}

	s.srv = srv
	s.mu.Unlock()

	s.log.Infof("Status server listening on %s", lis.Addr())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

// Stop gracefully shuts the server down. A later Serve does not start.
func (s *APIServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	return srv.Shutdown(ctx)
}
