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

package agent

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/carverauto/heartbeat/pkg/logger"
	"github.com/carverauto/heartbeat/pkg/metrics"
	"github.com/carverauto/heartbeat/pkg/models"
	"github.com/carverauto/heartbeat/pkg/observability"
	"github.com/carverauto/heartbeat/pkg/sampler"
	"github.com/carverauto/heartbeat/pkg/scheduler"
	"golang.org/x/time/rate"
)

// Roughly fifteen minutes of one-second samples.
const defaultBufferCapacity = 1024

// Config holds the two cadences of an agent.
type Config struct {
	CollectionInterval time.Duration
	PostInterval       time.Duration
}

// Option customizes an Agent.
type Option func(*Agent)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *logger.Logger) Option {
	return func(a *Agent) {
		if log != nil {
			a.log = log
		}
	}
}

// WithRecorder sets where internal measurements are reported.
func WithRecorder(r Recorder) Option {
	return func(a *Agent) {
		if r != nil {
			a.recorder = r
		}
	}
}

// WithClock overrides the time source used to stamp samples and compute
// window cutoffs.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) {
		if now != nil {
			a.now = now
		}
	}
}

// Agent runs the sampling loop and the delivery loop for a single metric.
// The two loops share only the sample buffer.
type Agent struct {
	cfg       Config
	source    sampler.Source
	deliverer Deliverer
	buffer    *metrics.Buffer
	log       *logger.Logger
	recorder  Recorder
	now       func() time.Time

	// Keeps a flapping source from flooding the log.
	sampleErrLog rate.Sometimes

	started     atomic.Bool
	stopOnce    sync.Once
	stop        chan struct{}
	samplerDone chan struct{}

	mu           sync.RWMutex
	lastDelivery *models.DeliveryStatus
}

// New returns an agent that is ready to Start.
func New(cfg Config, source sampler.Source, deliverer Deliverer, opts ...Option) (*Agent, error) {
	if cfg.CollectionInterval <= 0 || cfg.PostInterval <= 0 {
		return nil, fmt.Errorf("%w: collection=%v post=%v", errInvalidInterval, cfg.CollectionInterval, cfg.PostInterval)
	}

	if source == nil {
		return nil, errNilSource
	}

	if deliverer == nil {
		return nil, errNilDeliverer
	}

	a := &Agent{
		cfg:          cfg,
		source:       source,
		deliverer:    deliverer,
		buffer:       metrics.NewBuffer(defaultBufferCapacity),
		log:          logger.Discard(),
		recorder:     noopRecorder{},
		now:          time.Now,
		sampleErrLog: rate.Sometimes{First: 3, Interval: time.Minute},
		stop:         make(chan struct{}),
		samplerDone:  make(chan struct{}),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Start runs both loops and blocks until ctx is canceled or Stop is called.
// The sampling loop takes its first reading immediately; the first delivery
// happens one post interval after start.
func (a *Agent) Start(ctx context.Context) error {
	if !a.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-a.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	metric := a.source.Metric()
	a.log.Infof("Monitoring %s usage: sampling every %v, reporting every %v",
		metric.Noun, a.cfg.CollectionInterval, a.cfg.PostInterval)

	sampling := &scheduler.Ticker{Interval: a.cfg.CollectionInterval, Immediate: true}

	go func() {
		defer close(a.samplerDone)

		sampling.Run(ctx, a.collect)
	}()

	delivery := &scheduler.Ticker{Interval: a.cfg.PostInterval}
	delivery.Run(ctx, a.deliver)

	return nil
}

// Stop cancels both loops and waits for the sampling loop to exit, bounded
// by ctx.
func (a *Agent) Stop(ctx context.Context) error {
	a.stopOnce.Do(func() { close(a.stop) })

	if !a.started.Load() {
		return nil
	}

	select {
	case <-a.samplerDone:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for sampler to stop: %w", ctx.Err())
	}
}

// collect takes one reading. Failed or out of range readings are dropped
// and the loop carries on.
func (a *Agent) collect(ctx context.Context, _ time.Time) {
	value, err := a.source.Sample(ctx)
	if err == nil {
		err = sampler.Validate(value)
	}

	if err != nil {
		if ctx.Err() != nil {
			return
		}

		a.recorder.ObserveSample(err)
		a.sampleErrLog.Do(func() {
			a.log.Errorf("Failed to read %s usage: %v", a.source.Metric().Noun, err)
		})

		return
	}

	now := a.now()

	a.buffer.Add(models.Sample{Timestamp: now, Value: value})
	a.buffer.EvictOlderThan(models.RetentionHorizon, now)

	a.recorder.ObserveSample(nil)
	a.recorder.SetBufferLength(a.buffer.Len())

	a.log.Debugf("%s: %.2f%%", now.Format(models.TimestampLayout), value)
}

// deliver aggregates the buffer and hands the snapshot to the deliverer.
// A tick with any empty window is skipped rather than reported as zero.
func (a *Agent) deliver(ctx context.Context, scheduled time.Time) {
	now := a.now()

	snap, err := metrics.Aggregate(a.buffer, now)
	if err != nil {
		a.log.Infof("Skipping report: %v", err)
		a.setLastDelivery(&models.DeliveryStatus{
			Scheduled: scheduled,
			Timestamp: now,
			Skipped:   true,
			Error:     err.Error(),
		})
		a.recorder.ObserveDelivery(observability.ResultSkipped, 0, 0)

		return
	}

	start := time.Now()
	attempts, err := a.deliverer.Publish(ctx, snap)
	elapsed := time.Since(start)

	status := &models.DeliveryStatus{
		Scheduled: scheduled,
		Timestamp: now,
		Success:   err == nil,
		Attempts:  attempts,
	}

	result := observability.ResultSuccess

	if err != nil {
		result = observability.ResultFailure
		status.Error = err.Error()
	} else {
		a.recorder.SetAverages(snap)
	}

	a.setLastDelivery(status)
	a.recorder.ObserveDelivery(result, attempts, elapsed)
}

func (a *Agent) setLastDelivery(status *models.DeliveryStatus) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lastDelivery = status
}

// Metric returns the metric this agent reports.
func (a *Agent) Metric() models.Metric {
	return a.source.Metric()
}

// Status returns the buffer size, the averages of windows that currently
// hold data and the outcome of the last delivery tick.
func (a *Agent) Status() models.AgentStatus {
	now := a.now()

	status := models.AgentStatus{
		Metric:   a.source.Metric().Key,
		Samples:  a.buffer.Len(),
		Averages: []models.WindowAverage{},
	}

	for _, avg := range metrics.WindowAverages(a.buffer, now) {
		if avg.Count > 0 {
			status.Averages = append(status.Averages, avg)
		}
	}

	if last, ok := a.buffer.Last(); ok {
		status.LastSample = &last
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.lastDelivery != nil {
		d := *a.lastDelivery
		status.LastDelivery = &d
	}

	return status
}

type noopRecorder struct{}

func (noopRecorder) ObserveSample(error)                        {}
func (noopRecorder) SetBufferLength(int)                        {}
func (noopRecorder) ObserveDelivery(string, int, time.Duration) {}
func (noopRecorder) SetAverages(*models.Snapshot)               {}
