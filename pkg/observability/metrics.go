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

// Package observability exposes the agent's own Prometheus metrics.
package observability

import (
	"net/http"
	"time"

	"github.com/carverauto/heartbeat/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "heartbeat"

// Delivery results used as the "result" label.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// Metrics holds the collectors of one agent on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	samples         prometheus.Counter
	sampleErrors    prometheus.Counter
	bufferLength    prometheus.Gauge
	deliveries      *prometheus.CounterVec
	attempts        prometheus.Counter
	deliveryLatency prometheus.Histogram
	averages        *prometheus.GaugeVec
}

// New registers the agent collectors, labelled with the metric key.
func New(metric models.Metric) *Metrics {
	labels := prometheus.Labels{"metric": metric.Key}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "samples_total",
			Help:        "Samples successfully read from the host.",
			ConstLabels: labels,
		}),
		sampleErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "sample_errors_total",
			Help:        "Sampling ticks skipped because the read failed.",
			ConstLabels: labels,
		}),
		bufferLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "buffer_samples",
			Help:        "Samples currently held in the retention window.",
			ConstLabels: labels,
		}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "deliveries_total",
			Help:        "Delivery ticks by outcome.",
			ConstLabels: labels,
		}, []string{"result"}),
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "delivery_attempts_total",
			Help:        "HTTP requests made to the heartbeat endpoint.",
			ConstLabels: labels,
		}),
		deliveryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "delivery_duration_seconds",
			Help:        "Time spent delivering one tick, retries included.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		averages: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "usage_average_percent",
			Help:        "Most recently delivered window average.",
			ConstLabels: labels,
		}, []string{"window"}),
	}

	m.registry.MustRegister(
		m.samples,
		m.sampleErrors,
		m.bufferLength,
		m.deliveries,
		m.attempts,
		m.deliveryLatency,
		m.averages,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveSample counts one sampling tick.
func (m *Metrics) ObserveSample(err error) {
	if err != nil {
		m.sampleErrors.Inc()
		return
	}

	m.samples.Inc()
}

// SetBufferLength records the current buffer size.
func (m *Metrics) SetBufferLength(n int) {
	m.bufferLength.Set(float64(n))
}

// ObserveDelivery records the outcome of one delivery tick.
func (m *Metrics) ObserveDelivery(result string, attempts int, elapsed time.Duration) {
	m.deliveries.WithLabelValues(result).Inc()

	if attempts > 0 {
		m.attempts.Add(float64(attempts))
		m.deliveryLatency.Observe(elapsed.Seconds())
	}
}

// SetAverages records the averages of a delivered snapshot.
func (m *Metrics) SetAverages(snap *models.Snapshot) {
	for i, v := range snap.Values() {
		m.averages.WithLabelValues(models.WindowLabel(models.Windows[i])).Set(v)
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
