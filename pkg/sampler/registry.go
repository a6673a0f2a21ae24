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

package sampler

import (
	"fmt"
	"math"
	"sort"

	"github.com/carverauto/heartbeat/pkg/models"
)

// Options carries metric-specific parameters through to a Source.
type Options struct {
	DiskPath string
}

// Factory builds a Source from its options.
type Factory func(opts Options) (Source, error)

// Registry defines how to store and retrieve source factories.
type Registry interface {
	Register(metric string, factory Factory)
	Get(metric string, opts Options) (Source, error)
	Metrics() []string
}

// sourceRegistry is a simple in-memory implementation of Registry.
type sourceRegistry struct {
	factories map[string]Factory
}

func NewRegistry() Registry {
	return &sourceRegistry{
		factories: make(map[string]Factory),
	}
}

// DefaultRegistry returns a registry with the cpu, ram and disk sources.
func DefaultRegistry() Registry {
	r := NewRegistry()

	r.Register(models.MetricCPU.Key, func(Options) (Source, error) {
		return NewCPUSource(), nil
	})

	r.Register(models.MetricRAM.Key, func(Options) (Source, error) {
		return NewMemorySource(), nil
	})

	r.Register(models.MetricDisk.Key, func(opts Options) (Source, error) {
		return NewDiskSource(opts.DiskPath)
	})

	return r
}

func (r *sourceRegistry) Register(metric string, factory Factory) {
	r.factories[metric] = factory
}

func (r *sourceRegistry) Get(metric string, opts Options) (Source, error) {
	f, ok := r.factories[metric]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
	}

	return f(opts)
}

func (r *sourceRegistry) Metrics() []string {
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Validate rejects readings that are not a percentage.
func Validate(value float64) error {
	if math.IsNaN(value) || value < 0 || value > 100 {
		return fmt.Errorf("%w: %v", ErrOutOfRange, value)
	}

	return nil
}
