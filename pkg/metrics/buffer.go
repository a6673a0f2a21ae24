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

// Package metrics pkg/metrics/buffer.go
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/carverauto/heartbeat/pkg/models"
)

// Buffer is an in-memory window of recent samples. Samples are appended in
// chronological order by a single producer, so the slice stays sorted by
// timestamp and range lookups can binary search. Every operation holds mu.
type Buffer struct {
	mu      sync.RWMutex
	samples []models.Sample
}

// NewBuffer creates a Buffer with room for capacity samples before the
// backing slice has to grow.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}

	return &Buffer{
		samples: make([]models.Sample, 0, capacity),
	}
}

// Add appends a sample to the tail of the buffer.
func (b *Buffer) Add(sample models.Sample) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.samples = append(b.samples, sample)
}

// EvictOlderThan drops every sample whose age at now exceeds horizon and
// returns how many were removed.
func (b *Buffer) EvictOlderThan(horizon time.Duration, now time.Time) int {
	cutoff := now.Add(-horizon)

	b.mu.Lock()
	defer b.mu.Unlock()

	idx := sort.Search(len(b.samples), func(i int) bool {
		return !b.samples[i].Timestamp.Before(cutoff)
	})
	if idx == 0 {
		return 0
	}

	// Shift in place so the backing array does not keep growing.
	n := copy(b.samples, b.samples[idx:])
	clear(b.samples[n:])
	b.samples = b.samples[:n]

	return idx
}

// ValuesSince returns the values of all samples strictly newer than cutoff,
// oldest first. The returned slice is a copy.
func (b *Buffer) ValuesSince(cutoff time.Time) []float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	idx := sort.Search(len(b.samples), func(i int) bool {
		return b.samples[i].Timestamp.After(cutoff)
	})

	values := make([]float64, 0, len(b.samples)-idx)
	for _, s := range b.samples[idx:] {
		values = append(values, s.Value)
	}

	return values
}

// Len returns the number of buffered samples.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.samples)
}

// Last returns the most recent sample, if any.
func (b *Buffer) Last() (models.Sample, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.samples) == 0 {
		return models.Sample{}, false
	}

	return b.samples[len(b.samples)-1], true
}

// Points returns a copy of every buffered sample, oldest first.
func (b *Buffer) Points() []models.Sample {
	b.mu.RLock()
	defer b.mu.RUnlock()

	points := make([]models.Sample, len(b.samples))
	copy(points, b.samples)

	return points
}
