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

// Package models pkg/models/metrics.go
package models

import (
	"fmt"
	"time"
)

const (
	OneMinute      = 1 * time.Minute
	FiveMinutes    = 5 * time.Minute
	FifteenMinutes = 15 * time.Minute

	// RetentionHorizon is the maximum age of a buffered sample.
	RetentionHorizon = FifteenMinutes

	// TimestampLayout is used for raw sample log lines.
	TimestampLayout = "2006-01-02 15:04:05.000"
)

// Windows lists the trailing aggregation windows in reporting order.
var Windows = []time.Duration{OneMinute, FiveMinutes, FifteenMinutes}

// WindowLabel returns the short label used in payload keys, e.g. "5min".
func WindowLabel(window time.Duration) string {
	return fmt.Sprintf("%dmin", int(window/time.Minute))
}

// Sample is one timestamped reading of the monitored metric. Samples are
// never modified once created.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// WindowAverage is the mean of the samples inside one trailing window.
// A zero Count means the window had no data and Average is meaningless.
type WindowAverage struct {
	Window  time.Duration `json:"-"`
	Label   string        `json:"window"`
	Average float64       `json:"average"`
	Count   int           `json:"count"`
}

// Snapshot holds the three trailing averages computed on a delivery tick.
type Snapshot struct {
	Timestamp      time.Time `json:"timestamp"`
	OneMinute      float64   `json:"avg_1min"`
	FiveMinutes    float64   `json:"avg_5min"`
	FifteenMinutes float64   `json:"avg_15min"`
}

// Values returns the averages in the order of Windows.
func (s *Snapshot) Values() []float64 {
	return []float64{s.OneMinute, s.FiveMinutes, s.FifteenMinutes}
}
