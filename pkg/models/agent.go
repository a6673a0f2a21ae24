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

package models

import "time"

// Metric describes which host metric an agent instance monitors.
type Metric struct {
	Key   string // payload key prefix, e.g. "cpu"
	Noun  string // used mid-sentence in log lines
	Title string // used at the start of log lines
}

var (
	MetricCPU  = Metric{Key: "cpu", Noun: "CPU", Title: "CPU"}
	MetricRAM  = Metric{Key: "ram", Noun: "RAM", Title: "RAM"}
	MetricDisk = Metric{Key: "disk", Noun: "disk", Title: "Disk"}
)

// KnownMetrics maps metric keys to their descriptors.
var KnownMetrics = map[string]Metric{
	MetricCPU.Key:  MetricCPU,
	MetricRAM.Key:  MetricRAM,
	MetricDisk.Key: MetricDisk,
}

// DeliveryStatus records the outcome of the most recent delivery tick.
type DeliveryStatus struct {
	// Scheduled is the anchored tick time; Timestamp is when it ran.
	Scheduled time.Time `json:"scheduled"`
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
	Skipped   bool      `json:"skipped,omitempty"`
	Attempts  int       `json:"attempts"`
	Error     string    `json:"error,omitempty"`
}

// AgentStatus is a point-in-time view of a running agent.
type AgentStatus struct {
	Metric       string          `json:"metric"`
	Samples      int             `json:"samples"`
	LastSample   *Sample         `json:"last_sample,omitempty"`
	Averages     []WindowAverage `json:"averages"`
	LastDelivery *DeliveryStatus `json:"last_delivery,omitempty"`
}
