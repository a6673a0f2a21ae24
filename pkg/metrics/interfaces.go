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

package metrics

import (
	"time"

	"github.com/carverauto/heartbeat/pkg/models"
)

// SampleReader is the read side of a sample buffer.
type SampleReader interface {
	ValuesSince(cutoff time.Time) []float64
	Len() int
	Last() (models.Sample, bool)
}

// SampleStore is a time-ordered sample buffer shared between the sampling
// loop (writer) and the delivery loop (reader).
type SampleStore interface {
	SampleReader
	Add(sample models.Sample)
	EvictOlderThan(horizon time.Duration, now time.Time) int
}
