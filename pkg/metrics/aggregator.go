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
	"fmt"
	"strings"
	"time"

	"github.com/carverauto/heartbeat/pkg/models"
)

// Average computes the arithmetic mean of the samples newer than
// now-window. An empty window yields ErrInsufficientData.
func Average(store SampleReader, now time.Time, window time.Duration) (models.WindowAverage, error) {
	result := models.WindowAverage{
		Window: window,
		Label:  models.WindowLabel(window),
	}

	values := store.ValuesSince(now.Add(-window))
	if len(values) == 0 {
		return result, fmt.Errorf("%w: no samples in %s window", ErrInsufficientData, result.Label)
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	result.Count = len(values)
	result.Average = sum / float64(len(values))

	return result, nil
}

// WindowAverages computes every window in models.Windows. Windows without
// data are returned with a zero Count.
func WindowAverages(store SampleReader, now time.Time) []models.WindowAverage {
	averages := make([]models.WindowAverage, 0, len(models.Windows))

	for _, window := range models.Windows {
		avg, _ := Average(store, now, window)
		averages = append(averages, avg)
	}

	return averages
}

// Aggregate computes the 1, 5 and 15 minute averages at now. If any window
// is empty no snapshot is produced and the error names the empty windows.
func Aggregate(store SampleReader, now time.Time) (*models.Snapshot, error) {
	averages := WindowAverages(store, now)

	var missing []string

	for _, avg := range averages {
		if avg.Count == 0 {
			missing = append(missing, avg.Label)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: no samples in %s window", ErrInsufficientData, strings.Join(missing, ", "))
	}

	return &models.Snapshot{
		Timestamp:      now,
		OneMinute:      averages[0].Average,
		FiveMinutes:    averages[1].Average,
		FifteenMinutes: averages[2].Average,
	}, nil
}
