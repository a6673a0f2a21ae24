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

// Package sampler pkg/sampler/interfaces.go
package sampler

import (
	"context"

	"github.com/carverauto/heartbeat/pkg/models"
)

//go:generate mockgen -destination=mock_sampler.go -package=sampler github.com/carverauto/heartbeat/pkg/sampler Source

// Source reads one value of a host metric. Implementations must be fast
// relative to the sampling interval and return a percentage in [0,100].
type Source interface {
	Metric() models.Metric
	Sample(ctx context.Context) (float64, error)
}
