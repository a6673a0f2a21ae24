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

// Package agent samples one host metric and periodically reports its
// rolling averages.
package agent

//go:generate mockgen -destination=mock_agent.go -package=agent github.com/carverauto/heartbeat/pkg/agent Deliverer,Recorder

import (
	"context"
	"time"

	"github.com/carverauto/heartbeat/pkg/models"
)

// Deliverer sends a snapshot upstream and reports how many attempts it made.
type Deliverer interface {
	Publish(ctx context.Context, snap *models.Snapshot) (int, error)
}

// Recorder receives the agent's internal measurements.
type Recorder interface {
	ObserveSample(err error)
	SetBufferLength(n int)
	ObserveDelivery(result string, attempts int, elapsed time.Duration)
	SetAverages(snap *models.Snapshot)
}
