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

package api

import (
	"time"

	"github.com/carverauto/heartbeat/pkg/models"
)

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Service   string             `json:"service"`
	StartedAt time.Time          `json:"started_at"`
	UpTime    string             `json:"uptime"`
	Agent     models.AgentStatus `json:"agent"`
}

type healthResponse struct {
	Status string `json:"status"`
}
