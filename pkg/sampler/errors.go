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

import "errors"

var (
	ErrUnknownMetric  = errors.New("unknown metric")
	ErrNoCPUReading   = errors.New("no CPU reading returned")
	ErrEmptyDisk      = errors.New("disk reports zero total size")
	ErrEmptyMemory    = errors.New("memory reports zero total size")
	ErrOutOfRange     = errors.New("sample value out of range")
	ErrDiskPathNeeded = errors.New("disk path is required")
)
