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

package config

import "errors"

var (
	errInvalidDuration = errors.New("invalid duration")

	ErrURLRequired       = errors.New("url is required")
	ErrInvalidURL        = errors.New("url must be an absolute http or https URL")
	ErrUnknownMetric     = errors.New("unknown metric")
	ErrInvalidInterval   = errors.New("interval must be positive")
	ErrInvalidAttempts   = errors.New("attempts must be positive")
	ErrInvalidHeader     = errors.New("header key must not be empty")
	ErrNegativeVerbosity = errors.New("verbose must not be negative")
)
