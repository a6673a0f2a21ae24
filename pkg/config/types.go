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

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/carverauto/heartbeat/pkg/models"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCollectionInterval = 1 * time.Second
	DefaultPostInterval       = 60 * time.Second
	DefaultVerbosity          = 1
	MaxVerbosity              = 2
	DefaultAttempts           = 3
	DefaultTimeout            = 10 * time.Second
	DefaultDiskPath           = "/"
	MinInterval               = time.Second
)

// Duration is written either as a Go duration string ("90s", "1m30s") or as
// a bare number of seconds.
type Duration time.Duration

func secondsDuration(seconds float64) Duration {
	return Duration(time.Duration(seconds * float64(time.Second)))
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = secondsDuration(value)
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errInvalidDuration, err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalYAML accepts the same forms as UnmarshalJSON.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errInvalidDuration
	}

	if tag := node.ShortTag(); tag == "!!int" || tag == "!!float" {
		var n float64
		if err := node.Decode(&n); err != nil {
			return err
		}

		*d = secondsDuration(n)

		return nil
	}

	dur, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidDuration, err)
	}

	*d = Duration(dur)

	return nil
}

// Header represents a custom HTTP header.
type Header struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// AgentConfig represents the configuration for one agent instance.
type AgentConfig struct {
	URL                string   `json:"url" yaml:"url"`
	Metric             string   `json:"metric" yaml:"metric"`
	DiskPath           string   `json:"disk_path,omitempty" yaml:"disk_path,omitempty"`
	CollectionInterval Duration `json:"collection_interval" yaml:"collection_interval"`
	PostInterval       Duration `json:"post_interval" yaml:"post_interval"`
	Verbose            *int     `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	Timeout            Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Attempts           int      `json:"attempts,omitempty" yaml:"attempts,omitempty"`
	Headers            []Header `json:"headers,omitempty" yaml:"headers,omitempty"`
	ServiceName        string   `json:"service_name,omitempty" yaml:"service_name,omitempty"`

	// Status and metrics HTTP address, e.g. :9105.
	ListenAddr string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty"`

	// gRPC health address, e.g. :50055.
	GRPCListenAddr string `json:"grpc_listen_addr,omitempty" yaml:"grpc_listen_addr,omitempty"`
}

// Verbosity returns the configured verbosity, or the default when unset.
func (c *AgentConfig) Verbosity() int {
	if c.Verbose == nil {
		return DefaultVerbosity
	}

	return *c.Verbose
}

// Validate implements config.Validator. It fills defaults for unset fields.
func (c *AgentConfig) Validate() error {
	if c.URL == "" {
		return ErrURLRequired
	}

	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, c.URL)
	}

	if _, ok := models.KnownMetrics[c.Metric]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMetric, c.Metric)
	}

	if c.Metric == models.MetricDisk.Key && c.DiskPath == "" {
		c.DiskPath = DefaultDiskPath
	}

	if err := c.validateIntervals(); err != nil {
		return err
	}

	if c.Verbose != nil {
		switch v := *c.Verbose; {
		case v < 0:
			return ErrNegativeVerbosity
		case v > MaxVerbosity:
			clamped := MaxVerbosity
			c.Verbose = &clamped
		}
	}

	if c.Attempts < 0 {
		return ErrInvalidAttempts
	}

	if c.Attempts == 0 {
		c.Attempts = DefaultAttempts
	}

	c.clampTimeout()

	for _, h := range c.Headers {
		if h.Key == "" {
			return ErrInvalidHeader
		}
	}

	if c.ServiceName == "" {
		c.ServiceName = "heartbeat-" + c.Metric
	}

	return nil
}

func (c *AgentConfig) validateIntervals() error {
	if c.CollectionInterval == 0 {
		c.CollectionInterval = Duration(DefaultCollectionInterval)
	}

	if c.PostInterval == 0 {
		c.PostInterval = Duration(DefaultPostInterval)
	}

	if time.Duration(c.CollectionInterval) < MinInterval {
		return fmt.Errorf("collection_interval %v below %v: %w",
			time.Duration(c.CollectionInterval), MinInterval, ErrInvalidInterval)
	}

	if time.Duration(c.PostInterval) < MinInterval {
		return fmt.Errorf("post_interval %v below %v: %w",
			time.Duration(c.PostInterval), MinInterval, ErrInvalidInterval)
	}

	return nil
}

// clampTimeout keeps the whole retry sequence of one delivery tick inside
// the delivery interval.
func (c *AgentConfig) clampTimeout() {
	if c.Timeout <= 0 {
		c.Timeout = Duration(DefaultTimeout)
	}

	limit := time.Duration(c.PostInterval) / time.Duration(c.Attempts)
	if time.Duration(c.Timeout) > limit {
		c.Timeout = Duration(limit)
	}
}
