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

// Package publisher delivers window averages to the heartbeat endpoint.
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/carverauto/heartbeat/pkg/config"
	"github.com/carverauto/heartbeat/pkg/logger"
	"github.com/carverauto/heartbeat/pkg/models"
)

const (
	// MonitorName is how the receiving service is referred to in logs.
	MonitorName = "MonSpark Heartbeat Monitor"

	defaultAttempts = 3
	defaultTimeout  = 10 * time.Second
	maxErrorBody    = 512
)

// FieldNames are the payload keys for the three window averages.
type FieldNames struct {
	OneMinute      string
	FiveMinutes    string
	FifteenMinutes string
}

// UsageFieldNames returns {metric}_usage_{1,5,15}min_avg.
func UsageFieldNames(metric models.Metric) FieldNames {
	return FieldNames{
		OneMinute:      fmt.Sprintf("%s_usage_1min_avg", metric.Key),
		FiveMinutes:    fmt.Sprintf("%s_usage_5min_avg", metric.Key),
		FifteenMinutes: fmt.Sprintf("%s_usage_15min_avg", metric.Key),
	}
}

// Config controls where and how averages are delivered.
type Config struct {
	URL      string
	Metric   models.Metric
	Attempts int
	// Timeout bounds a single attempt.
	Timeout time.Duration
	Headers []config.Header
}

// Publisher POSTs averages as JSON, retrying immediately on failure.
type Publisher struct {
	config     Config
	fields     FieldNames
	client     *http.Client
	log        *logger.Logger
	bufferPool *sync.Pool
}

// New creates a Publisher. A nil log discards output.
func New(cfg Config, log *logger.Logger) *Publisher {
	if cfg.Attempts <= 0 {
		cfg.Attempts = defaultAttempts
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Publisher{
		config: cfg,
		fields: UsageFieldNames(cfg.Metric),
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}

// Publish sends snap and returns the number of attempts made. Only a
// transport error or a non-2xx response counts as a failed attempt.
func (p *Publisher) Publish(ctx context.Context, snap *models.Snapshot) (int, error) {
	if snap == nil {
		return 0, ErrNilSnapshot
	}

	p.logSummary(snap)

	payload, err := p.preparePayload(snap)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare payload: %w", err)
	}

	var lastErr error

	attempts := 0

	for attempts < p.config.Attempts {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}

		attempts++

		lastErr = p.sendRequest(ctx, payload)
		if lastErr == nil {
			p.log.Infof("Data sent to %s", MonitorName)

			return attempts, nil
		}

		p.log.Errorf("Delivery attempt %d/%d failed: %v", attempts, p.config.Attempts, lastErr)
	}

	p.log.Errorf("Failed to send data to %s", MonitorName)

	return attempts, fmt.Errorf("%w after %d attempts: %w", ErrDeliveryFailed, attempts, lastErr)
}

func (p *Publisher) logSummary(snap *models.Snapshot) {
	metric := p.config.Metric

	p.log.Infof("Sending %s usage to %s", metric.Noun, MonitorName)
	p.log.Infof("%s usage (1 min avg): %.2f%%", metric.Title, snap.OneMinute)
	p.log.Infof("%s usage (5 min avg): %.2f%%", metric.Title, snap.FiveMinutes)
	p.log.Infof("%s usage (15 min avg): %.2f%%", metric.Title, snap.FifteenMinutes)
}

func (p *Publisher) preparePayload(snap *models.Snapshot) ([]byte, error) {
	body := map[string]float64{
		p.fields.OneMinute:      snap.OneMinute,
		p.fields.FiveMinutes:    snap.FiveMinutes,
		p.fields.FifteenMinutes: snap.FifteenMinutes,
	}

	buf := p.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer p.bufferPool.Put(buf)

	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return append([]byte(nil), buf.Bytes()...), nil
}

func (p *Publisher) sendRequest(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	p.setHeaders(req)

	resp, err := p.client.Do(req) //nolint:bodyclose // Response body is closed later
	if err != nil {
		return fmt.Errorf("failed to send heartbeat: %w", err)
	}
	defer func(Body io.ReadCloser) {
		// Drain so the connection can be reused by the next attempt.
		_, _ = io.Copy(io.Discard, Body)

		if err := Body.Close(); err != nil {
			p.log.Errorf("failed to close response body: %v", err)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBuf := p.bufferPool.Get().(*bytes.Buffer)
		errBuf.Reset()
		defer p.bufferPool.Put(errBuf)

		_, _ = io.Copy(errBuf, io.LimitReader(resp.Body, maxErrorBody))

		return fmt.Errorf("%w: status=%d body=%s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(errBuf.String()))
	}

	return nil
}

func (p *Publisher) setHeaders(req *http.Request) {
	hasContentType := false

	for _, header := range p.config.Headers {
		if strings.EqualFold(header.Key, "content-type") {
			hasContentType = true
		}

		req.Header.Set(header.Key, header.Value)
	}

	if !hasContentType {
		req.Header.Set("Content-Type", "application/json")
	}
}
