package observability

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/carverauto/heartbeat/pkg/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New(models.MetricCPU)

	m.ObserveSample(nil)
	m.ObserveSample(nil)
	m.ObserveSample(errors.New("boom"))

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.samples), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.sampleErrors), 0)

	m.SetBufferLength(42)
	assert.InDelta(t, 42.0, testutil.ToFloat64(m.bufferLength), 0)

	m.ObserveDelivery(ResultSuccess, 3, 120*time.Millisecond)
	m.ObserveDelivery(ResultSkipped, 0, 0)
	m.ObserveDelivery(ResultFailure, 3, time.Second)

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.deliveries.WithLabelValues(ResultSuccess)), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.deliveries.WithLabelValues(ResultSkipped)), 0)
	assert.InDelta(t, 6.0, testutil.ToFloat64(m.attempts), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.deliveryLatency))

	m.SetAverages(&models.Snapshot{OneMinute: 1, FiveMinutes: 5, FifteenMinutes: 15})
	assert.InDelta(t, 5.0, testutil.ToFloat64(m.averages.WithLabelValues("5min")), 0)
	assert.InDelta(t, 15.0, testutil.ToFloat64(m.averages.WithLabelValues("15min")), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := New(models.MetricRAM)
	m.ObserveSample(nil)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `heartbeat_samples_total{metric="ram"} 1`))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	// Two agents in one process must not collide on registration.
	require.NotPanics(t, func() {
		New(models.MetricCPU)
		New(models.MetricCPU)
	})
}
