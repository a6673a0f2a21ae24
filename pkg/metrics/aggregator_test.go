package metrics

import (
	"testing"
	"time"

	"github.com/carverauto/heartbeat/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_ConstantSeries(t *testing.T) {
	start := time.Now()
	b := NewBuffer(5)
	fillBuffer(b, start, time.Second, 42, 42, 42, 42, 42)

	snap, err := Aggregate(b, start.Add(5*time.Second))
	require.NoError(t, err)

	assert.InDelta(t, 42.0, snap.OneMinute, 0)
	assert.InDelta(t, 42.0, snap.FiveMinutes, 0)
	assert.InDelta(t, 42.0, snap.FifteenMinutes, 0)
}

func TestAggregate_FourTicks(t *testing.T) {
	start := time.Now()
	b := NewBuffer(4)
	fillBuffer(b, start, time.Second, 10, 20, 30, 40)

	snap, err := Aggregate(b, start.Add(4*time.Second))
	require.NoError(t, err)

	assert.InDelta(t, 25.0, snap.OneMinute, 0)
	assert.Equal(t, []float64{25, 25, 25}, snap.Values())
}

func TestAggregate_WindowsUseTheirOwnCutoff(t *testing.T) {
	now := time.Now()
	b := NewBuffer(3)

	// One sample per window band: 10 minutes, 3 minutes and 30 seconds old.
	b.Add(models.Sample{Timestamp: now.Add(-10 * time.Minute), Value: 90})
	b.Add(models.Sample{Timestamp: now.Add(-3 * time.Minute), Value: 30})
	b.Add(models.Sample{Timestamp: now.Add(-30 * time.Second), Value: 10})

	snap, err := Aggregate(b, now)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, snap.OneMinute, 1e-9)
	assert.InDelta(t, 20.0, snap.FiveMinutes, 1e-9)
	assert.InDelta(t, 130.0/3.0, snap.FifteenMinutes, 1e-9)
	assert.Equal(t, now, snap.Timestamp)
}

func TestAggregate_InsufficientData(t *testing.T) {
	now := time.Now()

	t.Run("empty buffer", func(t *testing.T) {
		snap, err := Aggregate(NewBuffer(0), now)

		require.ErrorIs(t, err, ErrInsufficientData)
		assert.Nil(t, snap)
		assert.Contains(t, err.Error(), "1min, 5min, 15min")
	})

	t.Run("only old samples", func(t *testing.T) {
		b := NewBuffer(1)
		b.Add(models.Sample{Timestamp: now.Add(-2 * time.Minute), Value: 0})

		snap, err := Aggregate(b, now)

		require.ErrorIs(t, err, ErrInsufficientData)
		assert.Nil(t, snap)
		assert.Contains(t, err.Error(), "1min")
		assert.NotContains(t, err.Error(), "5min")
	})
}

func TestWindowAverages(t *testing.T) {
	now := time.Now()
	b := NewBuffer(2)
	b.Add(models.Sample{Timestamp: now.Add(-4 * time.Minute), Value: 50})
	b.Add(models.Sample{Timestamp: now.Add(-2 * time.Minute), Value: 70})

	averages := WindowAverages(b, now)
	require.Len(t, averages, 3)

	assert.Equal(t, "1min", averages[0].Label)
	assert.Zero(t, averages[0].Count)

	assert.Equal(t, "5min", averages[1].Label)
	assert.Equal(t, 2, averages[1].Count)
	assert.InDelta(t, 60.0, averages[1].Average, 0)

	assert.Equal(t, "15min", averages[2].Label)
	assert.Equal(t, models.FifteenMinutes, averages[2].Window)
}

func TestAverage_EmptyWindow(t *testing.T) {
	avg, err := Average(NewBuffer(0), time.Now(), models.OneMinute)

	require.ErrorIs(t, err, ErrInsufficientData)
	assert.Zero(t, avg.Count)
	assert.Equal(t, "1min", avg.Label)
}
