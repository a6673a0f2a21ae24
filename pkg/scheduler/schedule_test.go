package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_DriftCorrection(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sched := NewSchedule(start, time.Second)

	assert.Equal(t, start.Add(time.Second), sched.Next())
	assert.Equal(t, time.Second, sched.Until(start))

	// The first cycle overran by 2.5 intervals.
	completed := start.Add(2500 * time.Millisecond)
	assert.Zero(t, sched.Until(completed))

	next := sched.Advance()
	assert.Equal(t, start.Add(2*time.Second), next, "next tick must not be completion time + interval")
	assert.Zero(t, sched.Until(completed))

	next = sched.Advance()
	assert.Equal(t, start.Add(3*time.Second), next)
	assert.Equal(t, 500*time.Millisecond, sched.Until(completed))
}

func TestSchedule_LongRunCadence(t *testing.T) {
	start := time.Now()
	sched := NewSchedule(start, 250*time.Millisecond)

	for i := 0; i < 1000; i++ {
		sched.Advance()
	}

	assert.Equal(t, start.Add(1001*250*time.Millisecond), sched.Next())
}

type recorder struct {
	mu    sync.Mutex
	ticks []time.Time
}

func (r *recorder) add(ts time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ticks = append(r.ticks, ts)

	return len(r.ticks)
}

func (r *recorder) snapshot() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]time.Time(nil), r.ticks...)
}

func TestTicker_ScheduledTimesAreAnchored(t *testing.T) {
	const interval = 20 * time.Millisecond

	for _, immediate := range []bool{true, false} {
		name := "wait first"
		if immediate {
			name = "immediate"
		}

		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			rec := &recorder{}
			ticker := &Ticker{Interval: interval, Immediate: immediate}
			done := make(chan struct{})

			go func() {
				defer close(done)

				ticker.Run(ctx, func(_ context.Context, scheduled time.Time) {
					if rec.add(scheduled) == 2 {
						// Overrun the interval on one cycle.
						time.Sleep(3 * interval)
					}

					if len(rec.snapshot()) >= 6 {
						cancel()
					}
				})
			}()

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("ticker did not stop")
			}

			ticks := rec.snapshot()
			require.GreaterOrEqual(t, len(ticks), 6)

			first := ticks[0]
			for i, ts := range ticks {
				assert.Equal(t, first.Add(time.Duration(i)*interval), ts, "tick %d", i)
			}
		})
	}
}

func TestTicker_CancelInterruptsSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticker := &Ticker{Interval: time.Hour}
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker.Run(ctx, func(context.Context, time.Time) {
			t.Error("tick should never fire")
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cancellation did not wake the ticker")
	}
}

func TestTicker_DoesNotStartWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	ticker := &Ticker{Interval: time.Millisecond, Immediate: true}
	ticker.Run(ctx, func(context.Context, time.Time) { calls++ })

	assert.Zero(t, calls)
}

func TestSleep(t *testing.T) {
	assert.True(t, Sleep(context.Background(), 0))
	assert.True(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, Sleep(ctx, 0))
	assert.False(t, Sleep(ctx, time.Hour))
}
