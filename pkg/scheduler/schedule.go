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

// Package scheduler runs work on a fixed cadence anchored to a start time.
package scheduler

import (
	"context"
	"time"
)

// Schedule tracks the next wake time of a fixed-interval loop. The next
// tick is always the previous tick plus the interval, never the completion
// time plus the interval, so a slow cycle does not shift later ones.
type Schedule struct {
	next     time.Time
	interval time.Duration
}

// NewSchedule returns a schedule whose first tick is start+interval.
func NewSchedule(start time.Time, interval time.Duration) *Schedule {
	return &Schedule{
		next:     start.Add(interval),
		interval: interval,
	}
}

// Next returns the upcoming tick.
func (s *Schedule) Next() time.Time {
	return s.next
}

// Advance moves to the following tick and returns it.
func (s *Schedule) Advance() time.Time {
	s.next = s.next.Add(s.interval)

	return s.next
}

// Until returns how long to sleep at now before the upcoming tick, or zero
// if it is already due.
func (s *Schedule) Until(now time.Time) time.Duration {
	if d := s.next.Sub(now); d > 0 {
		return d
	}

	return 0
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Func is called once per tick with the time the tick was scheduled for.
type Func func(ctx context.Context, scheduled time.Time)

// Ticker drives a Func on a drift-corrected cadence until its context is
// canceled.
type Ticker struct {
	Interval time.Duration
	// Immediate runs the first cycle at start instead of waiting one
	// interval for it.
	Immediate bool
	Clock     Clock
}

// Run blocks until ctx is canceled. Cancellation interrupts a pending sleep
// immediately; an in-flight fn call is allowed to finish.
func (t *Ticker) Run(ctx context.Context, fn Func) {
	clock := t.Clock
	if clock == nil {
		clock = realClock{}
	}

	start := clock.Now()
	sched := NewSchedule(start, t.Interval)

	if t.Immediate {
		if ctx.Err() != nil {
			return
		}

		fn(ctx, start)
	}

	for {
		if !Sleep(ctx, sched.Until(clock.Now())) {
			return
		}

		scheduled := sched.Next()
		sched.Advance()

		fn(ctx, scheduled)
	}
}

// Sleep waits for d or until ctx is done and reports whether the full
// duration elapsed without cancellation.
func Sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
