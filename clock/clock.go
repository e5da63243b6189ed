// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Interface is the time source used by the stopwatch.  Code that measures elapsed time
// or schedules periodic work goes through an Interface rather than the time package so
// that tests can drive time explicitly.
type Interface interface {
	// Now returns the current wall-clock time
	Now() time.Time

	// NewTicker returns a periodic event source with the given period.  The returned
	// Ticker is the cancellation handle for that periodic work.
	NewTicker(time.Duration) Ticker
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

// System returns a clock backed by the time package
func System() Interface {
	return systemClock{}
}

// EpochMillis returns the number of milliseconds since the Unix epoch for the
// current time of the given clock.
func EpochMillis(c Interface) int64 {
	return c.Now().UnixMilli()
}
