// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package stopwatch

import (
	"time"

	"github.com/go-kit/kit/metrics/provider"
	"github.com/go-kit/log"
	"github.com/xmidt-org/stopwatch/clock"
	"github.com/xmidt-org/stopwatch/logging"
)

const (
	// DefaultTickPeriod is the interval between display recomputations
	DefaultTickPeriod = 10 * time.Millisecond
)

// Options is the configuration for a Stopwatch.  Only TickPeriod is normally
// read from configuration.  The remaining fields are set in code.
type Options struct {
	// TickPeriod is how often a running stopwatch recomputes elapsed time.  If nonpositive,
	// DefaultTickPeriod is used.
	TickPeriod time.Duration

	// Clock is the time source.  If unset, clock.System() is used.
	Clock clock.Interface `json:"-"`

	// Logger is the go-kit logger.  If unset, logging.DefaultLogger() is used.
	Logger log.Logger `json:"-"`

	// MetricsProvider supplies the stopwatch metrics.  If unset, a discard provider is used.
	MetricsProvider provider.Provider `json:"-"`

	Display  Display  `json:"-"`
	LapList  LapList  `json:"-"`
	Controls Controls `json:"-"`

	// Listeners receive an Event for each transition
	Listeners []Listener `json:"-"`
}

func (o *Options) tickPeriod() time.Duration {
	if o != nil && o.TickPeriod > 0 {
		return o.TickPeriod
	}

	return DefaultTickPeriod
}

func (o *Options) clock() clock.Interface {
	if o != nil && o.Clock != nil {
		return o.Clock
	}

	return clock.System()
}

func (o *Options) logger() log.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}

	return logging.DefaultLogger()
}

func (o *Options) metricsProvider() provider.Provider {
	if o != nil && o.MetricsProvider != nil {
		return o.MetricsProvider
	}

	return provider.NewDiscardProvider()
}

func (o *Options) display() Display {
	if o != nil {
		return o.Display
	}

	return nil
}

func (o *Options) lapList() LapList {
	if o != nil {
		return o.LapList
	}

	return nil
}

func (o *Options) controls() Controls {
	if o != nil {
		return o.Controls
	}

	return nil
}

func (o *Options) listener() Listener {
	if o != nil {
		return Listeners(o.Listeners...)
	}

	return Listeners()
}
