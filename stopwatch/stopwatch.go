// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package stopwatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/xmidt-org/stopwatch/clock"
	"github.com/xmidt-org/stopwatch/logging"
)

// ErrStopped is returned by any operation submitted after the event loop has exited
var ErrStopped = errors.New("the stopwatch has been stopped")

// Stopwatch runs a Core on a dedicated goroutine.  Every operation, and every tick, is an event on that
// goroutine, and each event runs to completion before the next begins.
//
// Operations block until Run has been called.
type Stopwatch struct {
	logger     log.Logger
	clock      clock.Interface
	tickPeriod time.Duration
	measures   Measures
	listener   Listener

	core   *Core
	events chan func()
	done   chan struct{}
	once   sync.Once

	// only accessed from the event loop
	ticker   clock.Ticker
	lastTick time.Time
}

// New creates a Stopwatch from a set of options, which may be nil.  The returned
// Stopwatch is stopped with nothing elapsed, and its event loop is not yet running.
func New(o *Options) *Stopwatch {
	c := o.clock()

	return &Stopwatch{
		logger:     o.logger(),
		clock:      c,
		tickPeriod: o.tickPeriod(),
		measures:   NewMeasures(o.metricsProvider()),
		listener:   o.listener(),
		core:       NewCore(c, o.display(), o.lapList(), o.controls()),
		events:     make(chan func()),
		done:       make(chan struct{}),
	}
}

// Run starts the event loop.  This method is idempotent.  The loop exits when shutdown is closed,
// after which every operation returns ErrStopped.
func (s *Stopwatch) Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) error {
	s.once.Do(func() {
		logging.Info(s.logger).Log(logging.MessageKey(), "stopwatch event loop starting", "tickPeriod", s.tickPeriod)

		waitGroup.Add(1)
		go s.loop(waitGroup, shutdown)
	})

	return nil
}

func (s *Stopwatch) loop(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) {
	defer waitGroup.Done()
	defer close(s.done)
	defer logging.Info(s.logger).Log(logging.MessageKey(), "stopwatch event loop stopped")
	defer s.stopTicker()

	for {
		// a nil channel is never selected, so no tick is consumed unless a ticker is active
		var ticks <-chan time.Time
		if s.ticker != nil {
			ticks = s.ticker.C()
		}

		select {
		case <-shutdown:
			return

		case f := <-s.events:
			f()

		case t := <-ticks:
			s.onTick(t)
		}
	}
}

// submit runs f on the event loop and waits for it to complete
func (s *Stopwatch) submit(ctx context.Context, f func()) error {
	complete := make(chan struct{})
	event := func() {
		defer close(complete)
		f()
	}

	select {
	case s.events <- event:
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	// once accepted, the loop runs the event before it can observe shutdown
	<-complete
	return nil
}

func (s *Stopwatch) stopTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

func (s *Stopwatch) onTick(t time.Time) {
	if !s.core.Tick() {
		return
	}

	s.measures.Ticks.Add(1.0)
	s.measures.Elapsed.Set(float64(s.core.elapsedMs) / 1000.0)
	if !s.lastTick.IsZero() {
		s.measures.TickInterval.Observe(t.Sub(s.lastTick).Seconds())
	}

	s.lastTick = t
}

func (s *Stopwatch) transitioned(op EventType, lap Lap) {
	state := s.core.State()
	s.measures.Transitions.With(OpLabel, op.String()).Add(1.0)
	s.measures.Laps.Set(float64(state.LapCounter))

	logging.Debug(s.logger).Log(
		logging.MessageKey(), "stopwatch transition",
		"op", op,
		"elapsedMs", state.ElapsedMs,
		"laps", state.LapCounter,
	)

	s.listener(&Event{
		Type:  op,
		State: state,
		Lap:   lap,
	})
}

// Start begins accumulating time and starts the periodic tick.  Starting a running stopwatch does nothing.
func (s *Stopwatch) Start(ctx context.Context) error {
	return s.submit(ctx, func() {
		if s.core.Start() {
			s.ticker = s.clock.NewTicker(s.tickPeriod)
			s.lastTick = time.Time{}
			s.transitioned(Started, Lap{})
		}
	})
}

// Pause stops the periodic tick and freezes the elapsed time.  Pausing a stopped stopwatch does nothing.
func (s *Stopwatch) Pause(ctx context.Context) error {
	return s.submit(ctx, func() {
		if s.core.Pause() {
			s.stopTicker()
			s.transitioned(Paused, Lap{})
		}
	})
}

// Reset stops the periodic tick if necessary and clears the elapsed time and laps.  Reset always
// emits to the sinks, even when nothing has changed.
func (s *Stopwatch) Reset(ctx context.Context) error {
	return s.submit(ctx, func() {
		s.core.Reset()
		s.stopTicker()
		s.measures.Elapsed.Set(0.0)
		s.transitioned(Reset, Lap{})
	})
}

// RecordLap records a lap if running.  The boolean result is false, with a nil error, when the
// stopwatch is stopped.
func (s *Stopwatch) RecordLap(ctx context.Context) (lap Lap, recorded bool, err error) {
	err = s.submit(ctx, func() {
		if lap, recorded = s.core.RecordLap(); recorded {
			s.transitioned(LapRecorded, lap)
		}
	})

	return
}

// State returns a snapshot of the current state
func (s *Stopwatch) State(ctx context.Context) (state State, err error) {
	err = s.submit(ctx, func() {
		state = s.core.State()
	})

	return
}
