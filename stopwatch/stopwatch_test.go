// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package stopwatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/stopwatch/clock/clocktest"
	"github.com/xmidt-org/stopwatch/logging"
	"github.com/xmidt-org/stopwatch/xmetrics"
)

const testTimeout = 5 * time.Second

type runningStopwatch struct {
	*Stopwatch
	clock    *clocktest.Manual
	sink     *recorder
	events   chan Event
	shutdown chan struct{}
	wg       *sync.WaitGroup
}

func (rs *runningStopwatch) stop() {
	close(rs.shutdown)
	rs.wg.Wait()
}

func newRunningStopwatch(t *testing.T, o *Options) *runningStopwatch {
	if o == nil {
		o = new(Options)
	}

	rs := &runningStopwatch{
		clock:    clocktest.NewManual(testStart),
		sink:     new(recorder),
		events:   make(chan Event, 100),
		shutdown: make(chan struct{}),
		wg:       new(sync.WaitGroup),
	}

	o.Clock = rs.clock
	o.Logger = logging.NewTestLogger(nil, t)
	o.Display = rs.sink
	o.LapList = rs.sink
	o.Controls = rs.sink
	o.Listeners = append(o.Listeners, func(e *Event) { rs.events <- *e })

	rs.Stopwatch = New(o)
	require.NoError(t, rs.Run(rs.wg, rs.shutdown))
	return rs
}

func TestStopwatchScenario(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		ctx     = context.Background()
		sw      = newRunningStopwatch(t, nil)
	)

	defer sw.stop()

	require.NoError(sw.Start(ctx))
	ticker := sw.clock.Ticker()
	require.NotNil(ticker)
	assert.Equal(DefaultTickPeriod, ticker.Period())

	for i := 0; i < 150; i++ {
		require.True(ticker.Advance(testTimeout), "tick %d was not received", i)
	}

	lap, recorded, err := sw.RecordLap(ctx)
	require.NoError(err)
	require.True(recorded)
	assert.Equal(1, lap.Index)
	assert.InDelta(1500, lap.ElapsedMs, float64(DefaultTickPeriod/time.Millisecond))
	assert.Equal([]string{"Lap 1: 00:00:01.500"}, sw.sink.lapEntries())

	require.NoError(sw.Pause(ctx))
	assert.True(ticker.Stopped())

	require.NoError(sw.Reset(ctx))
	assert.Equal(ZeroTime, sw.sink.lastTime())
	assert.Empty(sw.sink.lapEntries())

	state, err := sw.State(ctx)
	require.NoError(err)
	assert.Equal(State{Laps: []Lap{}}, state)

	var types []EventType
	for len(sw.events) > 0 {
		types = append(types, (<-sw.events).Type)
	}

	assert.Equal([]EventType{Started, LapRecorded, Paused, Reset}, types)
}

func TestStopwatchStartIsIdempotent(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		ctx     = context.Background()
		sw      = newRunningStopwatch(t, &Options{TickPeriod: 25 * time.Millisecond})
	)

	defer sw.stop()

	require.NoError(sw.Start(ctx))
	first, err := sw.State(ctx)
	require.NoError(err)

	require.NoError(sw.Start(ctx))
	second, err := sw.State(ctx)
	require.NoError(err)

	assert.Equal(first, second)
	assert.Len(sw.clock.Tickers(), 1)
	assert.Equal(25*time.Millisecond, sw.clock.Ticker().Period())
	assert.Len(sw.events, 1)
}

func TestStopwatchNoTickAfterPause(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		ctx     = context.Background()
		sw      = newRunningStopwatch(t, nil)
	)

	defer sw.stop()

	require.NoError(sw.Start(ctx))
	ticker := sw.clock.Ticker()
	require.True(ticker.Advance(testTimeout))
	require.True(ticker.Advance(testTimeout))

	require.NoError(sw.Pause(ctx))
	paused, err := sw.State(ctx)
	require.NoError(err)
	assert.Equal(int64(20), paused.ElapsedMs)
	assert.True(ticker.Stopped())

	// an event already in flight is never consumed
	sw.clock.Add(time.Second)
	assert.False(ticker.Fire(50 * time.Millisecond))
	assert.False(ticker.Advance(50 * time.Millisecond))

	after, err := sw.State(ctx)
	require.NoError(err)
	assert.Equal(paused, after)

	// resuming continues from the paused total on a new ticker
	require.NoError(sw.Start(ctx))
	resumed := sw.clock.Ticker()
	require.NotEqual(ticker, resumed)
	require.True(resumed.Advance(testTimeout))

	state, err := sw.State(ctx)
	require.NoError(err)
	assert.Equal(int64(30), state.ElapsedMs)
	assert.GreaterOrEqual(state.ElapsedMs, paused.ElapsedMs)
}

func TestStopwatchNoTickAfterReset(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		ctx     = context.Background()
		sw      = newRunningStopwatch(t, nil)
	)

	defer sw.stop()

	require.NoError(sw.Start(ctx))
	ticker := sw.clock.Ticker()
	require.True(ticker.Advance(testTimeout))

	require.NoError(sw.Reset(ctx))
	assert.True(ticker.Stopped())
	assert.False(ticker.Fire(50 * time.Millisecond))

	state, err := sw.State(ctx)
	require.NoError(err)
	assert.Equal(State{Laps: []Lap{}}, state)
	assert.Equal(ZeroTime, sw.sink.lastTime())
}

func TestStopwatchRecordLapWhileStopped(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		ctx     = context.Background()
		sw      = newRunningStopwatch(t, nil)
	)

	defer sw.stop()

	lap, recorded, err := sw.RecordLap(ctx)
	require.NoError(err)
	assert.False(recorded)
	assert.Equal(Lap{}, lap)

	state, err := sw.State(ctx)
	require.NoError(err)
	assert.Zero(state.LapCounter)
	assert.Empty(state.Laps)
	assert.Empty(sw.events)
}

func TestStopwatchStopped(t *testing.T) {
	var (
		assert = assert.New(t)
		ctx    = context.Background()
		sw     = newRunningStopwatch(t, nil)
	)

	assert.NoError(sw.Start(ctx))
	sw.stop()

	ticker := sw.clock.Ticker()
	assert.True(ticker.Stopped())

	assert.ErrorIs(sw.Start(ctx), ErrStopped)
	assert.ErrorIs(sw.Pause(ctx), ErrStopped)
	assert.ErrorIs(sw.Reset(ctx), ErrStopped)

	_, _, err := sw.RecordLap(ctx)
	assert.ErrorIs(err, ErrStopped)

	_, err = sw.State(ctx)
	assert.ErrorIs(err, ErrStopped)

	// Run is idempotent, so the loop does not restart
	assert.NoError(sw.Run(sw.wg, make(chan struct{})))
	_, err = sw.State(ctx)
	assert.ErrorIs(err, ErrStopped)
}

func TestStopwatchContextCanceled(t *testing.T) {
	var (
		assert      = assert.New(t)
		sw          = New(nil)
		ctx, cancel = context.WithCancel(context.Background())
	)

	// the loop was never run, so nothing accepts the event
	cancel()
	assert.ErrorIs(sw.Start(ctx), context.Canceled)

	_, err := sw.State(ctx)
	assert.ErrorIs(err, context.Canceled)
}

func TestStopwatchMetrics(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		ctx     = context.Background()

		registry, err = xmetrics.NewRegistry(
			&xmetrics.Options{DisableGoCollector: true, DisableProcessCollector: true},
			Metrics,
		)
	)

	require.NoError(err)
	sw := newRunningStopwatch(t, &Options{MetricsProvider: registry})
	defer sw.stop()

	require.NoError(sw.Start(ctx))
	ticker := sw.clock.Ticker()
	for i := 0; i < 3; i++ {
		require.True(ticker.Advance(testTimeout))
	}

	_, recorded, err := sw.RecordLap(ctx)
	require.NoError(err)
	require.True(recorded)
	require.NoError(sw.Pause(ctx))

	transitions := registry.NewCounterVec(TransitionCounter)
	assert.Equal(1.0, testutil.ToFloat64(transitions.WithLabelValues("Started")))
	assert.Equal(1.0, testutil.ToFloat64(transitions.WithLabelValues("LapRecorded")))
	assert.Equal(1.0, testutil.ToFloat64(transitions.WithLabelValues("Paused")))
	assert.Equal(3.0, testutil.ToFloat64(registry.NewCounterVec(TickCounter)))
	assert.Equal(0.03, testutil.ToFloat64(registry.NewGaugeVec(ElapsedGauge)))
	assert.Equal(1.0, testutil.ToFloat64(registry.NewGaugeVec(LapGauge)))

	// a single unlabelled histogram, observed for every tick after the first
	assert.Equal(1, testutil.CollectAndCount(registry.NewHistogramVec(TickIntervalHistogram)))

	require.NoError(sw.Reset(ctx))
	assert.Equal(0.0, testutil.ToFloat64(registry.NewGaugeVec(ElapsedGauge)))
	assert.Equal(0.0, testutil.ToFloat64(registry.NewGaugeVec(LapGauge)))
}
