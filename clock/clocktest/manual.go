// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clocktest

import (
	"sync"
	"time"

	"github.com/xmidt-org/stopwatch/clock"
)

// Manual is a clock.Interface whose time only moves when a test moves it.  Tickers created
// by a Manual clock never fire on their own.  Each event is delivered explicitly, and
// synchronously, through ManualTicker.Advance or ManualTicker.Fire.
type Manual struct {
	lock    sync.Mutex
	now     time.Time
	tickers []*ManualTicker
}

var _ clock.Interface = (*Manual)(nil)

// NewManual creates a Manual clock positioned at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.now
}

// Add moves this clock forward without delivering any ticker events, returning the new time.
func (m *Manual) Add(d time.Duration) time.Time {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

func (m *Manual) NewTicker(d time.Duration) clock.Ticker {
	t := &ManualTicker{
		clock:  m,
		period: d,
		c:      make(chan time.Time),
	}

	m.lock.Lock()
	m.tickers = append(m.tickers, t)
	m.lock.Unlock()

	return t
}

// Tickers returns every ticker created by this clock, in creation order
func (m *Manual) Tickers() []*ManualTicker {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]*ManualTicker(nil), m.tickers...)
}

// Ticker returns the most recently created ticker, or nil if none has been created
func (m *Manual) Ticker() *ManualTicker {
	m.lock.Lock()
	defer m.lock.Unlock()
	if len(m.tickers) == 0 {
		return nil
	}

	return m.tickers[len(m.tickers)-1]
}

// ManualTicker is the clock.Ticker produced by a Manual clock.  Its channel is unbuffered,
// so a successful delivery means the consumer has received the event.
type ManualTicker struct {
	clock  *Manual
	period time.Duration
	c      chan time.Time

	lock    sync.Mutex
	stopped bool
}

var _ clock.Ticker = (*ManualTicker)(nil)

func (t *ManualTicker) C() <-chan time.Time {
	return t.c
}

func (t *ManualTicker) Stop() {
	t.lock.Lock()
	t.stopped = true
	t.lock.Unlock()
}

// Stopped tests if Stop has been called on this ticker
func (t *ManualTicker) Stopped() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.stopped
}

// Period is the duration this ticker was created with
func (t *ManualTicker) Period() time.Duration {
	return t.period
}

// Advance moves the owning clock forward by one period and delivers the new time
// as a tick.  A stopped ticker delivers nothing and leaves the clock untouched.  This method
// returns false if the ticker is stopped or if no consumer received the tick within timeout.
func (t *ManualTicker) Advance(timeout time.Duration) bool {
	if t.Stopped() {
		return false
	}

	return t.deliver(t.clock.Add(t.period), timeout)
}

// Fire delivers the clock's current time on the channel whether or not this ticker has
// been stopped.  It simulates an event that was already in flight when Stop was called.
func (t *ManualTicker) Fire(timeout time.Duration) bool {
	return t.deliver(t.clock.Now(), timeout)
}

func (t *ManualTicker) deliver(now time.Time, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case t.c <- now:
		return true
	case <-timer.C:
		return false
	}
}
