// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package stopwatch

import (
	"github.com/xmidt-org/stopwatch/clock"
)

// Core is the stopwatch state machine.  Invalid transitions are no-ops, so no method returns an error.
// The boolean results report whether a transition actually happened, which is how an owner learns
// that periodic ticks must begin or end.
type Core struct {
	clock    clock.Interface
	display  Display
	lapList  LapList
	controls Controls

	running    bool
	elapsedMs  int64
	anchorMs   int64
	lapCounter int
	laps       []Lap
}

// NewCore creates a stopped Core with nothing elapsed.  A nil clock means clock.System(),
// and any nil sink discards its output.
func NewCore(c clock.Interface, display Display, lapList LapList, controls Controls) *Core {
	if c == nil {
		c = clock.System()
	}

	if display == nil {
		display = nopSink{}
	}

	if lapList == nil {
		lapList = nopSink{}
	}

	if controls == nil {
		controls = nopSink{}
	}

	return &Core{
		clock:    c,
		display:  display,
		lapList:  lapList,
		controls: controls,
	}
}

// State returns a deep copy of this core's state
func (c *Core) State() State {
	s := State{
		Running:    c.running,
		ElapsedMs:  c.elapsedMs,
		LapCounter: c.lapCounter,
		Laps:       append(make([]Lap, 0, len(c.laps)), c.laps...),
	}

	if c.running {
		anchor := c.anchorMs
		s.AnchorEpochMs = &anchor
	}

	return s
}

// Running tests if this core is accumulating time
func (c *Core) Running() bool {
	return c.running
}

// Start begins a running segment anchored at the current time.  It returns false,
// and does nothing, if already running.
func (c *Core) Start() bool {
	if c.running {
		return false
	}

	c.running = true
	c.anchorMs = clock.EpochMillis(c.clock)
	c.controls.SetButtons(RunningButtons)
	return true
}

// Tick folds the time since the anchor into the elapsed total and moves the anchor to now.
// The clock is read once, so no time falls between the two updates.  Tick returns false,
// and emits nothing, when stopped.
func (c *Core) Tick() bool {
	if !c.running {
		return false
	}

	now := clock.EpochMillis(c.clock)
	if delta := now - c.anchorMs; delta > 0 {
		c.elapsedMs += delta
	}

	c.anchorMs = now
	c.display.ShowTime(FormatTime(c.elapsedMs))
	return true
}

// Pause stops accumulating time.  Time since the last tick is not folded in.
// It returns false, and does nothing, when already stopped.
func (c *Core) Pause() bool {
	if !c.running {
		return false
	}

	c.running = false
	c.anchorMs = 0
	c.controls.SetButtons(PausedButtons)
	return true
}

// Reset pauses, then clears the elapsed time and every lap.  The result reports whether
// the pause was a transition, i.e. whether the core was running.
func (c *Core) Reset() bool {
	wasRunning := c.Pause()

	c.elapsedMs = 0
	c.lapCounter = 0
	c.laps = nil

	c.display.ShowTime(ZeroTime)
	c.lapList.Clear(NoLapsPlaceholder)
	c.controls.SetButtons(ResetButtons)
	return wasRunning
}

// RecordLap records the current elapsed time as the newest lap.  While stopped this method
// returns false and changes nothing.
func (c *Core) RecordLap() (Lap, bool) {
	if !c.running {
		return Lap{}, false
	}

	c.lapCounter++
	lap := Lap{Index: c.lapCounter, ElapsedMs: c.elapsedMs}
	c.laps = append([]Lap{lap}, c.laps...)
	c.lapList.AddLap(lap.Index, FormatTime(lap.ElapsedMs))
	return lap, true
}
