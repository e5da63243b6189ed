// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package stopwatch

// NoLapsPlaceholder is the lap list text shown when no laps have been recorded
const NoLapsPlaceholder = "No laps recorded yet."

// Display receives the formatted elapsed time on every tick and on reset
type Display interface {
	ShowTime(formatted string)
}

// DisplayFunc is a function type that implements Display
type DisplayFunc func(string)

func (f DisplayFunc) ShowTime(formatted string) {
	f(formatted)
}

// LapList receives lap entries.  AddLap places the new entry above all earlier entries.
type LapList interface {
	AddLap(number int, formatted string)
	Clear(placeholder string)
}

// Buttons holds the enabled state of the four controls.  A true value means enabled.
type Buttons struct {
	Start bool `json:"start"`
	Pause bool `json:"pause"`
	Reset bool `json:"reset"`
	Lap   bool `json:"lap"`
}

// The control states emitted on each transition.  Pausing leaves Reset enabled even when
// nothing has elapsed.
var (
	RunningButtons = Buttons{Start: false, Pause: true, Reset: true, Lap: true}
	PausedButtons  = Buttons{Start: true, Pause: false, Reset: true, Lap: false}
	ResetButtons   = Buttons{Start: true, Pause: false, Reset: false, Lap: false}
)

// Controls receives the enabled state of the controls on every transition
type Controls interface {
	SetButtons(Buttons)
}

// ControlsFunc is a function type that implements Controls
type ControlsFunc func(Buttons)

func (f ControlsFunc) SetButtons(b Buttons) {
	f(b)
}

type nopSink struct{}

func (nopSink) ShowTime(string)    {}
func (nopSink) AddLap(int, string) {}
func (nopSink) Clear(string)       {}
func (nopSink) SetButtons(Buttons) {}
