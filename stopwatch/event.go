// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package stopwatch

// EventType is the kind of stopwatch transition
type EventType uint8

const (
	Started EventType = iota
	Paused
	Reset
	LapRecorded

	InvalidEventString string = "!!INVALID STOPWATCH EVENT TYPE!!"
)

func (et EventType) String() string {
	switch et {
	case Started:
		return "Started"
	case Paused:
		return "Paused"
	case Reset:
		return "Reset"
	case LapRecorded:
		return "LapRecorded"
	default:
		return InvalidEventString
	}
}

// Event describes a transition that actually happened.  No-op operations produce no events.
type Event struct {
	// Type describes the kind of this event.  This field is always set.
	Type EventType

	// State is the stopwatch state after the transition
	State State

	// Lap is the lap just recorded.  This field is only set for LapRecorded events.
	Lap Lap
}

// Listener receives stopwatch events.  Listeners run on the stopwatch's event loop, so they
// must not block and must never call back into the Stopwatch.
type Listener func(*Event)

func defaultListener(*Event) {}

// Listeners aggregates multiple listeners into one.  If this
// function is passed zero (0) listeners, an internal default is used instead.
func Listeners(listeners ...Listener) Listener {
	if len(listeners) > 0 {
		return func(e *Event) {
			for _, l := range listeners {
				l(e)
			}
		}
	}

	return defaultListener
}
