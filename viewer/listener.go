// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"time"

	"github.com/xmidt-org/stopwatch/wire"
)

// EventType is the type of viewer-related event
type EventType uint8

const (
	Connect EventType = iota
	Disconnect

	InvalidEventString string = "!!INVALID VIEWER EVENT TYPE!!"
)

func (et EventType) String() string {
	switch et {
	case Connect:
		return "Connect"
	case Disconnect:
		return "Disconnect"
	default:
		return InvalidEventString
	}
}

// Event describes a viewer arriving or leaving
type Event struct {
	Type        EventType
	ID          ID
	Format      wire.Format
	ConnectedAt time.Time

	// Error is the reason for a Disconnect, if any
	Error error
}

// Listener receives viewer events
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
