// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package stopwatch implements the elapsed-time state machine of the widget and the event loop that drives it.

Core is the synchronous state machine.  It owns a single State, reads time only through a clock.Interface,
and reports every visible change through the Display, LapList, and Controls sinks.  Core is not safe for
concurrent use.

Stopwatch owns a Core and serializes every operation, including each periodic tick, through one goroutine.
Starting creates a clock.Ticker, and pausing or resetting stops that ticker within the same event, so no tick
is ever applied once the state is stopped.
*/
package stopwatch
