// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package wire defines the messages exchanged with a page viewing the stopwatch.

Outbound Messages mirror the updates the page applies to itself: the display text, lap entries,
the lap list placeholder, button states, and theme classes.  Inbound Commands carry button clicks
and theme selections.  Both are encoded as JSON or, for viewers that negotiate the msgpack
websocket subprotocol, as Msgpack.
*/
package wire
