// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package viewer is the websocket hub for pages viewing the stopwatch.

Each browser page is one viewer with its own websocket connection.  A viewer receives a snapshot of the page
first, then every broadcast update in order.  Each viewer has a bounded outbound queue, and a viewer that
cannot keep up is disconnected rather than allowed to slow down the stopwatch.  Frames sent by a page are
decoded as commands and passed to a CommandHandler.
*/
package viewer
