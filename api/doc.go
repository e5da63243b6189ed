// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package api exposes a stopwatch widget over HTTP.  The page, the REST operations, the viewer
websocket, health, and metrics are all routed through a single gorilla/mux router.
*/
package api
