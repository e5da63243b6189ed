// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package health keeps a small set of counters describing the stopwatch service: stopwatch
operations, viewer traffic, HTTP requests, and memory utilization.  The counters are owned by a
single goroutine and are served as JSON.
*/
package health
