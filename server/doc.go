// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package server holds the process plumbing for the stopwatch service: command line and file
configuration, the instrumented HTTP server, and the Runnable lifecycle shared by every
long-lived component.
*/
package server
