// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

import "time"

const (
	// DefaultServerName is the application name used for configuration lookup and logging
	DefaultServerName = "stopwatch"

	// DefaultAddress is the listen address of the primary server
	DefaultAddress = ":8080"

	// DefaultShutdownTimeout bounds how long the server waits for in-flight requests when stopping
	DefaultShutdownTimeout time.Duration = 15 * time.Second

	FileFlag    = "file"
	NameFlag    = "name"
	AddressFlag = "address"
	DebugFlag   = "debug"

	// AddressKey is the configuration key bound to the address flag
	AddressKey = "server.address"
)
