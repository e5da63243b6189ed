// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/go-kit/log"
	"github.com/xmidt-org/stopwatch/logging"
	"github.com/xmidt-org/stopwatch/widget"
)

// Options configures the HTTP surface
type Options struct {
	// SocketPath is the route of the viewer websocket.  If unset, widget.DefaultSocketPath is used.
	SocketPath string

	// Headers are written into every response
	Headers http.Header

	// MaxLaps caps the number of laps returned by a single laps request.  If unset, all laps are returned.
	MaxLaps int

	// Logger is the go-kit logger.  If unset, logging.DefaultLogger() is used.
	Logger log.Logger `json:"-"`
}

func (o *Options) socketPath() string {
	if o != nil && len(o.SocketPath) > 0 {
		return o.SocketPath
	}

	return widget.DefaultSocketPath
}

func (o *Options) headers() http.Header {
	if o != nil {
		return o.Headers
	}

	return nil
}

func (o *Options) maxLaps() int {
	if o != nil && o.MaxLaps > 0 {
		return o.MaxLaps
	}

	return 0
}

func (o *Options) logger() log.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}

	return logging.DefaultLogger()
}
