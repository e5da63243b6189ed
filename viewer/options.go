// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"time"

	"github.com/go-kit/kit/metrics/provider"
	"github.com/go-kit/log"
	"github.com/xmidt-org/stopwatch/logging"
)

const (
	DefaultIdlePeriod     time.Duration = 135 * time.Second
	DefaultWriteTimeout   time.Duration = 60 * time.Second
	DefaultPingPeriod     time.Duration = 45 * time.Second
	DefaultCommandTimeout time.Duration = 5 * time.Second

	DefaultReadBufferSize  = 0
	DefaultWriteBufferSize = 0
	DefaultQueueSize       = 100
	DefaultMaxFrameSize    = 4096
)

// Options represent the available configuration options for a Manager
type Options struct {
	// HandshakeTimeout is the optional websocket handshake timeout.  If not supplied,
	// the internal gorilla default is used.
	HandshakeTimeout time.Duration

	// ReadBufferSize is the optional size of websocket read buffers.
	ReadBufferSize int

	// WriteBufferSize is the optional size of websocket write buffers.
	WriteBufferSize int

	// MaxViewers is the maximum number of concurrent viewers.  If unset (i.e. zero), there is no limit.
	MaxViewers int

	// QueueSize is the capacity of each viewer's outbound queue.  If not supplied, DefaultQueueSize is used.
	QueueSize int

	// MaxFrameSize is the largest inbound frame accepted from a page.  If not supplied, DefaultMaxFrameSize is used.
	MaxFrameSize int64

	// PingPeriod is the time between pings sent to each viewer
	PingPeriod time.Duration

	// IdlePeriod is the length of time a viewer connection is allowed to be idle,
	// with no traffic or pongs coming from the page.  If not supplied, DefaultIdlePeriod is used.
	IdlePeriod time.Duration

	// WriteTimeout is the write timeout for each viewer's websocket.  If not supplied,
	// DefaultWriteTimeout is used.
	WriteTimeout time.Duration

	// CommandTimeout bounds how long a single inbound command may wait on the stopwatch.
	// If not supplied, DefaultCommandTimeout is used.
	CommandTimeout time.Duration

	// AllowAnyOrigin disables the same-origin check on websocket upgrades
	AllowAnyOrigin bool

	// Logger is the output sink for log messages.  If not supplied, log output
	// is sent to logging.DefaultLogger().
	Logger log.Logger `json:"-"`

	// MetricsProvider supplies the viewer metrics.  If unset, a discard provider is used.
	MetricsProvider provider.Provider `json:"-"`

	// Listeners receive connect and disconnect events
	Listeners []Listener `json:"-"`
}

func (o *Options) handshakeTimeout() time.Duration {
	if o != nil {
		return o.HandshakeTimeout
	}

	return 0
}

func (o *Options) readBufferSize() int {
	if o != nil && o.ReadBufferSize > 0 {
		return o.ReadBufferSize
	}

	return DefaultReadBufferSize
}

func (o *Options) writeBufferSize() int {
	if o != nil && o.WriteBufferSize > 0 {
		return o.WriteBufferSize
	}

	return DefaultWriteBufferSize
}

func (o *Options) maxViewers() int {
	if o != nil && o.MaxViewers > 0 {
		return o.MaxViewers
	}

	return 0
}

func (o *Options) queueSize() int {
	if o != nil && o.QueueSize > 0 {
		return o.QueueSize
	}

	return DefaultQueueSize
}

func (o *Options) maxFrameSize() int64 {
	if o != nil && o.MaxFrameSize > 0 {
		return o.MaxFrameSize
	}

	return DefaultMaxFrameSize
}

func (o *Options) pingPeriod() time.Duration {
	if o != nil && o.PingPeriod > 0 {
		return o.PingPeriod
	}

	return DefaultPingPeriod
}

func (o *Options) idlePeriod() time.Duration {
	if o != nil && o.IdlePeriod > 0 {
		return o.IdlePeriod
	}

	return DefaultIdlePeriod
}

func (o *Options) writeTimeout() time.Duration {
	if o != nil && o.WriteTimeout > 0 {
		return o.WriteTimeout
	}

	return DefaultWriteTimeout
}

func (o *Options) commandTimeout() time.Duration {
	if o != nil && o.CommandTimeout > 0 {
		return o.CommandTimeout
	}

	return DefaultCommandTimeout
}

func (o *Options) allowAnyOrigin() bool {
	return o != nil && o.AllowAnyOrigin
}

func (o *Options) logger() log.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}

	return logging.DefaultLogger()
}

func (o *Options) metricsProvider() provider.Provider {
	if o != nil && o.MetricsProvider != nil {
		return o.MetricsProvider
	}

	return provider.NewDiscardProvider()
}

func (o *Options) listener() Listener {
	if o != nil {
		return Listeners(o.Listeners...)
	}

	return Listeners()
}
