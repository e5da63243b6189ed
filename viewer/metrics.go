// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/stopwatch/xmetrics"
)

const (
	ViewerGauge               = "viewer_count"
	ConnectCounter            = "viewer_connect_count"
	DisconnectCounter         = "viewer_disconnect_count"
	DroppedCounter            = "viewer_dropped_message_count"
	ViewerLimitReachedCounter = "viewer_limit_reached_count"
	CommandCounter            = "viewer_command_count"

	OutcomeLabel = "outcome"
	Accepted     = "accepted"
	Rejected     = "rejected"
)

// Metrics is the viewer module function that adds the viewer metrics
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: ViewerGauge,
			Type: xmetrics.GaugeType,
			Help: "The number of connected viewers",
		},
		{
			Name: ConnectCounter,
			Type: xmetrics.CounterType,
		},
		{
			Name: DisconnectCounter,
			Type: xmetrics.CounterType,
		},
		{
			Name: DroppedCounter,
			Type: xmetrics.CounterType,
			Help: "The number of updates dropped because a viewer's queue was full",
		},
		{
			Name: ViewerLimitReachedCounter,
			Type: xmetrics.CounterType,
		},
		{
			Name:       CommandCounter,
			Type:       xmetrics.CounterType,
			Help:       "The number of commands received from viewers",
			LabelNames: []string{OutcomeLabel},
		},
	}
}

// Measures holds the viewer metric objects for runtime consumption
type Measures struct {
	Viewers      metrics.Gauge
	Connect      metrics.Counter
	Disconnect   metrics.Counter
	Dropped      metrics.Counter
	LimitReached metrics.Counter
	Commands     metrics.Counter
}

// NewMeasures constructs a Measures given a go-kit metrics Provider
func NewMeasures(p provider.Provider) Measures {
	return Measures{
		Viewers:      p.NewGauge(ViewerGauge),
		Connect:      p.NewCounter(ConnectCounter),
		Disconnect:   p.NewCounter(DisconnectCounter),
		Dropped:      p.NewCounter(DroppedCounter),
		LimitReached: p.NewCounter(ViewerLimitReachedCounter),
		Commands:     p.NewCounter(CommandCounter),
	}
}
