// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"

	"github.com/go-kit/kit/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xmidt-org/stopwatch/xmetrics"
)

const (
	APIRequestCounter     = "api_requests_total"
	InFlightGauge         = "in_flight_requests"
	ActiveConnectionGauge = "active_connections"
	RequestDuration       = "request_duration_seconds"

	ServerLabel = "server"
)

// Metrics is the module function for this package that adds the request handling metrics.
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name:       APIRequestCounter,
			Type:       xmetrics.CounterType,
			Help:       "A counter for requests to the handler",
			LabelNames: []string{"code", "method"},
		},
		{
			Name: InFlightGauge,
			Type: xmetrics.GaugeType,
			Help: "A gauge of requests currently being served by the handler.",
		},
		{
			Name:       ActiveConnectionGauge,
			Type:       xmetrics.GaugeType,
			Help:       "The number of active connections associated with a listener",
			LabelNames: []string{ServerLabel},
		},
		{
			Name:    RequestDuration,
			Type:    xmetrics.HistogramType,
			Help:    "A histogram of latencies for requests.",
			Buckets: []float64{.0025, .01, .05, .25, .5, 1, 2.5},
		},
	}
}

// Measures is the set of request handling metrics
type Measures struct {
	Requests          *prometheus.CounterVec
	InFlight          prometheus.Gauge
	RequestDuration   prometheus.ObserverVec
	ActiveConnections metrics.Gauge
}

// NewMeasures obtains the request metrics from a registry that includes this package's Metrics module
func NewMeasures(r xmetrics.Registry) Measures {
	return Measures{
		Requests:          r.NewCounterVec(APIRequestCounter),
		InFlight:          r.NewGaugeVec(InFlightGauge).WithLabelValues(),
		RequestDuration:   r.NewHistogramVec(RequestDuration),
		ActiveConnections: r.NewGauge(ActiveConnectionGauge),
	}
}

// InstrumentHandler decorates next with the request metrics
func InstrumentHandler(m Measures, next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerInFlight(
		m.InFlight,
		promhttp.InstrumentHandlerDuration(
			m.RequestDuration,
			promhttp.InstrumentHandlerCounter(m.Requests, next),
		),
	)
}
