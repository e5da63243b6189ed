// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package stopwatch

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/stopwatch/xmetrics"
)

const (
	TransitionCounter     = "transition_count"
	TickCounter           = "tick_count"
	ElapsedGauge          = "elapsed_seconds"
	LapGauge              = "lap_count"
	TickIntervalHistogram = "tick_interval_seconds"

	OpLabel = "op"
)

// Metrics is the stopwatch module function that adds the stopwatch metrics
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name:       TransitionCounter,
			Type:       xmetrics.CounterType,
			Help:       "The number of state transitions, by operation",
			LabelNames: []string{OpLabel},
		},
		{
			Name: TickCounter,
			Type: xmetrics.CounterType,
			Help: "The number of ticks applied while running",
		},
		{
			Name: ElapsedGauge,
			Type: xmetrics.GaugeType,
			Help: "The elapsed time as of the last tick or reset",
		},
		{
			Name: LapGauge,
			Type: xmetrics.GaugeType,
			Help: "The number of recorded laps",
		},
		{
			Name:    TickIntervalHistogram,
			Type:    xmetrics.HistogramType,
			Help:    "The observed interval between consecutive ticks",
			Buckets: []float64{0.005, 0.01, 0.015, 0.02, 0.05, 0.1, 0.5},
		},
	}
}

// Measures holds the stopwatch metric objects for runtime consumption
type Measures struct {
	Transitions  metrics.Counter
	Ticks        metrics.Counter
	Elapsed      metrics.Gauge
	Laps         metrics.Gauge
	TickInterval metrics.Histogram
}

// NewMeasures constructs a Measures given a go-kit metrics Provider
func NewMeasures(p provider.Provider) Measures {
	return Measures{
		Transitions:  p.NewCounter(TransitionCounter),
		Ticks:        p.NewCounter(TickCounter),
		Elapsed:      p.NewGauge(ElapsedGauge),
		Laps:         p.NewGauge(LapGauge),
		TickInterval: p.NewHistogram(TickIntervalHistogram, 0),
	}
}
