// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// The metric types a component may declare
const (
	CounterType   = "counter"
	GaugeType     = "gauge"
	HistogramType = "histogram"
	SummaryType   = "summary"
)

// Module supplies the metrics one component owns, e.g. stopwatch.Metrics or viewer.Metrics.
type Module func() []Metric

// Metric declares a collector that the Registry creates up front, so that the stopwatch,
// viewer, and server packages can look their instruments up by name.
type Metric struct {
	// Name is the short name, such as "transition_count".  It must not be empty.
	Name string

	// Type is one of CounterType, GaugeType, HistogramType, or SummaryType.
	Type string

	// Namespace overrides the registry namespace, which is DefaultNamespace unless configured.
	Namespace string

	// Subsystem overrides the registry subsystem.
	Subsystem string

	// Help defaults to Name.
	Help string

	ConstLabels map[string]string

	// LabelNames partitions the collector, e.g. transitions by "op".
	LabelNames []string

	// Buckets applies to histograms only.
	Buckets []float64

	// Objectives and MaxAge apply to summaries only.
	Objectives map[float64]float64
	MaxAge     time.Duration
}

// opts holds the naming common to every collector type
func (m Metric) opts() prometheus.Opts {
	o := prometheus.Opts{
		Namespace:   m.Namespace,
		Subsystem:   m.Subsystem,
		Name:        m.Name,
		Help:        m.Help,
		ConstLabels: prometheus.Labels(m.ConstLabels),
	}

	if len(o.Namespace) == 0 {
		o.Namespace = DefaultNamespace
	}

	if len(o.Help) == 0 {
		o.Help = m.Name
	}

	return o
}

// NewCollector builds the vector collector that m declares.
func NewCollector(m Metric) (prometheus.Collector, error) {
	if len(m.Name) == 0 {
		return nil, errors.New("a metric requires a name")
	}

	o := m.opts()
	switch m.Type {
	case CounterType:
		return prometheus.NewCounterVec(prometheus.CounterOpts(o), m.LabelNames), nil

	case GaugeType:
		return prometheus.NewGaugeVec(prometheus.GaugeOpts(o), m.LabelNames), nil

	case HistogramType:
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   o.Namespace,
			Subsystem:   o.Subsystem,
			Name:        o.Name,
			Help:        o.Help,
			ConstLabels: o.ConstLabels,
			Buckets:     m.Buckets,
		}, m.LabelNames), nil

	case SummaryType:
		return prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace:   o.Namespace,
			Subsystem:   o.Subsystem,
			Name:        o.Name,
			Help:        o.Help,
			ConstLabels: o.ConstLabels,
			Objectives:  m.Objectives,
			MaxAge:      m.MaxAge,
		}, m.LabelNames), nil

	default:
		return nil, fmt.Errorf("metric %s has unsupported type %q", m.Name, m.Type)
	}
}

// Merger collects the metrics of every Module handed to NewRegistry, keyed by fully-qualified name.
type Merger struct {
	defaultNamespace string
	defaultSubsystem string
	merged           map[string]Metric
	err              error
}

// NewMerger returns a Merger that stamps metrics lacking a namespace or subsystem with these.
// An empty namespace means DefaultNamespace.
func NewMerger(defaultNamespace, defaultSubsystem string) *Merger {
	if len(defaultNamespace) == 0 {
		defaultNamespace = DefaultNamespace
	}

	return &Merger{
		defaultNamespace: defaultNamespace,
		defaultSubsystem: defaultSubsystem,
		merged:           make(map[string]Metric),
	}
}

// Merged returns everything added so far
func (mr *Merger) Merged() map[string]Metric {
	return mr.merged
}

// Err returns the first merge failure.  Once set, further additions are ignored.
func (mr *Merger) Err() error {
	return mr.err
}

func (mr *Merger) tryAdd(allowOverride bool, m Metric) bool {
	if mr.err != nil {
		return false
	}

	if len(m.Name) == 0 {
		mr.err = errors.New("names are required for metrics")
		return false
	}

	if len(m.Namespace) == 0 {
		m.Namespace = mr.defaultNamespace
	}

	if len(m.Subsystem) == 0 {
		m.Subsystem = mr.defaultSubsystem
	}

	fqn := prometheus.BuildFQName(m.Namespace, m.Subsystem, m.Name)
	if existing, ok := mr.merged[fqn]; ok {
		if !allowOverride {
			mr.err = fmt.Errorf("duplicate metric with name: %s", fqn)
			return false
		}

		// a metric never overrides one of a different type
		if existing.Type != m.Type {
			mr.err = fmt.Errorf("metric %s was expected to be of type %s, but was of type %s", fqn, existing.Type, m.Type)
			return false
		}
	}

	mr.merged[fqn] = m
	return true
}

// AddMetrics merges configured metrics, such as the Options.Metrics overrides.
func (mr *Merger) AddMetrics(allowOverride bool, m []Metric) *Merger {
	for _, e := range m {
		if !mr.tryAdd(allowOverride, e) {
			break
		}
	}

	return mr
}

// AddModules merges component modules in order, stopping at the first failure.
func (mr *Merger) AddModules(allowOverride bool, m ...Module) *Merger {
	for _, mf := range m {
		for _, e := range mf() {
			if !mr.tryAdd(allowOverride, e) {
				return mr
			}
		}
	}

	return mr
}
