// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	DefaultNamespace = "stopwatch"
	DefaultSubsystem = ""
)

// Options is the configurable options for creating a Prometheus registry
type Options struct {
	// Namespace is the global default namespace for metrics which don't define a namespace (or for ad hoc metrics).
	// If not supplied, DefaultNamespace is used.
	Namespace string

	// Subsystem is the global default subsystem for metrics which don't define a subsystem (or for ad hoc metrics).
	Subsystem string

	// Pedantic indicates whether the registry is created via NewPedanticRegistry().  Set
	// to true for testing or development.
	Pedantic bool

	// DisableGoCollector controls whether the Go Collector is registered with the Registry.
	DisableGoCollector bool

	// DisableProcessCollector controls whether the Process Collector is registered with the Registry.
	DisableProcessCollector bool

	// ReportProcessCollectorErrors is the value passed to NewProcessCollector via the ProcessCollectorOpts.ReportErrors field
	ReportProcessCollectorErrors bool

	// Metrics defines the set of predefined metrics.  Configured metrics take precedence over any
	// module metric with the same fully-qualified name, as long as the types agree.
	Metrics []Metric
}

func (o *Options) namespace() string {
	if o != nil && len(o.Namespace) > 0 {
		return o.Namespace
	}

	return DefaultNamespace
}

func (o *Options) subsystem() string {
	if o != nil && len(o.Subsystem) > 0 {
		return o.Subsystem
	}

	return DefaultSubsystem
}

func (o *Options) pedantic() bool {
	if o != nil {
		return o.Pedantic
	}

	return false
}

func (o *Options) disableGoCollector() bool {
	if o != nil {
		return o.DisableGoCollector
	}

	return false
}

func (o *Options) disableProcessCollector() bool {
	if o != nil {
		return o.DisableProcessCollector
	}

	return false
}

func (o *Options) reportProcessCollectorErrors() bool {
	if o != nil {
		return o.ReportProcessCollectorErrors
	}

	return false
}

func (o *Options) registry() *prometheus.Registry {
	var pr *prometheus.Registry

	if o.pedantic() {
		pr = prometheus.NewPedanticRegistry()
	} else {
		pr = prometheus.NewRegistry()
	}

	if !o.disableGoCollector() {
		pr.MustRegister(collectors.NewGoCollector())
	}

	if !o.disableProcessCollector() {
		pr.MustRegister(collectors.NewProcessCollector(
			collectors.ProcessCollectorOpts{
				Namespace:    o.namespace(),
				ReportErrors: o.reportProcessCollectorErrors(),
			},
		))
	}

	return pr
}

// Module acts as a metrics module function using the configured metrics.
func (o *Options) Module() []Metric {
	if o != nil {
		return o.Metrics
	}

	return nil
}
