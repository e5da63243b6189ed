// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"fmt"
	"sync"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider is a Prometheus-specific version of go-kit's metrics.Provider.  Use this interface
// when interacting directly with Prometheus.
type PrometheusProvider interface {
	NewCounterVec(string) *prometheus.CounterVec
	NewGaugeVec(string) *prometheus.GaugeVec
	NewHistogramVec(string) *prometheus.HistogramVec
}

// Registry is the core abstraction for this package.  It is a Prometheus registry and a go-kit metrics.Provider all in one.
//
// For any metric that is already defined the provider returns a new go-kit wrapper for that metric.  New ad hoc
// metrics are created without labels, cached, and returned by subsequent calls to the Provider methods.
type Registry interface {
	PrometheusProvider
	provider.Provider
	prometheus.Gatherer
	prometheus.Registerer
}

type registry struct {
	*prometheus.Registry

	namespace string
	subsystem string

	lock  sync.Mutex
	cache map[string]prometheus.Collector
}

// lookup returns the cached collector with the given name, creating and registering
// a new one with the factory if necessary
func (r *registry) lookup(name string, factory func() prometheus.Collector) prometheus.Collector {
	r.lock.Lock()
	defer r.lock.Unlock()

	if existing, ok := r.cache[name]; ok {
		return existing
	}

	c := factory()
	if err := r.Registry.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			c = already.ExistingCollector
		} else {
			panic(err)
		}
	}

	r.cache[name] = c
	return c
}

func (r *registry) NewCounterVec(name string) *prometheus.CounterVec {
	c := r.lookup(name, func() prometheus.Collector {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: r.namespace,
			Subsystem: r.subsystem,
			Name:      name,
			Help:      name,
		}, []string{})
	})

	counterVec, ok := c.(*prometheus.CounterVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a counter", name))
	}

	return counterVec
}

func (r *registry) NewCounter(name string) metrics.Counter {
	return gokitprometheus.NewCounter(r.NewCounterVec(name))
}

func (r *registry) NewGaugeVec(name string) *prometheus.GaugeVec {
	c := r.lookup(name, func() prometheus.Collector {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: r.namespace,
			Subsystem: r.subsystem,
			Name:      name,
			Help:      name,
		}, []string{})
	})

	gaugeVec, ok := c.(*prometheus.GaugeVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a gauge", name))
	}

	return gaugeVec
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	return gokitprometheus.NewGauge(r.NewGaugeVec(name))
}

func (r *registry) NewHistogramVec(name string) *prometheus.HistogramVec {
	c := r.lookup(name, func() prometheus.Collector {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: r.namespace,
			Subsystem: r.subsystem,
			Name:      name,
			Help:      name,
		}, []string{})
	})

	histogramVec, ok := c.(*prometheus.HistogramVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a histogram", name))
	}

	return histogramVec
}

// NewHistogram returns a go-kit wrapper for either a histogram or a summary.  The buckets
// parameter is ignored, as buckets come from the preregistered Metric.
func (r *registry) NewHistogram(name string, _ int) metrics.Histogram {
	r.lock.Lock()
	existing, ok := r.cache[name]
	r.lock.Unlock()

	if ok {
		switch vec := existing.(type) {
		case *prometheus.HistogramVec:
			return gokitprometheus.NewHistogram(vec)
		case *prometheus.SummaryVec:
			return gokitprometheus.NewSummary(vec)
		default:
			panic(fmt.Errorf("the metric %s is not a histogram or summary", name))
		}
	}

	return gokitprometheus.NewHistogram(r.NewHistogramVec(name))
}

func (r *registry) Stop() {
}

// NewRegistry creates a Registry with the merged metrics from the given modules and the
// options' own Metrics preregistered.  Each preregistered metric is cached by its simple Name.
func NewRegistry(o *Options, modules ...Module) (Registry, error) {
	merger := NewMerger(o.namespace(), o.subsystem()).
		AddModules(false, modules...).
		AddMetrics(true, o.Module())

	if err := merger.Err(); err != nil {
		return nil, err
	}

	r := &registry{
		Registry:  o.registry(),
		namespace: o.namespace(),
		subsystem: o.subsystem(),
		cache:     make(map[string]prometheus.Collector),
	}

	for fqn, m := range merger.Merged() {
		if _, ok := r.cache[m.Name]; ok {
			return nil, fmt.Errorf("metric %s reuses the name %s", fqn, m.Name)
		}

		c, err := NewCollector(m)
		if err != nil {
			return nil, err
		}

		if err := r.Registry.Register(c); err != nil {
			return nil, fmt.Errorf("error while preregistering metric %s: %s", fqn, err)
		}

		r.cache[m.Name] = c
	}

	return r, nil
}
