// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNewCollectorMissingName(t *testing.T) {
	assert := assert.New(t)
	c, err := NewCollector(Metric{Type: CounterType})
	assert.Nil(c)
	assert.Error(err)
}

func testNewCollectorUnsupportedType(t *testing.T) {
	assert := assert.New(t)
	c, err := NewCollector(Metric{Name: "test", Type: "unsupported"})
	assert.Nil(c)
	assert.Error(err)
}

func testNewCollector(t *testing.T, metricType string, expected prometheus.Collector) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		c, err  = NewCollector(Metric{Name: "test", Type: metricType, LabelNames: []string{"op"}})
	)

	require.NoError(err)
	require.NotNil(c)
	assert.IsType(expected, c)
}

func TestNewCollector(t *testing.T) {
	t.Run("MissingName", testNewCollectorMissingName)
	t.Run("UnsupportedType", testNewCollectorUnsupportedType)
	t.Run("Counter", func(t *testing.T) { testNewCollector(t, CounterType, new(prometheus.CounterVec)) })
	t.Run("Gauge", func(t *testing.T) { testNewCollector(t, GaugeType, new(prometheus.GaugeVec)) })
	t.Run("Histogram", func(t *testing.T) { testNewCollector(t, HistogramType, new(prometheus.HistogramVec)) })
	t.Run("Summary", func(t *testing.T) { testNewCollector(t, SummaryType, new(prometheus.SummaryVec)) })
}

func TestNewCollectorDefaults(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		descs  = make(chan *prometheus.Desc, 1)
		c, err = NewCollector(Metric{Name: "transition_count", Type: CounterType, LabelNames: []string{"op"}})
	)

	require.NoError(err)
	c.Describe(descs)
	desc := (<-descs).String()
	assert.Contains(desc, `fqName: "stopwatch_transition_count"`)
	assert.Contains(desc, `help: "transition_count"`)
}

func TestMerger(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var (
			assert = assert.New(t)
			merger = NewMerger("", "timer").
				AddMetrics(false, []Metric{{Name: "counter", Type: CounterType}}).
				AddModules(true, func() []Metric { return []Metric{{Name: "counter", Type: CounterType, Help: "overridden"}} })
		)

		assert.NoError(merger.Err())
		if assert.Len(merger.Merged(), 1) {
			m := merger.Merged()["stopwatch_timer_counter"]
			assert.Equal("overridden", m.Help)
			assert.Equal(DefaultNamespace, m.Namespace)
		}
	})

	t.Run("MissingName", func(t *testing.T) {
		merger := NewMerger("", "").AddMetrics(false, []Metric{{Type: CounterType}})
		assert.Error(t, merger.Err())
	})

	t.Run("Duplicate", func(t *testing.T) {
		merger := NewMerger("", "").
			AddMetrics(false, []Metric{{Name: "counter", Type: CounterType}}).
			AddMetrics(false, []Metric{{Name: "counter", Type: CounterType}})

		assert.Error(t, merger.Err())
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		merger := NewMerger("", "").
			AddMetrics(false, []Metric{{Name: "counter", Type: CounterType}}).
			AddMetrics(true, []Metric{{Name: "counter", Type: GaugeType}})

		assert.Error(t, merger.Err())
		merger.AddMetrics(false, []Metric{{Name: "another", Type: GaugeType}})
		assert.Len(t, merger.Merged(), 1)
	})
}
