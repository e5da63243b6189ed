// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xmidt-org/stopwatch/api"
	"github.com/xmidt-org/stopwatch/health"
	"github.com/xmidt-org/stopwatch/logging"
	"github.com/xmidt-org/stopwatch/server"
	"github.com/xmidt-org/stopwatch/stopwatch"
	"github.com/xmidt-org/stopwatch/viewer"
	"github.com/xmidt-org/stopwatch/widget"
	"github.com/xmidt-org/stopwatch/xmetrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// components is the set of lifecycle participants
type components struct {
	fx.In

	Health  *health.Health
	Widget  *widget.Widget
	Viewers *viewer.Manager
	Server  *server.Server
}

// provideWriter creates the one log destination shared by every logger
func provideWriter(c Config) io.Writer {
	return logging.NewWriter(&c.Log)
}

func provideZap(c Config, w io.Writer) *zap.Logger {
	return logging.NewZapWithWriter(&c.Log, w)
}

func provideLogger(c Config, w io.Writer) log.Logger {
	return logging.NewWithWriter(&c.Log, w)
}

func provideRegistry(c Config) (xmetrics.Registry, error) {
	return xmetrics.NewRegistry(&c.Metrics, stopwatch.Metrics, viewer.Metrics, server.Metrics)
}

func provideHealth(c Config, logger log.Logger) *health.Health {
	return health.New(c.Health.Interval, logger)
}

func provideWidget(c Config, logger log.Logger, registry xmetrics.Registry, h *health.Health) *widget.Widget {
	so := c.Stopwatch
	so.Logger = logger
	so.MetricsProvider = registry
	so.Listeners = append(so.Listeners, h.OnStopwatchEvent)

	wo := c.Widget
	wo.Logger = logger
	wo.Stopwatch = &so
	return widget.New(&wo)
}

// provideViewers creates the viewer hub and makes it the broadcaster for the widget's view
func provideViewers(c Config, logger log.Logger, registry xmetrics.Registry, h *health.Health, w *widget.Widget) *viewer.Manager {
	vo := c.Viewer
	vo.Logger = logger
	vo.MetricsProvider = registry
	vo.Listeners = append(vo.Listeners, h.OnViewerEvent)

	m := viewer.NewManager(&vo, w.View(), w)
	w.View().SetBroadcaster(m)
	return m
}

func provideServer(c Config, logger log.Logger, registry xmetrics.Registry, h *health.Health, w *widget.Widget, m *viewer.Manager) *server.Server {
	ao := c.API
	ao.Logger = logger
	handler := api.New(&ao, w, m, h, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Handler(h.Decorate)

	so := c.Server
	so.Logger = logger
	return server.NewServer(&so, server.NewMeasures(registry), handler)
}
