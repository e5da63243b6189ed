// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"time"

	"github.com/spf13/viper"
	"github.com/xmidt-org/stopwatch/api"
	"github.com/xmidt-org/stopwatch/logging"
	"github.com/xmidt-org/stopwatch/server"
	"github.com/xmidt-org/stopwatch/stopwatch"
	"github.com/xmidt-org/stopwatch/theme"
	"github.com/xmidt-org/stopwatch/viewer"
	"github.com/xmidt-org/stopwatch/widget"
	"github.com/xmidt-org/stopwatch/xmetrics"
	"github.com/xmidt-org/stopwatch/xviper"
)

// HealthConfig configures the health monitor
type HealthConfig struct {
	// Interval is the time between stats dispatches.  If unset, health.DefaultInterval is used.
	Interval time.Duration
}

// Config is the complete service configuration, as unmarshalled from viper
type Config struct {
	Log       logging.Options
	Metrics   xmetrics.Options
	Server    server.ServerOptions
	Health    HealthConfig
	Stopwatch stopwatch.Options
	Widget    widget.Options
	Viewer    viewer.Options
	API       api.Options
}

func (c Config) shutdownTimeout() time.Duration {
	if c.Server.ShutdownTimeout > 0 {
		return c.Server.ShutdownTimeout
	}

	return server.DefaultShutdownTimeout
}

// newConfig unmarshals the service configuration.  Durations and themes may be written as strings.
func newConfig(v *viper.Viper) (Config, error) {
	var c Config
	err := xviper.Unmarshal(v, xviper.DecodeHook(theme.DecodeHook()), &c)
	return c, err
}
