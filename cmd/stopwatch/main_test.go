// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/stopwatch/api"
	"github.com/xmidt-org/stopwatch/logging"
	"github.com/xmidt-org/stopwatch/server"
	"github.com/xmidt-org/stopwatch/stopwatch"
	"github.com/xmidt-org/stopwatch/theme"
	"github.com/xmidt-org/stopwatch/widget"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestNewConfig(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		fs      = pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	)

	server.ConfigureFlagSet(applicationName, fs)
	v, err := server.Initialize(applicationName, []string{"--file", "stopwatch.yaml", "--address", ":9999"}, fs, nil)
	require.NoError(err)

	c, err := newConfig(v)
	require.NoError(err)

	assert.Equal("INFO", c.Log.Level)
	assert.True(c.Log.JSON)
	assert.Equal(":9999", c.Server.Address)
	assert.Equal(10*time.Second, c.Server.ReadHeaderTimeout)
	assert.Equal(15*time.Second, c.shutdownTimeout())
	assert.Equal(time.Minute, c.Health.Interval)
	assert.Equal(10*time.Millisecond, c.Stopwatch.TickPeriod)
	assert.Equal(theme.Default, c.Widget.DefaultTheme)
	assert.Equal("Stopwatch", c.Widget.Title)
	assert.Equal(100, c.Viewer.MaxViewers)
	assert.Equal(5*time.Second, c.Viewer.CommandTimeout)
	assert.Equal(1000, c.API.MaxLaps)
	// viper lowercases keys; the api canonicalizes them
	assert.Equal([]string{"stopwatch"}, c.API.Headers["x-stopwatch-server"])
}

func TestShutdownTimeout(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(server.DefaultShutdownTimeout, Config{}.shutdownTimeout())
	assert.Equal(time.Second, Config{Server: server.ServerOptions{ShutdownTimeout: time.Second}}.shutdownTimeout())
}

func TestApp(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		primary *server.Server
		c       = Config{
			Log:    logging.Options{Level: "ERROR"},
			Server: server.ServerOptions{Address: "127.0.0.1:0", ShutdownTimeout: 5 * time.Second},
			Widget: widget.Options{DefaultTheme: theme.Dark},
		}

		app = newApp(c, fx.Populate(&primary))
	)

	require.NoError(app.Err())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(app.Start(ctx))
	require.NotNil(primary.Addr())

	base := "http://" + primary.Addr().String()
	response, err := http.Get(base + api.StopwatchPath)
	require.NoError(err)

	var status widget.Status
	err = json.NewDecoder(response.Body).Decode(&status)
	response.Body.Close()
	require.NoError(err)

	assert.Equal(http.StatusOK, response.StatusCode)
	assert.Equal(stopwatch.ZeroTime, status.Time)
	assert.Equal(theme.Dark, status.Theme)
	assert.False(status.State.Running)

	response, err = http.Post(base+api.StopwatchPath+"/start", "", nil)
	require.NoError(err)
	err = json.NewDecoder(response.Body).Decode(&status)
	response.Body.Close()
	require.NoError(err)
	assert.True(status.State.Running)

	response, err = http.Get(base + api.MetricsPath)
	require.NoError(err)
	response.Body.Close()
	assert.Equal(http.StatusOK, response.StatusCode)

	http.DefaultClient.CloseIdleConnections()
	require.NoError(app.Stop(ctx))
}

func TestAppSharesLogWriter(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		file = filepath.Join(t.TempDir(), "stopwatch.log")
		c    = Config{
			Log:    logging.Options{File: file, Level: "INFO"},
			Server: server.ServerOptions{Address: "127.0.0.1:0"},
		}

		writer io.Writer
		logger log.Logger
		zl     *zap.Logger

		app = newApp(c, fx.Populate(&writer, &logger, &zl))
	)

	require.NoError(app.Err())
	rolling, ok := writer.(*lumberjack.Logger)
	require.True(ok)
	defer rolling.Close()

	assert.NoError(logging.Info(logger).Log(logging.MessageKey(), "from go-kit"))
	zl.Info("from zap")

	contents, err := os.ReadFile(file)
	require.NoError(err)
	assert.Contains(string(contents), "from go-kit")
	assert.Contains(string(contents), "from zap")
}
