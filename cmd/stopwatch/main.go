// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/spf13/pflag"
	"github.com/xmidt-org/stopwatch/logging"
	"github.com/xmidt-org/stopwatch/server"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const (
	applicationName = "stopwatch"

	// stopMargin is the extra time fx allows beyond the configured shutdown timeout
	stopMargin = 5 * time.Second
)

var errShutdownTimeout = errors.New("timed out waiting for shutdown")

// newApp assembles the service.  The extra options allow callers to populate or decorate components.
func newApp(c Config, extra ...fx.Option) *fx.App {
	options := []fx.Option{
		fx.Supply(c),
		fx.StopTimeout(c.shutdownTimeout() + stopMargin),
		fx.WithLogger(func(z *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: z.Named("fx")}
		}),
		fx.Provide(
			provideWriter,
			provideZap,
			provideLogger,
			provideRegistry,
			provideHealth,
			provideWidget,
			provideViewers,
			provideServer,
		),
		fx.Invoke(start),
	}

	return fx.New(append(options, extra...)...)
}

// start runs every lifecycle participant, then fires the page's load trigger
func start(lc fx.Lifecycle, c Config, p components) {
	var stop func(time.Duration) bool
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			_, stop, err = server.Execute(server.RunnableSet{p.Health, p.Widget, p.Server})
			if err != nil {
				stop(c.shutdownTimeout())
				return err
			}

			if err = p.Widget.Init(ctx); err != nil {
				stop(c.shutdownTimeout())
			}

			return err
		},
		OnStop: func(ctx context.Context) error {
			p.Viewers.Close()

			timeout := c.shutdownTimeout()
			if deadline, ok := ctx.Deadline(); ok {
				// a nonpositive timeout would wait forever
				timeout = max(time.Until(deadline), time.Millisecond)
			}

			if !stop(timeout) {
				return errShutdownTimeout
			}

			return nil
		},
	})
}

func run(arguments []string) int {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	server.ConfigureFlagSet(applicationName, fs)

	v, err := server.Initialize(applicationName, arguments, fs, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to initialize viper: %s\n", err)
		return 1
	}

	c, err := newConfig(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to unmarshal configuration: %s\n", err)
		return 1
	}

	var logger log.Logger
	app := newApp(c, fx.Populate(&logger))
	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to assemble %s: %s\n", applicationName, err)
		return 1
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		logging.Error(logger).Log(logging.MessageKey(), "unable to start", logging.ErrorKey(), err)
		return 2
	}

	signals := make(chan os.Signal, 10)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	s := server.SignalWait(logger, signals, os.Interrupt, syscall.SIGTERM)
	logging.Info(logger).Log(logging.MessageKey(), "exiting due to signal", "signal", s)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		logging.Error(logger).Log(logging.MessageKey(), "unclean shutdown", logging.ErrorKey(), err)
		return 3
	}

	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
