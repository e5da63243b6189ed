// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package widget composes the stopwatch and the theme selector into the page-level widget,
// and keeps the server-side model of the page that connected viewers mirror.
package widget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/go-kit/log"
	"github.com/xmidt-org/stopwatch/logging"
	"github.com/xmidt-org/stopwatch/stopwatch"
	"github.com/xmidt-org/stopwatch/theme"
	"github.com/xmidt-org/stopwatch/wire"
)

// ErrUnknownCommand indicates a command name that no operation handles
var ErrUnknownCommand = errors.New("unknown command")

// Status is the complete externally visible state of a widget
type Status struct {
	State   stopwatch.State   `json:"state"`
	Time    string            `json:"time"`
	Buttons stopwatch.Buttons `json:"buttons"`
	Theme   theme.Theme       `json:"theme"`
}

// Widget composes a stopwatch, a theme selector, and the view that both of them update
type Widget struct {
	logger       log.Logger
	defaultTheme theme.Theme
	title        string

	stopwatch *stopwatch.Stopwatch
	selector  *theme.Selector
	view      *View
}

// New creates a Widget.  Nothing is shown until Init is called.
func New(o *Options) *Widget {
	view := NewView()
	return &Widget{
		logger:       o.logger(),
		defaultTheme: o.defaultTheme(),
		title:        o.title(),
		stopwatch:    stopwatch.New(o.stopwatch(view)),
		selector:     theme.NewSelector(view),
		view:         view,
	}
}

func (w *Widget) Stopwatch() *stopwatch.Stopwatch {
	return w.stopwatch
}

func (w *Widget) Selector() *theme.Selector {
	return w.selector
}

func (w *Widget) View() *View {
	return w.view
}

// Run starts the stopwatch's event loop
func (w *Widget) Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) error {
	return w.stopwatch.Run(waitGroup, shutdown)
}

// Init is the load trigger: it resets the stopwatch and then applies the configured default theme
func (w *Widget) Init(ctx context.Context) error {
	if err := w.stopwatch.Reset(ctx); err != nil {
		return err
	}

	if _, err := w.selector.Apply(w.defaultTheme); err != nil {
		return err
	}

	logging.Info(w.logger).Log(logging.MessageKey(), "widget initialized", "theme", w.defaultTheme)
	return nil
}

// Execute carries out a command from a page
func (w *Widget) Execute(ctx context.Context, c wire.Command) error {
	switch c.Command {
	case wire.StartCommand:
		return w.stopwatch.Start(ctx)

	case wire.PauseCommand:
		return w.stopwatch.Pause(ctx)

	case wire.ResetCommand:
		return w.stopwatch.Reset(ctx)

	case wire.LapCommand:
		_, _, err := w.stopwatch.RecordLap(ctx)
		return err

	case wire.ThemeCommand:
		_, err := w.selector.ApplyName(c.Theme)
		return err

	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Command)
	}
}

// Status returns the stopwatch state along with the presentation the view is showing
func (w *Widget) Status(ctx context.Context) (Status, error) {
	state, err := w.stopwatch.State(ctx)
	if err != nil {
		return Status{}, err
	}

	return Status{
		State:   state,
		Time:    state.Formatted(),
		Buttons: w.view.Buttons(),
		Theme:   w.selector.Current(),
	}, nil
}

// Render writes the page for the current view
func (w *Widget) Render(output io.Writer, socketPath string) error {
	return w.view.Render(output, w.title, socketPath)
}
