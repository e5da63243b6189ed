// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"github.com/go-kit/log"
	"github.com/xmidt-org/stopwatch/logging"
	"github.com/xmidt-org/stopwatch/stopwatch"
	"github.com/xmidt-org/stopwatch/theme"
)

// Options configures a Widget
type Options struct {
	// DefaultTheme is applied by Init.  If unset, theme.Default is used.
	DefaultTheme theme.Theme

	// Title is the page title.  If unset, DefaultTitle is used.
	Title string

	// Stopwatch holds the stopwatch options.  Its sinks are always replaced with the widget's View.
	Stopwatch *stopwatch.Options `json:"-"`

	// Logger is the go-kit logger.  If unset, logging.DefaultLogger() is used.
	Logger log.Logger `json:"-"`
}

func (o *Options) defaultTheme() theme.Theme {
	if o != nil && o.DefaultTheme.Valid() {
		return o.DefaultTheme
	}

	return theme.Default
}

func (o *Options) title() string {
	if o != nil && len(o.Title) > 0 {
		return o.Title
	}

	return DefaultTitle
}

func (o *Options) logger() log.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}

	return logging.DefaultLogger()
}

// stopwatch returns a copy of the stopwatch options with the given view as every sink
func (o *Options) stopwatch(v *View) *stopwatch.Options {
	so := new(stopwatch.Options)
	if o != nil && o.Stopwatch != nil {
		*so = *o.Stopwatch
	}

	so.Display = v
	so.LapList = v
	so.Controls = v
	if so.Logger == nil {
		so.Logger = o.logger()
	}

	return so
}
