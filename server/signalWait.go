// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"os"

	"github.com/go-kit/log"
	"github.com/xmidt-org/stopwatch/logging"
)

// SignalWait blocks until one of the waitOn signals arrives, returning that signal.  Any
// other signal is logged and ignored.  If signals is closed, this function returns nil.
func SignalWait(logger log.Logger, signals <-chan os.Signal, waitOn ...os.Signal) os.Signal {
	filter := make(map[os.Signal]bool, len(waitOn))
	for _, s := range waitOn {
		filter[s] = true
	}

	for s := range signals {
		if filter[s] {
			return s
		}

		logging.Info(logger).Log(logging.MessageKey(), "ignoring signal", "signal", s.String())
	}

	return nil
}
