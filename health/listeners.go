// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"net/http"

	"github.com/xmidt-org/stopwatch/stopwatch"
	"github.com/xmidt-org/stopwatch/viewer"
)

// OnStopwatchEvent counts stopwatch transitions.  It is a stopwatch.Listener.
func (h *Health) OnStopwatchEvent(e *stopwatch.Event) {
	switch e.Type {
	case stopwatch.Started:
		h.SendEvent(Inc(StopwatchStarts, 1))
	case stopwatch.Paused:
		h.SendEvent(Inc(StopwatchPauses, 1))
	case stopwatch.Reset:
		h.SendEvent(Inc(StopwatchResets, 1))
	case stopwatch.LapRecorded:
		h.SendEvent(Inc(LapsRecorded, 1))
	}
}

// OnViewerEvent tracks connected viewers.  It is a viewer.Listener.
func (h *Health) OnViewerEvent(e *viewer.Event) {
	switch e.Type {
	case viewer.Connect:
		h.SendEvent(func(stats Stats) {
			stats[ViewersConnected]++
			stats[TotalViewerConnects]++
		})

	case viewer.Disconnect:
		h.SendEvent(Inc(ViewersConnected, -1))
	}
}

// Decorate is an alice-style constructor that counts each request and its outcome
func (h *Health) Decorate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		h.SendEvent(Inc(TotalRequestsReceived, 1))

		wrapped := Wrap(response)
		next.ServeHTTP(wrapped, request)

		if statusCode := wrapped.StatusCode(); statusCode < 400 {
			h.SendEvent(Inc(TotalRequestSuccessfullyServiced, 1))
		} else {
			h.SendEvent(Inc(TotalRequestDenied, 1))
		}
	})
}
