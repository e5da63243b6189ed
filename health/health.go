// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/xmidt-org/stopwatch/httperror"
	"github.com/xmidt-org/stopwatch/logging"
)

// DefaultInterval is the default time between stats dispatches to listeners
const DefaultInterval = 60 * time.Second

// ErrStopped is returned when stats are requested from a Health that is no longer running
var ErrStopped = errors.New("the health monitor has been stopped")

// StatsListener receives Stats on regular intervals.
type StatsListener interface {
	// OnStats is called with a copy of the health's stats map
	// at regular intervals.
	OnStats(Stats)
}

// StatsListenerFunc is a function type that implements StatsListener.
type StatsListenerFunc func(Stats)

func (f StatsListenerFunc) OnStats(stats Stats) {
	f(stats)
}

// Health tracks and updates various statistics.  All access to the stats is serialized
// through a single goroutine started by Run.  It also dispatches the stats to one or more
// StatsListeners at regular intervals.
type Health struct {
	stats            Stats
	statDumpInterval time.Duration
	logger           log.Logger
	events           chan HealthFunc
	done             chan struct{}
	statsListeners   []StatsListener
	memInfoReader    *MemInfoReader
	once             sync.Once
}

// New creates a Health object with the given statistics.  A nonpositive interval
// means DefaultInterval, and a nil logger means logging.DefaultLogger().
func New(interval time.Duration, logger log.Logger, options ...Option) *Health {
	if interval <= 0 {
		interval = DefaultInterval
	}

	if logger == nil {
		logger = logging.DefaultLogger()
	}

	return &Health{
		events:           make(chan HealthFunc, 100),
		done:             make(chan struct{}),
		stats:            NewStats(options),
		statDumpInterval: interval,
		logger:           logger,
		memInfoReader:    new(MemInfoReader),
	}
}

// AddStatsListener adds a new listener to this Health.  This method
// is asynchronous.  The listener will eventually receive events, but callers
// should not assume events will be dispatched immediately after this method call.
func (h *Health) AddStatsListener(listener StatsListener) {
	h.SendEvent(func(Stats) {
		h.statsListeners = append(h.statsListeners, listener)
	})
}

// SendEvent dispatches a HealthFunc to the internal event queue.  Events sent after
// the monitor has stopped are discarded.
func (h *Health) SendEvent(healthFunc HealthFunc) {
	select {
	case h.events <- healthFunc:
	case <-h.done:
	}
}

// Run executes this Health object.  This method is idempotent:  once a
// Health object is Run, it cannot be Run again.
func (h *Health) Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) error {
	h.once.Do(func() {
		logging.Debug(h.logger).Log(logging.MessageKey(), "health monitor started")

		waitGroup.Add(1)
		go func() {
			ticker := time.NewTicker(h.statDumpInterval)

			defer waitGroup.Done()
			defer logging.Debug(h.logger).Log(logging.MessageKey(), "health monitor stopped")
			defer close(h.done)
			defer ticker.Stop()

			for {
				select {
				case <-shutdown:
					return

				case hf := <-h.events:
					hf(h.stats)

				case <-ticker.C:
					h.stats.UpdateMemory(h.memInfoReader)
					dispatchStats := h.stats.Clone()
					for _, statsListener := range h.statsListeners {
						statsListener.OnStats(dispatchStats)
					}
				}
			}
		}()
	})

	return nil
}

// Stats returns a copy of the current stats, with memory utilization refreshed
func (h *Health) Stats(ctx context.Context) (Stats, error) {
	result := make(chan Stats, 1)
	h.SendEvent(func(stats Stats) {
		stats.UpdateMemory(h.memInfoReader)
		result <- stats.Clone()
	})

	select {
	case stats := <-result:
		return stats, nil
	case <-h.done:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *Health) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	stats, err := h.Stats(request.Context())
	if err != nil {
		logging.Error(h.logger).Log(logging.MessageKey(), "could not obtain stats", logging.ErrorKey(), err)
		httperror.WriteMessage(response, err.Error(), http.StatusServiceUnavailable, nil)
		return
	}

	body, err := json.Marshal(stats)
	if err != nil {
		logging.Error(h.logger).Log(logging.MessageKey(), "could not marshal stats", logging.ErrorKey(), err)
		httperror.WriteMessage(response, err.Error(), http.StatusInternalServerError, nil)
		return
	}

	response.Header().Set("Content-Type", "application/json")
	response.Write(body)
}
