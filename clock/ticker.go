// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Ticker is the analog of time.Ticker.  Stop cancels the periodic events, but as with
// time.Ticker it does not drain or close the channel.  Consumers that must not observe
// an event after cancellation should stop selecting on C() once Stop is called.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type systemTicker struct {
	*time.Ticker
}

func (st systemTicker) C() <-chan time.Time {
	return st.Ticker.C
}

// WrapTicker wraps a time.Ticker in a clock.Ticker
func WrapTicker(t *time.Ticker) Ticker {
	return systemTicker{t}
}
