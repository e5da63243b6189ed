// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clocktest

import (
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xmidt-org/stopwatch/clock"
)

// Mock is a stretchr mock for a clock.  In addition to implementing clock.Interface and supplying
// mock behavior, other methods that make mocking a bit easier are supplied.
type Mock struct {
	mock.Mock
}

var _ clock.Interface = (*Mock)(nil)

func (m *Mock) Now() time.Time {
	return m.Called().Get(0).(time.Time)
}

func (m *Mock) OnNow(v time.Time) *mock.Call {
	return m.On("Now").Return(v)
}

func (m *Mock) NewTicker(d time.Duration) clock.Ticker {
	return m.Called(d).Get(0).(clock.Ticker)
}

func (m *Mock) OnNewTicker(d time.Duration, t clock.Ticker) *mock.Call {
	return m.On("NewTicker", d).Return(t)
}

// MockTicker is a stretchr mock for the clock.Ticker interface
type MockTicker struct {
	mock.Mock
}

var _ clock.Ticker = (*MockTicker)(nil)

func (m *MockTicker) C() <-chan time.Time {
	return m.Called().Get(0).(<-chan time.Time)
}

func (m *MockTicker) OnC(c <-chan time.Time) *mock.Call {
	return m.On("C").Return(c)
}

func (m *MockTicker) Stop() {
	m.Called()
}

func (m *MockTicker) OnStop() *mock.Call {
	return m.On("Stop")
}
