// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"errors"
	"testing"

	"github.com/go-kit/kit/metrics/generic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/stopwatch/logging"
)

func testInstrumentListenerClose(t *testing.T, closeError error) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		logger   = logging.NewTestLogger(nil, t)
		gauge    = generic.NewGauge("test")
		delegate = new(mockListener)
		listener = InstrumentListener(logger, gauge, delegate)
	)

	require.NotNil(listener)
	delegate.On("Close").Return(closeError).Once()

	assert.Equal(closeError, listener.Close())
	assert.Zero(gauge.Value())

	delegate.AssertExpectations(t)
}

func testInstrumentListenerAccept(t *testing.T, closeError error) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		logger       = logging.NewTestLogger(nil, t)
		gauge        = generic.NewGauge("test")
		delegate     = new(mockListener)
		expectedConn = new(mockConn)
		listener     = InstrumentListener(logger, gauge, delegate)
	)

	require.NotNil(listener)

	delegate.On("Accept").Return(expectedConn, error(nil)).Once()
	expectedConn.On("Close").Return(closeError).Twice()

	actualConn, err := listener.Accept()
	require.NotNil(actualConn)
	assert.NoError(err)
	assert.Equal(1.0, gauge.Value())

	assert.Equal(closeError, actualConn.Close())
	assert.Zero(gauge.Value())

	// the gauge decrement should be idempotent
	assert.Equal(closeError, actualConn.Close())
	assert.Zero(gauge.Value())

	delegate.AssertExpectations(t)
	expectedConn.AssertExpectations(t)
}

func testInstrumentListenerAcceptError(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		expectedError = errors.New("expected error from Accept")
		logger        = logging.NewTestLogger(nil, t)
		gauge         = generic.NewGauge("test")
		delegate      = new(mockListener)
		listener      = InstrumentListener(logger, gauge, delegate)
	)

	require.NotNil(listener)
	delegate.On("Accept").Return(nil, expectedError).Once()

	actualConn, err := listener.Accept()
	assert.Nil(actualConn)
	assert.Equal(expectedError, err)
	assert.Zero(gauge.Value())

	delegate.AssertExpectations(t)
}

func TestInstrumentListener(t *testing.T) {
	t.Run("Close", func(t *testing.T) { testInstrumentListenerClose(t, nil) })
	t.Run("CloseError", func(t *testing.T) { testInstrumentListenerClose(t, errors.New("expected error from Close")) })
	t.Run("Accept", func(t *testing.T) { testInstrumentListenerAccept(t, nil) })
	t.Run("AcceptError", testInstrumentListenerAcceptError)
	t.Run("AcceptConnCloseError", func(t *testing.T) { testInstrumentListenerAccept(t, errors.New("expected error from conn.Close")) })
}
