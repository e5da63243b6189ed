// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/stopwatch/stopwatch"
	"github.com/xmidt-org/stopwatch/wire"
	"github.com/xmidt-org/stopwatch/xmetrics"
)

const testWait = 5 * time.Second

type staticSnapshotter wire.Message

func (s staticSnapshotter) WithSnapshot(f func(wire.Message)) {
	f(wire.Message(s))
}

func testSnapshot() staticSnapshotter {
	return staticSnapshotter{
		Type:        wire.SnapshotMessage,
		Time:        stopwatch.ZeroTime,
		Placeholder: stopwatch.NoLapsPlaceholder,
	}
}

func startTestServer(t *testing.T, m *Manager) string {
	server := httptest.NewServer(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		m.Connect(response, request)
	}))

	t.Cleanup(func() {
		m.Close()
		server.Close()
	})

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string, subprotocols ...string) *websocket.Conn {
	dialer := websocket.Dialer{Subprotocols: subprotocols}
	c, response, err := dialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, response.StatusCode)
	t.Cleanup(func() { c.Close() })
	return c
}

func readMessage(t *testing.T, c *websocket.Conn) (int, wire.Message) {
	require := require.New(t)
	require.NoError(c.SetReadDeadline(time.Now().Add(testWait)))

	messageType, data, err := c.ReadMessage()
	require.NoError(err)

	format := wire.JSON
	if messageType == websocket.BinaryMessage {
		format = wire.Msgpack
	}

	var m wire.Message
	require.NoError(wire.NewDecoderBytes(data, format).Decode(&m))
	return messageType, m
}

func TestManagerSnapshotThenBroadcast(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		events = make(chan *Event, 10)
		m      = NewManager(
			&Options{Listeners: []Listener{func(e *Event) { events <- e }}},
			testSnapshot(),
			nil,
		)

		c = dial(t, startTestServer(t, m))
	)

	messageType, snapshot := readMessage(t, c)
	assert.Equal(websocket.TextMessage, messageType)
	assert.Equal(wire.SnapshotMessage, snapshot.Type)
	assert.Equal(stopwatch.ZeroTime, snapshot.Time)
	assert.Equal(stopwatch.NoLapsPlaceholder, snapshot.Placeholder)

	require.Eventually(func() bool { return m.Len() == 1 }, testWait, 10*time.Millisecond)
	connected := <-events
	assert.Equal(Connect, connected.Type)
	assert.Equal(wire.JSON, connected.Format)

	viewers := m.Viewers()
	require.Len(viewers, 1)
	assert.Equal(connected.ID, viewers[0].ID)

	m.Broadcast(wire.Message{Type: wire.DisplayMessage, Time: "00:00:01.500"})
	_, display := readMessage(t, c)
	assert.Equal(wire.DisplayMessage, display.Type)
	assert.Equal("00:00:01.500", display.Time)

	require.True(m.Disconnect(connected.ID))
	assert.False(m.Disconnect(connected.ID))
	assert.Zero(m.Len())

	disconnected := <-events
	assert.Equal(Disconnect, disconnected.Type)
	assert.Equal(connected.ID, disconnected.ID)
	assert.NoError(disconnected.Error)
}

func TestManagerMsgpack(t *testing.T) {
	var (
		assert = assert.New(t)
		m      = NewManager(nil, testSnapshot(), nil)
		c      = dial(t, startTestServer(t, m), wire.MsgpackSubprotocol)
	)

	assert.Equal(wire.MsgpackSubprotocol, c.Subprotocol())

	messageType, snapshot := readMessage(t, c)
	assert.Equal(websocket.BinaryMessage, messageType)
	assert.Equal(wire.SnapshotMessage, snapshot.Type)
	assert.Equal(stopwatch.ZeroTime, snapshot.Time)

	require.Eventually(t, func() bool { return m.Len() == 1 }, testWait, 10*time.Millisecond)
	m.Broadcast(wire.Message{Type: wire.LapMessage, Lap: &wire.LapEntry{Number: 1, Time: "00:00:01.500"}})

	messageType, lap := readMessage(t, c)
	assert.Equal(websocket.BinaryMessage, messageType)
	assert.Equal(wire.LapMessage, lap.Type)
	if assert.NotNil(lap.Lap) {
		assert.Equal(wire.LapEntry{Number: 1, Time: "00:00:01.500"}, *lap.Lap)
	}
}

func TestManagerCommands(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		registry, err = xmetrics.NewRegistry(nil, Metrics)
		commands      = make(chan wire.Command, 10)
		handler       = CommandHandlerFunc(func(_ context.Context, c wire.Command) error {
			commands <- c
			if c.Command == wire.ResetCommand {
				return errors.New("expected")
			}

			return nil
		})
	)

	require.NoError(err)

	m := NewManager(&Options{MetricsProvider: registry}, nil, handler)
	c := dial(t, startTestServer(t, m))

	require.NoError(c.WriteMessage(websocket.TextMessage, []byte(`{"command": " Start "}`)))
	select {
	case received := <-commands:
		assert.Equal(wire.StartCommand, received.Command)
	case <-time.After(testWait):
		require.Fail("start command was not handled")
	}

	require.NoError(c.WriteMessage(websocket.BinaryMessage, wire.MustEncode(wire.Command{Command: wire.ResetCommand}, wire.Msgpack)))
	select {
	case received := <-commands:
		assert.Equal(wire.ResetCommand, received.Command)
	case <-time.After(testWait):
		require.Fail("reset command was not handled")
	}

	require.NoError(c.WriteMessage(websocket.TextMessage, []byte(`{}`)))

	counter := registry.NewCounterVec(CommandCounter)
	require.Eventually(func() bool {
		return testutil.ToFloat64(counter.WithLabelValues(Rejected)) == 2.0
	}, testWait, 10*time.Millisecond)

	assert.Equal(1.0, testutil.ToFloat64(counter.WithLabelValues(Accepted)))
	assert.Len(commands, 0)
}

func TestManagerMaxViewers(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		registry, err = xmetrics.NewRegistry(nil, Metrics)
	)

	require.NoError(err)

	m := NewManager(&Options{MaxViewers: 1, MetricsProvider: registry}, nil, nil)
	url := startTestServer(t, m)
	dial(t, url)
	require.Eventually(func() bool { return m.Len() == 1 }, testWait, 10*time.Millisecond)

	c, response, err := websocket.DefaultDialer.Dial(url, nil)
	assert.Nil(c)
	assert.Equal(websocket.ErrBadHandshake, err)
	require.NotNil(response)
	assert.Equal(http.StatusServiceUnavailable, response.StatusCode)
	assert.Equal(1.0, testutil.ToFloat64(registry.NewCounterVec(ViewerLimitReachedCounter)))
	assert.Equal(1.0, testutil.ToFloat64(registry.NewGaugeVec(ViewerGauge)))
	assert.True(IsTooManyViewers(ErrTooManyViewers))
}

func TestManagerClose(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		m   = NewManager(nil, nil, nil)
		url = startTestServer(t, m)
		c   = dial(t, url)
	)

	require.Eventually(func() bool { return m.Len() == 1 }, testWait, 10*time.Millisecond)
	require.NoError(m.Close())
	assert.Zero(m.Len())

	require.NoError(c.SetReadDeadline(time.Now().Add(testWait)))
	_, _, err := c.ReadMessage()
	assert.True(websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)

	_, response, err := websocket.DefaultDialer.Dial(url, nil)
	assert.Error(err)
	if assert.NotNil(response) {
		assert.Equal(http.StatusServiceUnavailable, response.StatusCode)
	}
}

func TestManagerSlowViewer(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		registry, err = xmetrics.NewRegistry(nil, Metrics)
		events        = make(chan *Event, 10)
	)

	require.NoError(err)

	m := NewManager(
		&Options{
			MetricsProvider: registry,
			Listeners:       []Listener{func(e *Event) { events <- e }},
		},
		nil,
		nil,
	)

	// no pumps are running for this viewer, so its queue is never drained
	v := &viewer{
		id:         NewID(),
		connection: &connection{format: wire.JSON},
		frames:     make(chan []byte, 1),
		shutdown:   make(chan struct{}),
	}

	m.reserve()
	m.add(v)
	require.Equal(1, m.Len())

	m.Broadcast(wire.Message{Type: wire.DisplayMessage, Time: "00:00:00.010"})
	assert.Equal(1, m.Len())

	m.Broadcast(wire.Message{Type: wire.DisplayMessage, Time: "00:00:00.020"})
	assert.Zero(m.Len())

	m.Broadcast(wire.Message{Type: wire.DisplayMessage, Time: "00:00:00.030"})

	e := <-events
	assert.Equal(Disconnect, e.Type)
	assert.Equal(v.id, e.ID)
	assert.Equal(ErrSlowViewer, e.Error)

	code, _ := v.closeCode()
	assert.Equal(websocket.ClosePolicyViolation, code)
	assert.Equal(1.0, testutil.ToFloat64(registry.NewCounterVec(DroppedCounter)))
	assert.Equal(1.0, testutil.ToFloat64(registry.NewCounterVec(DisconnectCounter)))
}

func TestManagerViewersOrder(t *testing.T) {
	var (
		assert = assert.New(t)
		m      = NewManager(nil, testSnapshot(), nil)
		now    = time.Now()
	)

	for _, v := range []*viewer{
		{id: "b", connectedAt: now, connection: &connection{format: wire.JSON}},
		{id: "a", connectedAt: now, connection: &connection{format: wire.Msgpack}},
		{id: "c", connectedAt: now.Add(-time.Second), connection: &connection{format: wire.JSON}},
	} {
		m.viewers[v.id] = v
	}

	infos := m.Viewers()
	if assert.Len(infos, 3) {
		assert.Equal(ID("c"), infos[0].ID)
		assert.Equal(ID("a"), infos[1].ID)
		assert.Equal(wire.Msgpack, infos[1].Format)
		assert.Equal(ID("b"), infos[2].ID)
	}
}
