// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"io"
	"time"

	"github.com/gorilla/websocket"
	"github.com/xmidt-org/stopwatch/wire"
)

// connection wraps a websocket and enforces the idle and write timeout policies
type connection struct {
	webSocket    *websocket.Conn
	format       wire.Format
	idlePeriod   time.Duration
	writeTimeout time.Duration
}

func newConnection(webSocket *websocket.Conn, idlePeriod, writeTimeout time.Duration, maxFrameSize int64) *connection {
	c := &connection{
		webSocket:    webSocket,
		format:       wire.FormatForSubprotocol(webSocket.Subprotocol()),
		idlePeriod:   idlePeriod,
		writeTimeout: writeTimeout,
	}

	webSocket.SetReadLimit(maxFrameSize)

	// pongs extend the idle deadline just like inbound frames
	webSocket.SetPongHandler(func(string) error {
		return c.updateReadDeadline()
	})

	return c
}

func (c *connection) updateReadDeadline() error {
	return c.webSocket.SetReadDeadline(
		time.Now().Add(c.idlePeriod),
	)
}

func (c *connection) nextWriteDeadline() time.Time {
	var deadline time.Time
	if c.writeTimeout > 0 {
		deadline = time.Now().Add(c.writeTimeout)
	}

	return deadline
}

// Read returns the next data frame along with the format it is encoded in.  Text frames are JSON
// and binary frames are Msgpack, whatever was negotiated.  This method must not be called concurrently
// with itself.
func (c *connection) Read() (wire.Format, []byte, error) {
	if err := c.updateReadDeadline(); err != nil {
		return wire.JSON, nil, err
	}

	messageType, frame, err := c.webSocket.NextReader()
	if err != nil {
		return wire.JSON, nil, err
	}

	data, err := io.ReadAll(frame)
	if messageType == websocket.BinaryMessage {
		return wire.Msgpack, data, err
	}

	return wire.JSON, data, err
}

// Write sends an encoded frame using the negotiated format's frame type.  This method must not be
// called concurrently with itself or with SendClose.
func (c *connection) Write(frame []byte) error {
	if err := c.webSocket.SetWriteDeadline(c.nextWriteDeadline()); err != nil {
		return err
	}

	messageType := websocket.TextMessage
	if c.format.Binary() {
		messageType = websocket.BinaryMessage
	}

	return c.webSocket.WriteMessage(messageType, frame)
}

// Ping may be called concurrently with any other method
func (c *connection) Ping() error {
	return c.webSocket.WriteControl(websocket.PingMessage, nil, c.nextWriteDeadline())
}

// SendClose transmits a close frame.  After this method is invoked, the only method
// that should be invoked is Close.
func (c *connection) SendClose(code int, text string) error {
	return c.webSocket.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text),
		c.nextWriteDeadline(),
	)
}

func (c *connection) Close() error {
	return c.webSocket.Close()
}
