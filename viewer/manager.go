// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/gorilla/websocket"
	"github.com/xmidt-org/stopwatch/httperror"
	"github.com/xmidt-org/stopwatch/logging"
	"github.com/xmidt-org/stopwatch/wire"
	"golang.org/x/exp/slices"
)

// ErrTooManyViewers is returned by Connect when MaxViewers are already connected
var ErrTooManyViewers = httperror.New("too many viewers", http.StatusServiceUnavailable, nil)

// CommandHandler carries out commands sent by pages
type CommandHandler interface {
	Execute(context.Context, wire.Command) error
}

// CommandHandlerFunc is a function type that implements CommandHandler
type CommandHandlerFunc func(context.Context, wire.Command) error

func (f CommandHandlerFunc) Execute(ctx context.Context, c wire.Command) error {
	return f(ctx, c)
}

// Snapshotter supplies the complete page state for newly connected viewers.  WithSnapshot must
// not allow any broadcast while f runs.
type Snapshotter interface {
	WithSnapshot(f func(wire.Message))
}

// Manager is the hub for every connected viewer
type Manager struct {
	logger         log.Logger
	measures       Measures
	listener       Listener
	upgrader       websocket.Upgrader
	snapshotter    Snapshotter
	handler        CommandHandler
	maxViewers     int
	queueSize      int
	maxFrameSize   int64
	pingPeriod     time.Duration
	idlePeriod     time.Duration
	writeTimeout   time.Duration
	commandTimeout time.Duration

	lock     sync.RWMutex
	viewers  map[ID]*viewer
	reserved int
	closed   bool
}

// NewManager creates a Manager.  New viewers are sent the snapshotter's state first, and their
// commands are passed to handler.  Either may be nil.
func NewManager(o *Options, snapshotter Snapshotter, handler CommandHandler) *Manager {
	m := &Manager{
		logger:   o.logger(),
		measures: NewMeasures(o.metricsProvider()),
		listener: o.listener(),
		upgrader: websocket.Upgrader{
			HandshakeTimeout: o.handshakeTimeout(),
			ReadBufferSize:   o.readBufferSize(),
			WriteBufferSize:  o.writeBufferSize(),
			Subprotocols:     []string{wire.MsgpackSubprotocol},
		},
		snapshotter:    snapshotter,
		handler:        handler,
		maxViewers:     o.maxViewers(),
		queueSize:      o.queueSize(),
		maxFrameSize:   o.maxFrameSize(),
		pingPeriod:     o.pingPeriod(),
		idlePeriod:     o.idlePeriod(),
		writeTimeout:   o.writeTimeout(),
		commandTimeout: o.commandTimeout(),
		viewers:        make(map[ID]*viewer),
	}

	if o.allowAnyOrigin() {
		m.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}

	return m
}

// reserve claims a slot for a viewer that is about to connect
func (m *Manager) reserve() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.closed {
		return ErrManagerClosed
	}

	if m.maxViewers > 0 && len(m.viewers)+m.reserved >= m.maxViewers {
		return ErrTooManyViewers
	}

	m.reserved++
	return nil
}

func (m *Manager) release() {
	m.lock.Lock()
	m.reserved--
	m.lock.Unlock()
}

// Connect upgrades an HTTP request to a websocket and begins concurrent management of the new viewer.
// When an error is returned, the response has already been written.
func (m *Manager) Connect(response http.ResponseWriter, request *http.Request) (ID, error) {
	if err := m.reserve(); err != nil {
		if err == ErrTooManyViewers {
			m.measures.LimitReached.Add(1.0)
		}

		logging.Warn(m.logger).Log(logging.MessageKey(), "refusing viewer", logging.ErrorKey(), err)
		httperror.WriteMessage(response, err.Error(), http.StatusServiceUnavailable, nil)
		return "", err
	}

	webSocket, err := m.upgrader.Upgrade(response, request, nil)
	if err != nil {
		// Upgrade already writes to the response
		m.release()
		logging.Error(m.logger).Log(logging.MessageKey(), "websocket upgrade failed", logging.ErrorKey(), err)
		return "", err
	}

	v := &viewer{
		id:          NewID(),
		connectedAt: time.Now(),
		connection:  newConnection(webSocket, m.idlePeriod, m.writeTimeout, m.maxFrameSize),
		frames:      make(chan []byte, m.queueSize),
		shutdown:    make(chan struct{}),
	}

	if m.snapshotter != nil {
		m.snapshotter.WithSnapshot(func(snapshot wire.Message) {
			v.enqueue(wire.MustEncode(snapshot, v.connection.format))
			m.add(v)
		})
	} else {
		m.add(v)
	}

	go m.readPump(v)
	go m.writePump(v)

	m.measures.Connect.Add(1.0)
	logging.Info(m.logger).Log(logging.MessageKey(), "viewer connected", "id", v.id, "format", v.connection.format)
	m.listener(&Event{
		Type:        Connect,
		ID:          v.id,
		Format:      v.connection.format,
		ConnectedAt: v.connectedAt,
	})

	return v.id, nil
}

func (m *Manager) add(v *viewer) {
	m.lock.Lock()
	m.reserved--
	if m.closed {
		m.lock.Unlock()
		v.requestClose(ErrManagerClosed)
		return
	}

	m.viewers[v.id] = v
	count := len(m.viewers)
	m.lock.Unlock()

	m.measures.Viewers.Set(float64(count))
}

// disconnect removes a viewer and signals its pumps to stop.  Only the first call for any viewer has an effect.
func (m *Manager) disconnect(v *viewer, reason error) bool {
	if !v.requestClose(reason) {
		return false
	}

	m.lock.Lock()
	delete(m.viewers, v.id)
	count := len(m.viewers)
	m.lock.Unlock()

	m.measures.Viewers.Set(float64(count))
	m.measures.Disconnect.Add(1.0)

	logger := logging.Info(m.logger)
	if reason != nil {
		logger = logging.Warn(m.logger)
	}

	logger.Log(logging.MessageKey(), "viewer disconnected", "id", v.id, logging.ErrorKey(), reason)
	m.listener(&Event{
		Type:        Disconnect,
		ID:          v.id,
		Format:      v.connection.format,
		ConnectedAt: v.connectedAt,
		Error:       reason,
	})

	return true
}

// Broadcast queues a message for every viewer.  This method never blocks on a viewer.  Any viewer
// whose queue is full is disconnected.
func (m *Manager) Broadcast(message wire.Message) {
	var (
		frames [2][]byte
		slow   []*viewer
	)

	m.lock.RLock()
	for _, v := range m.viewers {
		f := v.connection.format
		if frames[f] == nil {
			frames[f] = wire.MustEncode(message, f)
		}

		if !v.enqueue(frames[f]) {
			slow = append(slow, v)
		}
	}

	m.lock.RUnlock()

	for _, v := range slow {
		if m.disconnect(v, ErrSlowViewer) {
			m.measures.Dropped.Add(1.0)
		}
	}
}

// Len returns the number of connected viewers
func (m *Manager) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.viewers)
}

// Viewers returns a description of every connected viewer
func (m *Manager) Viewers() []Info {
	m.lock.RLock()
	defer m.lock.RUnlock()

	infos := make([]Info, 0, len(m.viewers))
	for _, v := range m.viewers {
		infos = append(infos, v.info())
	}

	// oldest first
	slices.SortFunc(infos, func(a, b Info) int {
		if c := a.ConnectedAt.Compare(b.ConnectedAt); c != 0 {
			return c
		}

		return strings.Compare(string(a.ID), string(b.ID))
	})

	return infos
}

// Disconnect closes the viewer with the given ID.  It returns false if no such viewer is connected.
func (m *Manager) Disconnect(id ID) bool {
	m.lock.RLock()
	v, ok := m.viewers[id]
	m.lock.RUnlock()

	if ok {
		m.disconnect(v, nil)
	}

	return ok
}

// Close disconnects every viewer and refuses any new ones
func (m *Manager) Close() error {
	m.lock.Lock()
	m.closed = true
	viewers := make([]*viewer, 0, len(m.viewers))
	for _, v := range m.viewers {
		viewers = append(viewers, v)
	}

	m.lock.Unlock()

	for _, v := range viewers {
		m.disconnect(v, ErrManagerClosed)
	}

	return nil
}

func (m *Manager) readPump(v *viewer) {
	for {
		format, frame, err := v.connection.Read()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				err = nil
			}

			m.disconnect(v, err)
			return
		}

		m.execute(v, format, frame)
	}
}

func (m *Manager) execute(v *viewer, format wire.Format, frame []byte) {
	command, err := wire.DecodeCommand(frame, format)
	if err == nil && m.handler != nil {
		ctx, cancel := context.WithTimeout(context.Background(), m.commandTimeout)
		err = m.handler.Execute(ctx, command)
		cancel()
	}

	if err != nil {
		m.measures.Commands.With(OutcomeLabel, Rejected).Add(1.0)
		logging.Warn(m.logger).Log(
			logging.MessageKey(), "command rejected",
			"id", v.id,
			"command", command.Command,
			logging.ErrorKey(), err,
		)

		return
	}

	m.measures.Commands.With(OutcomeLabel, Accepted).Add(1.0)
	logging.Debug(m.logger).Log(logging.MessageKey(), "command accepted", "id", v.id, "command", command.Command)
}

func (m *Manager) writePump(v *viewer) {
	pingTicker := time.NewTicker(m.pingPeriod)

	defer func() {
		pingTicker.Stop()
		v.connection.Close()
	}()

	for {
		select {
		case <-v.shutdown:
			code, text := v.closeCode()
			v.connection.SendClose(code, text)
			return

		case frame := <-v.frames:
			if err := v.connection.Write(frame); err != nil {
				m.disconnect(v, err)
				return
			}

		case <-pingTicker.C:
			if err := v.connection.Ping(); err != nil {
				m.disconnect(v, err)
				return
			}
		}
	}
}

// IsTooManyViewers tests if err indicates that the viewer limit was reached
func IsTooManyViewers(err error) bool {
	return errors.Is(err, ErrTooManyViewers)
}
