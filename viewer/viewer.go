// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/segmentio/ksuid"
	"github.com/xmidt-org/stopwatch/wire"
)

var (
	// ErrSlowViewer is the disconnect reason for a viewer whose queue filled up
	ErrSlowViewer = errors.New("viewer could not keep up with updates")

	// ErrManagerClosed is the disconnect reason for viewers that remain when the Manager is closed
	ErrManagerClosed = errors.New("viewer manager closed")
)

// ID uniquely identifies a connected viewer
type ID string

// NewID generates a new, unique viewer ID
func NewID() ID {
	return ID(ksuid.New().String())
}

// Info is the externally visible description of a connected viewer
type Info struct {
	ID          ID          `json:"id"`
	Format      wire.Format `json:"format"`
	ConnectedAt time.Time   `json:"connectedAt"`
}

// viewer is a single connected page
type viewer struct {
	id          ID
	connectedAt time.Time
	connection  *connection
	frames      chan []byte

	shutdown  chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func (v *viewer) info() Info {
	return Info{
		ID:          v.id,
		Format:      v.connection.format,
		ConnectedAt: v.connectedAt,
	}
}

// enqueue attempts to queue a frame without blocking
func (v *viewer) enqueue(frame []byte) bool {
	select {
	case <-v.shutdown:
		return false
	default:
	}

	select {
	case v.frames <- frame:
		return true
	default:
		return false
	}
}

// requestClose signals the pumps to stop.  It returns true only for the first call.
func (v *viewer) requestClose(reason error) (first bool) {
	v.closeOnce.Do(func() {
		first = true
		v.closeErr = reason
		close(v.shutdown)
	})

	return
}

// closeCode chooses the websocket close code for the reason this viewer was closed
func (v *viewer) closeCode() (int, string) {
	switch v.closeErr {
	case ErrSlowViewer:
		return websocket.ClosePolicyViolation, v.closeErr.Error()
	case ErrManagerClosed:
		return websocket.CloseGoingAway, v.closeErr.Error()
	default:
		return websocket.CloseNormalClosure, "close"
	}
}
