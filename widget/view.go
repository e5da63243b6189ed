// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"sync"

	"github.com/xmidt-org/stopwatch/stopwatch"
	"github.com/xmidt-org/stopwatch/theme"
	"github.com/xmidt-org/stopwatch/wire"
)

// Broadcaster receives every update a View makes.  Broadcast must not block.
type Broadcaster interface {
	Broadcast(wire.Message)
}

// BroadcasterFunc is a function type that implements Broadcaster
type BroadcasterFunc func(wire.Message)

func (f BroadcasterFunc) Broadcast(m wire.Message) {
	f(m)
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(wire.Message) {}

// View is the server-side model of the page.  It is the stopwatch's Display, LapList, and Controls, and it
// listens for theme changes.  Each update is applied to the model and then broadcast, both under the
// view's lock, so a snapshot taken with WithSnapshot is never missing or duplicating a broadcast.
type View struct {
	lock        sync.RWMutex
	broadcaster Broadcaster

	time        string
	laps        []wire.LapEntry
	placeholder string
	buttons     stopwatch.Buttons
	theme       theme.Theme
	classes     []string
}

var (
	_ stopwatch.Display  = (*View)(nil)
	_ stopwatch.LapList  = (*View)(nil)
	_ stopwatch.Controls = (*View)(nil)
	_ theme.Listener     = (*View)(nil)
)

// NewView creates a View that shows a freshly reset stopwatch with the default theme
func NewView() *View {
	return &View{
		broadcaster: nopBroadcaster{},
		time:        stopwatch.ZeroTime,
		placeholder: stopwatch.NoLapsPlaceholder,
		buttons:     stopwatch.ResetButtons,
		theme:       theme.Default,
	}
}

// SetBroadcaster replaces the target of subsequent updates.  A nil Broadcaster discards updates.
func (v *View) SetBroadcaster(b Broadcaster) {
	if b == nil {
		b = nopBroadcaster{}
	}

	v.lock.Lock()
	v.broadcaster = b
	v.lock.Unlock()
}

func (v *View) ShowTime(formatted string) {
	v.lock.Lock()
	defer v.lock.Unlock()

	v.time = formatted
	v.broadcaster.Broadcast(wire.Message{
		Type: wire.DisplayMessage,
		Time: formatted,
	})
}

// AddLap places a new entry above all others, removing the placeholder if it is showing
func (v *View) AddLap(number int, formatted string) {
	v.lock.Lock()
	defer v.lock.Unlock()

	entry := wire.LapEntry{Number: number, Time: formatted}
	v.placeholder = ""
	v.laps = append([]wire.LapEntry{entry}, v.laps...)
	v.broadcaster.Broadcast(wire.Message{
		Type: wire.LapMessage,
		Lap:  &entry,
	})
}

// Clear removes every lap entry and shows the placeholder
func (v *View) Clear(placeholder string) {
	v.lock.Lock()
	defer v.lock.Unlock()

	v.laps = nil
	v.placeholder = placeholder
	v.broadcaster.Broadcast(wire.Message{
		Type:        wire.ClearMessage,
		Placeholder: placeholder,
	})
}

// Buttons returns the control states most recently set
func (v *View) Buttons() stopwatch.Buttons {
	v.lock.RLock()
	defer v.lock.RUnlock()
	return v.buttons
}

func (v *View) SetButtons(b stopwatch.Buttons) {
	v.lock.Lock()
	defer v.lock.Unlock()

	v.buttons = b
	v.broadcaster.Broadcast(wire.Message{
		Type:    wire.ButtonsMessage,
		Buttons: &b,
	})
}

// OnThemeChange removes every theme class from the targets, then adds the change's classes
func (v *View) OnThemeChange(c theme.Change) {
	v.lock.Lock()
	defer v.lock.Unlock()

	v.classes = removeAll(v.classes, c.Remove)
	v.classes = append(v.classes, c.Add...)
	v.theme = c.Theme
	v.broadcaster.Broadcast(wire.Message{
		Type:   wire.ThemeMessage,
		Theme:  c.Theme,
		Change: &c,
	})
}

func removeAll(classes, remove []string) []string {
	kept := make([]string, 0, len(classes))
	for _, class := range classes {
		found := false
		for _, r := range remove {
			if class == r {
				found = true
				break
			}
		}

		if !found {
			kept = append(kept, class)
		}
	}

	return kept
}

// snapshot must be called while holding the lock
func (v *View) snapshot() wire.Message {
	buttons := v.buttons
	return wire.Message{
		Type:        wire.SnapshotMessage,
		Time:        v.time,
		Laps:        append([]wire.LapEntry(nil), v.laps...),
		Placeholder: v.placeholder,
		Buttons:     &buttons,
		Theme:       v.theme,
		Classes:     append([]string(nil), v.classes...),
	}
}

// Snapshot returns the complete current page state
func (v *View) Snapshot() wire.Message {
	v.lock.RLock()
	defer v.lock.RUnlock()
	return v.snapshot()
}

// WithSnapshot invokes f with the current page state.  No update is applied or broadcast while f runs,
// so f may register for subsequent broadcasts without missing any.  The function f must not call back
// into this View.
func (v *View) WithSnapshot(f func(wire.Message)) {
	v.lock.Lock()
	defer v.lock.Unlock()
	f(v.snapshot())
}
