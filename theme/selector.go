// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package theme

import (
	"sync"
)

// Change describes the class edits that applying a theme makes to every target.
// Remove is applied before Add.
type Change struct {
	Theme   Theme    `json:"theme"`
	Targets []string `json:"targets"`
	Remove  []string `json:"remove"`
	Add     []string `json:"add,omitempty"`
}

// NewChange computes the class edits for a theme
func NewChange(t Theme) Change {
	c := Change{
		Theme:   t,
		Targets: append([]string(nil), Targets...),
		Remove:  AllClasses(),
	}

	if class := t.Class(); len(class) > 0 {
		c.Add = []string{class}
	}

	return c
}

// Listener is notified of each applied Change
type Listener interface {
	OnThemeChange(Change)
}

// ListenerFunc is a function type that implements Listener
type ListenerFunc func(Change)

func (f ListenerFunc) OnThemeChange(c Change) {
	f(c)
}

// Selector holds the current theme.  It is safe for concurrent use.  Listeners are invoked
// while the selector's lock is held, so they observe changes in the order applied.
type Selector struct {
	lock      sync.Mutex
	current   Theme
	listeners []Listener
}

// NewSelector creates a Selector whose current theme is Default.  Nothing is applied
// until Apply is called.
func NewSelector(listeners ...Listener) *Selector {
	return &Selector{
		current:   Default,
		listeners: append([]Listener(nil), listeners...),
	}
}

// AddListener registers a listener for subsequent changes
func (s *Selector) AddListener(l Listener) {
	s.lock.Lock()
	s.listeners = append(s.listeners, l)
	s.lock.Unlock()
}

// Current returns the most recently applied theme
func (s *Selector) Current() Theme {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.current
}

// Apply makes t the current theme and dispatches its Change.  Applying the current theme
// again still dispatches, since a listener may need to restore its classes.
func (s *Selector) Apply(t Theme) (Change, error) {
	if !t.Valid() {
		_, err := Parse(string(t))
		return Change{}, err
	}

	c := NewChange(t)

	s.lock.Lock()
	defer s.lock.Unlock()
	s.current = t
	for _, l := range s.listeners {
		l.OnThemeChange(c)
	}

	return c, nil
}

// ApplyName parses and applies a theme name
func (s *Selector) ApplyName(name string) (Change, error) {
	t, err := Parse(name)
	if err != nil {
		return Change{}, err
	}

	return s.Apply(t)
}
