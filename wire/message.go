// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"strconv"

	"github.com/xmidt-org/stopwatch/stopwatch"
	"github.com/xmidt-org/stopwatch/theme"
)

// MessageType identifies what a Message updates on a page
type MessageType string

const (
	DisplayMessage  MessageType = "display"
	LapMessage      MessageType = "lap"
	ClearMessage    MessageType = "clear"
	ButtonsMessage  MessageType = "buttons"
	ThemeMessage    MessageType = "theme"
	SnapshotMessage MessageType = "snapshot"
)

// LapEntry is one rendered line of the lap list
type LapEntry struct {
	Number int    `json:"number"`
	Time   string `json:"time"`
}

// Label is the text that precedes the time in the lap list
func (le LapEntry) Label() string {
	return "Lap " + strconv.Itoa(le.Number) + ":"
}

// Message is a single outbound update.  Which fields are set depends on Type:
//
//	display   Time
//	lap       Lap
//	clear     Placeholder
//	buttons   Buttons
//	theme     Theme, Change
//	snapshot  Time, Laps, Placeholder, Buttons, Theme, Classes
type Message struct {
	Type        MessageType        `json:"type"`
	Time        string             `json:"time,omitempty"`
	Lap         *LapEntry          `json:"lap,omitempty"`
	Laps        []LapEntry         `json:"laps,omitempty"`
	Placeholder string             `json:"placeholder,omitempty"`
	Buttons     *stopwatch.Buttons `json:"buttons,omitempty"`
	Theme       theme.Theme        `json:"theme,omitempty"`
	Change      *theme.Change      `json:"change,omitempty"`

	// Classes holds the theme classes currently set on every theme target
	Classes []string `json:"classes,omitempty"`
}
