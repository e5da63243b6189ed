// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

const (
	StartCommand = "start"
	PauseCommand = "pause"
	ResetCommand = "reset"
	LapCommand   = "lap"
	ThemeCommand = "theme"
)

// ErrMissingCommand indicates an inbound frame with no command name
var ErrMissingCommand = errors.New("missing command")

// Command is a single inbound request from a page.  Theme is only used by the theme command.
type Command struct {
	Command string `json:"command"`
	Theme   string `json:"theme,omitempty"`
}

// DecodeCommand decodes an inbound frame.  Browsers are loose about types, so each
// field is coerced to a string.  The command name is trimmed and lowercased.
func DecodeCommand(data []byte, f Format) (Command, error) {
	var raw map[string]interface{}
	if err := NewDecoderBytes(data, f).Decode(&raw); err != nil {
		return Command{}, fmt.Errorf("unable to decode command: %w", err)
	}

	name, err := cast.ToStringE(raw["command"])
	if err != nil {
		return Command{}, fmt.Errorf("invalid command field: %w", err)
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 0 {
		return Command{}, ErrMissingCommand
	}

	themeName, err := cast.ToStringE(raw["theme"])
	if err != nil {
		return Command{}, fmt.Errorf("invalid theme field: %w", err)
	}

	return Command{Command: name, Theme: themeName}, nil
}
