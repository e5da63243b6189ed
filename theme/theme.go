// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package theme implements the widget's theme selector, a fixed set of themes that toggle
// presentation classes on the page body and the stopwatch container.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Theme is one of the fixed set of visual themes
type Theme string

const (
	Default    Theme = "default"
	Dark       Theme = "dark"
	Minimalist Theme = "minimalist"

	classSuffix = "-theme"
)

// ErrUnknownTheme indicates a theme name outside the fixed set
var ErrUnknownTheme = errors.New("unknown theme")

// Targets are the two containers whose classes a theme controls
var Targets = []string{"body", "stopwatchContainer"}

// All returns every theme, in presentation order
func All() []Theme {
	return []Theme{Default, Dark, Minimalist}
}

// Parse converts a theme name into a Theme.  Surrounding whitespace and case are ignored.
func Parse(v string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(v)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, v)
	}

	return t, nil
}

// Valid tests if this is one of the fixed themes
func (t Theme) Valid() bool {
	switch t {
	case Default, Dark, Minimalist:
		return true
	default:
		return false
	}
}

func (t Theme) String() string {
	return string(t)
}

// Class is the presentation class this theme adds to each target.  The default theme adds no class.
func (t Theme) Class() string {
	if t == Default {
		return ""
	}

	return string(t) + classSuffix
}

// AllClasses returns every class that any theme could have added, which is exactly
// the set removed before a theme is applied
func AllClasses() []string {
	return []string{
		string(Default) + classSuffix,
		string(Dark) + classSuffix,
		string(Minimalist) + classSuffix,
	}
}

// UnmarshalText allows a Theme to be decoded from configuration or JSON
func (t *Theme) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// MarshalText writes the theme name
func (t Theme) MarshalText() ([]byte, error) {
	return []byte(t), nil
}
