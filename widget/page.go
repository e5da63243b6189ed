// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	_ "embed"
	"html/template"
	"io"
	"strings"

	"github.com/xmidt-org/stopwatch/stopwatch"
	"github.com/xmidt-org/stopwatch/theme"
	"github.com/xmidt-org/stopwatch/wire"
)

const (
	DefaultTitle      = "Stopwatch"
	DefaultSocketPath = "/api/v1/ws"
)

var (
	//go:embed page.html
	pageSource string

	pageTemplate = template.Must(template.New("page").Parse(pageSource))
)

// pageData is the model the page template renders
type pageData struct {
	Title       string
	SocketPath  string
	Time        string
	Laps        []wire.LapEntry
	Placeholder string
	Buttons     stopwatch.Buttons
	Theme       theme.Theme
	Themes      []theme.Theme
	ClassList   string
}

// Render writes the complete HTML page for the view's current state.  Scripts on the page
// connect to socketPath to receive subsequent updates.
func (v *View) Render(output io.Writer, title, socketPath string) error {
	if len(title) == 0 {
		title = DefaultTitle
	}

	if len(socketPath) == 0 {
		socketPath = DefaultSocketPath
	}

	s := v.Snapshot()
	return pageTemplate.Execute(output, pageData{
		Title:       title,
		SocketPath:  socketPath,
		Time:        s.Time,
		Laps:        s.Laps,
		Placeholder: s.Placeholder,
		Buttons:     *s.Buttons,
		Theme:       s.Theme,
		Themes:      theme.All(),
		ClassList:   strings.Join(s.Classes, " "),
	})
}
