// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/stopwatch/stopwatch"
	"github.com/xmidt-org/stopwatch/theme"
)

func TestFormat(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("application/json", JSON.ContentType())
	assert.Equal("application/msgpack", Msgpack.ContentType())
	assert.Equal("application/octet-stream", Format(-1).ContentType())
	assert.Equal("application/octet-stream", Format(2).ContentType())

	assert.False(JSON.Binary())
	assert.True(Msgpack.Binary())

	assert.Equal("JSON", JSON.String())
	assert.Equal("Msgpack", Msgpack.String())
	assert.Equal("Format(7)", Format(7).String())

	assert.NotNil(JSON.handle())
	assert.NotNil(Msgpack.handle())
	assert.Nil(Format(-1).handle())
	assert.Nil(Format(2).handle())
}

func TestFormatForSubprotocol(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(JSON, FormatForSubprotocol(""))
	assert.Equal(JSON, FormatForSubprotocol("json"))
	assert.Equal(JSON, FormatForSubprotocol("nosuch"))
	assert.Equal(Msgpack, FormatForSubprotocol("msgpack"))
	assert.Equal(Msgpack, FormatForSubprotocol("MsgPack"))
}

func TestMessageJSON(t *testing.T) {
	testData := []struct {
		message  Message
		expected string
	}{
		{
			Message{Type: DisplayMessage, Time: "00:00:01.500"},
			`{"type": "display", "time": "00:00:01.500"}`,
		},
		{
			Message{Type: LapMessage, Lap: &LapEntry{Number: 1, Time: "00:00:01.500"}},
			`{"type": "lap", "lap": {"number": 1, "time": "00:00:01.500"}}`,
		},
		{
			Message{Type: ClearMessage, Placeholder: stopwatch.NoLapsPlaceholder},
			`{"type": "clear", "placeholder": "No laps recorded yet."}`,
		},
		{
			Message{Type: ButtonsMessage, Buttons: &stopwatch.Buttons{Start: true, Reset: true}},
			`{"type": "buttons", "buttons": {"start": true, "pause": false, "reset": true, "lap": false}}`,
		},
	}

	for _, record := range testData {
		t.Run(string(record.message.Type), func(t *testing.T) {
			assert.JSONEq(t, record.expected, string(MustEncode(record.message, JSON)))
		})
	}
}

func TestMessageTranscode(t *testing.T) {
	change := theme.NewChange(theme.Dark)
	expected := Message{
		Type:        SnapshotMessage,
		Time:        "00:01:02.500",
		Laps:        []LapEntry{{Number: 2, Time: "00:01:02.500"}, {Number: 1, Time: "00:00:01.500"}},
		Placeholder: stopwatch.NoLapsPlaceholder,
		Buttons:     &stopwatch.Buttons{Start: true, Reset: true},
		Theme:       theme.Dark,
		Change:      &change,
		Classes:     []string{"dark-theme"},
	}

	for _, f := range []Format{JSON, Msgpack} {
		t.Run(f.String(), func(t *testing.T) {
			var (
				assert  = assert.New(t)
				require = require.New(t)

				buffer bytes.Buffer
				actual Message
			)

			require.NoError(NewEncoder(&buffer, f).Encode(expected))
			require.NoError(NewDecoder(&buffer, f).Decode(&actual))
			assert.Equal(expected, actual)

			actual = Message{}
			require.NoError(NewDecoderBytes(MustEncode(expected, f), f).Decode(&actual))
			assert.Equal(expected, actual)
		})
	}
}

// unencodable fails in every marshaling path the codec may choose
type unencodable struct{}

var errUnencodable = errors.New("expected encoding failure")

func (unencodable) MarshalJSON() ([]byte, error)   { return nil, errUnencodable }
func (unencodable) MarshalText() ([]byte, error)   { return nil, errUnencodable }
func (unencodable) MarshalBinary() ([]byte, error) { return nil, errUnencodable }

func TestMustEncode(t *testing.T) {
	for _, f := range []Format{JSON, Msgpack} {
		t.Run(f.String(), func(t *testing.T) {
			assert := assert.New(t)
			assert.NotEmpty(MustEncode(LapEntry{Number: 1, Time: stopwatch.ZeroTime}, f))
			assert.Panics(func() {
				MustEncode(unencodable{}, f)
			})
		})
	}
}

func TestLapEntryLabel(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Lap 1:", LapEntry{Number: 1}.Label())
	assert.Equal("Lap 27:", LapEntry{Number: 27}.Label())
}
