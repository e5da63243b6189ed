// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"io"
	"strings"

	"github.com/ugorji/go/codec"
)

// Format indicates which encoding is used for messages and commands
type Format int

const (
	JSON Format = iota
	Msgpack

	// MsgpackSubprotocol is the websocket subprotocol that selects Msgpack
	MsgpackSubprotocol = "msgpack"
)

var (
	// handles contains the canonical codec.Handle for each Format, in order
	// of Format constants
	handles = []codec.Handle{
		&codec.JsonHandle{
			BasicHandle: codec.BasicHandle{
				TypeInfos: codec.NewTypeInfos([]string{"json"}),
			},
			IntegerAsString: 'L',
		},
		&codec.MsgpackHandle{
			BasicHandle: codec.BasicHandle{
				TypeInfos: codec.NewTypeInfos([]string{"json"}),
				DecodeOptions: codec.DecodeOptions{
					RawToString: true,
				},
			},
			WriteExt: true,
		},
	}

	contentTypes = []string{
		"application/json",
		"application/msgpack",
	}
)

// handle looks up the appropriate codec.Handle for this format constant.
// This method returns nil if the format value is invalid.
func (f Format) handle() codec.Handle {
	if f >= 0 && int(f) < len(handles) {
		return handles[f]
	}

	return nil
}

// ContentType returns the MIME type for this format
func (f Format) ContentType() string {
	if f >= 0 && int(f) < len(contentTypes) {
		return contentTypes[f]
	}

	return "application/octet-stream"
}

// Binary tests if this format produces binary rather than text frames
func (f Format) Binary() bool {
	return f == Msgpack
}

func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case Msgpack:
		return "Msgpack"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatForSubprotocol maps a negotiated websocket subprotocol onto a Format.  Anything
// other than MsgpackSubprotocol, including no subprotocol, is JSON.
func FormatForSubprotocol(subprotocol string) Format {
	if strings.EqualFold(subprotocol, MsgpackSubprotocol) {
		return Msgpack
	}

	return JSON
}

// Encoder represents the underlying ugorji behavior that this package supports
type Encoder interface {
	Encode(interface{}) error
	Reset(io.Writer)
	ResetBytes(*[]byte)
}

// Decoder represents the underlying ugorji behavior that this package supports
type Decoder interface {
	Decode(interface{}) error
	Reset(io.Reader)
	ResetBytes([]byte)
}

// NewEncoder produces a ugorji Encoder for the given format
func NewEncoder(output io.Writer, f Format) Encoder {
	return codec.NewEncoder(output, f.handle())
}

// NewEncoderBytes produces a ugorji Encoder that appends to a byte slice
func NewEncoderBytes(output *[]byte, f Format) Encoder {
	return codec.NewEncoderBytes(output, f.handle())
}

// NewDecoder produces a ugorji Decoder for the given format
func NewDecoder(input io.Reader, f Format) Decoder {
	return codec.NewDecoder(input, f.handle())
}

// NewDecoderBytes produces a ugorji Decoder over a byte slice
func NewDecoderBytes(input []byte, f Format) Decoder {
	return codec.NewDecoderBytes(input, f.handle())
}

// MustEncode is a convenience function that encodes a value and panics on failure
func MustEncode(v interface{}, f Format) []byte {
	var (
		output  []byte
		encoder = NewEncoderBytes(&output, f)
	)

	if err := encoder.Encode(v); err != nil {
		panic(err)
	}

	return output
}
