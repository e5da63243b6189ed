// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZap builds a zap.Logger that honors the same output, encoding, and level
// settings as the go-kit loggers produced by New.
func NewZap(o *Options) *zap.Logger {
	return NewZapWithWriter(o, o.output())
}

// NewZapWithWriter is like NewZap, but sends output to w.
func NewZapWithWriter(o *Options, w io.Writer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if o != nil && o.JSON {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	return zap.New(
		zapcore.NewCore(encoder, zapcore.AddSync(w), zapLevel(o.level())),
	)
}

func zapLevel(v string) zapcore.Level {
	switch strings.ToUpper(v) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN":
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// zapLogger adapts a zap.Logger onto the go-kit Logger interface.  The go-kit level and
// message keys are translated into the zap level and message.  Everything else becomes a field.
type zapLogger struct {
	*zap.Logger
}

// NewZapLogger adapts l onto go-kit.  If l is nil, sallust.Default() is used.
func NewZapLogger(l *zap.Logger) log.Logger {
	if l == nil {
		l = sallust.Default()
	}

	return zapLogger{l}
}

func (l zapLogger) Log(keyvals ...interface{}) error {
	var (
		message string
		lvl     = zapcore.InfoLevel
		fields  = make([]zap.Field, 0, len(keyvals)/2)
	)

	for i := 0; i+1 < len(keyvals); i += 2 {
		key, value := keyvals[i], keyvals[i+1]
		switch {
		case key == MessageKey():
			message = fmt.Sprint(value)

		case key == level.Key():
			lvl = toZapLevel(value)

		case key == TimestampKey():
			// the zap encoder writes its own timestamp

		default:
			fields = append(fields, zap.Any(fmt.Sprint(key), value))
		}
	}

	if ce := l.Check(lvl, message); ce != nil {
		ce.Write(fields...)
	}

	return nil
}

func toZapLevel(v interface{}) zapcore.Level {
	if lv, ok := v.(level.Value); ok {
		return zapLevel(lv.String())
	}

	return zapLevel(fmt.Sprint(v))
}
