// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"net/http"
	"net/textproto"
	"time"

	"github.com/go-kit/log"
	"github.com/justinas/alice"
	"github.com/xmidt-org/stopwatch/health"
	"github.com/xmidt-org/stopwatch/httperror"
	"github.com/xmidt-org/stopwatch/logging"
)

// Recovery returns an alice constructor that turns a panic into a 500 response
func Recovery(logger log.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					logging.Error(logger).Log(
						logging.MessageKey(), "recovering from panic",
						"path", request.URL.Path,
						logging.ErrorKey(), fmt.Sprint(recovered),
					)

					httperror.WriteMessage(response, "internal server error", http.StatusInternalServerError, nil)
				}
			}()

			next.ServeHTTP(response, request)
		})
	}
}

// RequestLogging returns an alice constructor that logs each request at debug level
// and each failed request at warn level
func RequestLogging(logger log.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			var (
				start   = time.Now()
				wrapped = health.Wrap(response)
			)

			next.ServeHTTP(wrapped, request)

			statusCode := wrapped.StatusCode()
			levelled := logging.Debug(logger)
			if statusCode >= 400 {
				levelled = logging.Warn(logger)
			}

			levelled.Log(
				logging.MessageKey(), "request served",
				"method", request.Method,
				"path", request.URL.Path,
				"status", statusCode,
				"duration", time.Since(start),
			)
		})
	}
}

// StaticHeaders returns an alice constructor that emits a static set of headers
// into every response.  If the set of headers is empty, the constructor does no
// decoration.
func StaticHeaders(extra http.Header) alice.Constructor {
	if len(extra) == 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	// headers read from configuration do not use canonical keys
	canonical := make(http.Header, len(extra))
	for k, v := range extra {
		canonical[textproto.CanonicalMIMEHeaderKey(k)] = v
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			header := response.Header()
			for k, v := range canonical {
				header[k] = v
			}

			next.ServeHTTP(response, request)
		})
	}
}
