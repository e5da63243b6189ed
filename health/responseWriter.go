// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

var (
	errNotHijacker = errors.New("wrapped response does not implement http.Hijacker")
	errNotPusher   = errors.New("wrapped response does not implement http.Pusher")
)

// Wrap returns a *health.ResponseWriter which wraps the given http.ResponseWriter
func Wrap(delegate http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: delegate,
	}
}

// ResponseWriter is a wrapper type for an http.ResponseWriter that exposes the status code.
// A response that is written without an explicit WriteHeader reports http.StatusOK.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (r *ResponseWriter) StatusCode() int {
	return r.statusCode
}

func (r *ResponseWriter) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *ResponseWriter) Write(data []byte) (int, error) {
	if r.statusCode == 0 {
		r.statusCode = http.StatusOK
	}

	return r.ResponseWriter.Write(data)
}

// Hijack delegates to the wrapped ResponseWriter, returning an error if the delegate does
// not implement http.Hijacker.  Websocket upgrades require this.
func (r *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := r.ResponseWriter.(http.Hijacker); ok {
		r.statusCode = http.StatusSwitchingProtocols
		return hijacker.Hijack()
	}

	return nil, nil, errNotHijacker
}

// Flush delegates to the wrapped ResponseWriter.  If the delegate ResponseWriter does not
// implement http.Flusher, this method does nothing.
func (r *ResponseWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Push delegates to the wrapper ResponseWriter, returning an error if the delegate does
// not implement http.Pusher.
func (r *ResponseWriter) Push(target string, opts *http.PushOptions) error {
	if pusher, ok := r.ResponseWriter.(http.Pusher); ok {
		return pusher.Push(target, opts)
	}

	return errNotPusher
}
