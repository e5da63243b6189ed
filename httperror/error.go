// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package httperror writes errors as JSON HTTP responses of the form {"message": "..."}.
package httperror

import (
	"encoding/json"
	"errors"
	"net/http"
)

const (
	// DefaultStatus is the response status code used when the error's code
	// is less than http.StatusBadRequest (400), i.e. when the code is not
	// an HTTP error code.
	DefaultStatus = http.StatusInternalServerError
)

// Interface represents an HTTP-specific error with additional metadata
// for the response.
type Interface interface {
	error
	Status() int
	Header() http.Header
}

// httpError is the internal implementation of Interface
type httpError struct {
	err    error
	status int
	header http.Header
}

func (e *httpError) Error() string {
	return e.err.Error()
}

func (e *httpError) Unwrap() error {
	return e.err
}

func (e *httpError) Status() int {
	return e.status
}

func (e *httpError) Header() http.Header {
	return e.header
}

// New returns an error containing the given internal metadata.  This constructor is appropriate
// for infrastructure that needs to return HTTP metadata about an error from code not directly
// part of an HTTP handler.
func New(message string, status int, header http.Header) Interface {
	return Wrap(errors.New(message), status, header)
}

// Wrap associates HTTP metadata with an existing error.  The returned error unwraps to err.
func Wrap(err error, status int, header http.Header) Interface {
	if status < http.StatusBadRequest {
		status = DefaultStatus
	}

	return &httpError{
		err:    err,
		status: status,
		header: header,
	}
}

// Write handles writing the given error to the response, taking care
// of the response status and any output headers.  Any error in err's chain that
// implements Interface supplies the status and headers.  Otherwise, DefaultStatus is used.
func Write(response http.ResponseWriter, err error) (int, error) {
	var httpErr Interface
	if errors.As(err, &httpErr) {
		return WriteMessage(response, err.Error(), httpErr.Status(), httpErr.Header())
	}

	return WriteMessage(response, err.Error(), DefaultStatus, nil)
}

// WriteMessage handles writing full error message information out to a response.  This function
// avoids the overhead of creating a full blown HTTP error object.
//
// If status is not an HTTP error code, DefaultStatus is used.  The header is optional, and can be nil.
func WriteMessage(response http.ResponseWriter, message string, status int, header http.Header) (int, error) {
	if status < http.StatusBadRequest {
		status = DefaultStatus
	}

	for key, values := range header {
		for _, value := range values {
			response.Header().Add(key, value)
		}
	}

	body, err := json.Marshal(struct {
		Message string `json:"message"`
	}{message})

	if err != nil {
		return 0, err
	}

	response.Header().Set("Content-Type", "application/json; charset=UTF-8")
	response.Header().Set("X-Content-Type-Options", "nosniff")
	response.WriteHeader(status)
	return response.Write(body)
}
