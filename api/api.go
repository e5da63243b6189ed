// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-kit/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/justinas/alice"
	"github.com/xmidt-org/stopwatch/httperror"
	"github.com/xmidt-org/stopwatch/logging"
	"github.com/xmidt-org/stopwatch/stopwatch"
	"github.com/xmidt-org/stopwatch/theme"
	"github.com/xmidt-org/stopwatch/viewer"
	"github.com/xmidt-org/stopwatch/widget"
	"github.com/xmidt-org/stopwatch/wire"
)

const (
	PagePath      = "/"
	StopwatchPath = "/api/v1/stopwatch"
	LapsPath      = "/api/v1/laps"
	ThemePath     = "/api/v1/theme"
	ViewersPath   = "/api/v1/viewers"
	HealthPath    = "/health"
	MetricsPath   = "/metrics"

	// OperationVariable is the mux path variable holding a stopwatch operation
	OperationVariable = "operation"
)

// LapResponse is the body returned when a lap is recorded
type LapResponse struct {
	Lap    wire.LapEntry `json:"lap"`
	Status widget.Status `json:"status"`
}

// lapsRequest holds the query parameters of a laps request
type lapsRequest struct {
	Limit int `schema:"limit"`
}

// themeRequest holds the form parameters of a theme change
type themeRequest struct {
	Name theme.Theme `schema:"name,required"`
}

// API serves a widget and its viewers over HTTP
type API struct {
	logger     log.Logger
	socketPath string
	headers    http.Header
	maxLaps    int
	decoder    *schema.Decoder

	widget  *widget.Widget
	viewers *viewer.Manager
	health  http.Handler
	metrics http.Handler
}

// New creates an API.  The health and metrics handlers are optional, and their routes are
// only present when supplied.
func New(o *Options, w *widget.Widget, viewers *viewer.Manager, health, metrics http.Handler) *API {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &API{
		logger:     o.logger(),
		socketPath: o.socketPath(),
		headers:    o.headers(),
		maxLaps:    o.maxLaps(),
		decoder:    decoder,
		widget:     w,
		viewers:    viewers,
		health:     health,
		metrics:    metrics,
	}
}

// Handler builds the complete, decorated router.  Any extra constructors are applied inside
// panic recovery and request logging.
func (a *API) Handler(extra ...alice.Constructor) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(response http.ResponseWriter, _ *http.Request) {
		httperror.WriteMessage(response, "not found", http.StatusNotFound, nil)
	})

	router.MethodNotAllowedHandler = http.HandlerFunc(func(response http.ResponseWriter, _ *http.Request) {
		httperror.WriteMessage(response, "method not allowed", http.StatusMethodNotAllowed, nil)
	})

	router.Methods(http.MethodGet).Path(PagePath).HandlerFunc(a.page)
	router.Methods(http.MethodGet).Path(StopwatchPath).HandlerFunc(a.status)
	router.Methods(http.MethodPost).
		Path(StopwatchPath + "/{" + OperationVariable + ":start|pause|reset|lap}").
		HandlerFunc(a.operation)

	router.Methods(http.MethodGet).Path(LapsPath).HandlerFunc(a.laps)
	router.Methods(http.MethodGet).Path(ThemePath).HandlerFunc(a.currentTheme)
	router.Methods(http.MethodPut, http.MethodPost).Path(ThemePath).HandlerFunc(a.applyTheme)

	if a.viewers != nil {
		router.Methods(http.MethodGet).Path(a.socketPath).HandlerFunc(a.connect)
		router.Methods(http.MethodGet).Path(ViewersPath).HandlerFunc(a.listViewers)
	}

	if a.health != nil {
		router.Methods(http.MethodGet).Path(HealthPath).Handler(a.health)
	}

	if a.metrics != nil {
		router.Methods(http.MethodGet).Path(MetricsPath).Handler(a.metrics)
	}

	return alice.New(Recovery(a.logger), RequestLogging(a.logger), StaticHeaders(a.headers)).
		Append(extra...).
		Then(router)
}

// responseFormat picks msgpack only when a client explicitly accepts it
func responseFormat(request *http.Request) wire.Format {
	if strings.Contains(request.Header.Get("Accept"), wire.Msgpack.ContentType()) {
		return wire.Msgpack
	}

	return wire.JSON
}

func (a *API) write(response http.ResponseWriter, request *http.Request, status int, v interface{}) {
	var (
		format = responseFormat(request)
		body   []byte
	)

	if err := wire.NewEncoderBytes(&body, format).Encode(v); err != nil {
		a.writeError(response, err)
		return
	}

	response.Header().Set("Content-Type", format.ContentType())
	response.WriteHeader(status)
	response.Write(body)
}

// writeError maps an error onto a status code and writes it as a JSON message
func (a *API) writeError(response http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, theme.ErrUnknownTheme), errors.Is(err, widget.ErrUnknownCommand):
		status = http.StatusBadRequest
	case errors.Is(err, stopwatch.ErrStopped), errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	default:
		var multi schema.MultiError
		if errors.As(err, &multi) {
			status = http.StatusBadRequest
		} else {
			status = http.StatusInternalServerError
		}
	}

	if status >= http.StatusInternalServerError {
		logging.Error(a.logger).Log(logging.MessageKey(), "request failed", logging.ErrorKey(), err)
	}

	httperror.Write(response, httperror.Wrap(err, status, nil))
}

func (a *API) page(response http.ResponseWriter, request *http.Request) {
	var page strings.Builder
	if err := a.widget.Render(&page, a.socketPath); err != nil {
		a.writeError(response, err)
		return
	}

	response.Header().Set("Content-Type", "text/html; charset=utf-8")
	response.Write([]byte(page.String()))
}

func (a *API) status(response http.ResponseWriter, request *http.Request) {
	status, err := a.widget.Status(request.Context())
	if err != nil {
		a.writeError(response, err)
		return
	}

	a.write(response, request, http.StatusOK, status)
}

func (a *API) operation(response http.ResponseWriter, request *http.Request) {
	var (
		ctx       = request.Context()
		operation = mux.Vars(request)[OperationVariable]
	)

	if operation == wire.LapCommand {
		a.recordLap(response, request)
		return
	}

	if err := a.widget.Execute(ctx, wire.Command{Command: operation}); err != nil {
		a.writeError(response, err)
		return
	}

	a.status(response, request)
}

func (a *API) recordLap(response http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	lap, recorded, err := a.widget.Stopwatch().RecordLap(ctx)
	if err != nil {
		a.writeError(response, err)
		return
	}

	if !recorded {
		response.WriteHeader(http.StatusNoContent)
		return
	}

	status, err := a.widget.Status(ctx)
	if err != nil {
		a.writeError(response, err)
		return
	}

	a.write(response, request, http.StatusOK, LapResponse{
		Lap:    wire.LapEntry{Number: lap.Index, Time: stopwatch.FormatTime(lap.ElapsedMs)},
		Status: status,
	})
}

func (a *API) laps(response http.ResponseWriter, request *http.Request) {
	var lr lapsRequest
	if err := a.decoder.Decode(&lr, request.URL.Query()); err != nil {
		a.writeError(response, err)
		return
	}

	if lr.Limit < 0 {
		httperror.WriteMessage(response, "limit cannot be negative", http.StatusBadRequest, nil)
		return
	}

	if a.maxLaps > 0 && (lr.Limit == 0 || lr.Limit > a.maxLaps) {
		lr.Limit = a.maxLaps
	}

	state, err := a.widget.Stopwatch().State(request.Context())
	if err != nil {
		a.writeError(response, err)
		return
	}

	laps := state.Laps
	if lr.Limit > 0 && lr.Limit < len(laps) {
		laps = laps[:lr.Limit]
	}

	entries := make([]wire.LapEntry, len(laps))
	for i, lap := range laps {
		entries[i] = wire.LapEntry{Number: lap.Index, Time: stopwatch.FormatTime(lap.ElapsedMs)}
	}

	a.write(response, request, http.StatusOK, entries)
}

func (a *API) currentTheme(response http.ResponseWriter, request *http.Request) {
	a.write(response, request, http.StatusOK, theme.NewChange(a.widget.Selector().Current()))
}

func (a *API) applyTheme(response http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		httperror.WriteMessage(response, err.Error(), http.StatusBadRequest, nil)
		return
	}

	var tr themeRequest
	if err := a.decoder.Decode(&tr, request.Form); err != nil {
		a.writeError(response, err)
		return
	}

	change, err := a.widget.Selector().Apply(tr.Name)
	if err != nil {
		a.writeError(response, err)
		return
	}

	a.write(response, request, http.StatusOK, change)
}

func (a *API) connect(response http.ResponseWriter, request *http.Request) {
	// the manager has already written any error response
	if id, err := a.viewers.Connect(response, request); err == nil {
		logging.Debug(a.logger).Log(logging.MessageKey(), "viewer attached", "id", id)
	}
}

func (a *API) listViewers(response http.ResponseWriter, request *http.Request) {
	a.write(response, request, http.StatusOK, a.viewers.Viewers())
}
