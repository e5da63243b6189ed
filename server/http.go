// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	stdlog "log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/xmidt-org/stopwatch/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewServerLogger adapts a go-kit Logger onto a golang Logger in a way that is appropriate
// for http.Server.ErrorLog.
func NewServerLogger(logger log.Logger) *stdlog.Logger {
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	return stdlog.New(
		log.NewStdlibAdapter(logger),
		"", // having a prefix gives the adapter trouble
		stdlog.LstdFlags|stdlog.LUTC,
	)
}

// NewServerConnStateLogger adapts a go-kit Logger onto a connection state handler appropriate
// for http.Server.ConnState.
func NewServerConnStateLogger(logger log.Logger) func(net.Conn, http.ConnState) {
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	return func(c net.Conn, cs http.ConnState) {
		logging.Debug(logger).Log(
			"remoteAddress", c.RemoteAddr(),
			"state", cs,
		)
	}
}

// ServerOptions configures the primary HTTP server
type ServerOptions struct {
	// Name identifies the server in logs, traces, and metrics.  If unset, DefaultServerName is used.
	Name string

	// Address is the listen address.  If unset, DefaultAddress is used.
	Address string

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	// ShutdownTimeout bounds a graceful shutdown.  If unset, DefaultShutdownTimeout is used.
	ShutdownTimeout time.Duration

	// DisableKeepAlives indicates whether the server should honor keep alives
	DisableKeepAlives bool

	// CertificateFile is the HTTPS certificate file.  If both this field and KeyFile are set,
	// the server uses TLS.
	CertificateFile string

	// KeyFile is the HTTPS key file
	KeyFile string

	// DisableTracing turns off the otelhttp handler decoration
	DisableTracing bool

	// Logger is the go-kit Logger to use for server startup and error logging.  If not
	// supplied, logging.DefaultLogger() is used instead.
	Logger log.Logger `json:"-"`
}

func (o *ServerOptions) name() string {
	if o != nil && len(o.Name) > 0 {
		return o.Name
	}

	return DefaultServerName
}

func (o *ServerOptions) address() string {
	if o != nil && len(o.Address) > 0 {
		return o.Address
	}

	return DefaultAddress
}

func (o *ServerOptions) shutdownTimeout() time.Duration {
	if o != nil && o.ShutdownTimeout > 0 {
		return o.ShutdownTimeout
	}

	return DefaultShutdownTimeout
}

func (o *ServerOptions) tls() bool {
	return o != nil && len(o.CertificateFile) > 0 && len(o.KeyFile) > 0
}

func (o *ServerOptions) logger() log.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}

	return logging.DefaultLogger()
}

// Server is a Runnable HTTP server.  Its listener reports active connections and its
// handler is decorated with request metrics and tracing.
type Server struct {
	name            string
	address         string
	shutdownTimeout time.Duration
	certificateFile string
	keyFile         string
	tls             bool
	logger          log.Logger
	measures        Measures
	httpServer      *http.Server

	once     sync.Once
	listener net.Listener
}

// NewServer creates a Server for the given handler
func NewServer(o *ServerOptions, m Measures, handler http.Handler) *Server {
	s := &Server{
		name:            o.name(),
		address:         o.address(),
		shutdownTimeout: o.shutdownTimeout(),
		tls:             o.tls(),
		logger:          log.With(o.logger(), "server", o.name()),
		measures:        m,
	}

	if s.tls {
		s.certificateFile = o.CertificateFile
		s.keyFile = o.KeyFile
	}

	handler = InstrumentHandler(m, handler)
	if o == nil || !o.DisableTracing {
		handler = otelhttp.NewHandler(handler, s.name)
	}

	s.httpServer = &http.Server{
		Addr:      s.address,
		Handler:   handler,
		ErrorLog:  NewServerLogger(s.logger),
		ConnState: NewServerConnStateLogger(s.logger),
	}

	if o != nil {
		s.httpServer.ReadTimeout = o.ReadTimeout
		s.httpServer.ReadHeaderTimeout = o.ReadHeaderTimeout
		s.httpServer.WriteTimeout = o.WriteTimeout
		s.httpServer.IdleTimeout = o.IdleTimeout
		s.httpServer.MaxHeaderBytes = o.MaxHeaderBytes
		s.httpServer.SetKeepAlivesEnabled(!o.DisableKeepAlives)
	}

	return s
}

func (s *Server) Name() string {
	return s.name
}

// Addr is the address actually bound.  It is nil until Run succeeds.
func (s *Server) Addr() net.Addr {
	if s.listener != nil {
		return s.listener.Addr()
	}

	return nil
}

// Run binds the listen address, then serves in a separate goroutine until shutdown is closed.
// The bind happens before Run returns, so address errors are reported to the caller.
// This method is idempotent.
func (s *Server) Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) (err error) {
	s.once.Do(func() {
		var l net.Listener
		if l, err = net.Listen("tcp", s.address); err != nil {
			logging.Error(s.logger).Log(logging.MessageKey(), "unable to listen", "address", s.address, logging.ErrorKey(), err)
			return
		}

		s.listener = InstrumentListener(s.logger, s.measures.ActiveConnections.With(ServerLabel, s.name), l)
		logging.Info(s.logger).Log(logging.MessageKey(), "starting server", "address", l.Addr().String(), "tls", s.tls)

		waitGroup.Add(2)
		go s.serve(waitGroup)
		go s.awaitShutdown(waitGroup, shutdown)
	})

	return
}

func (s *Server) serve(waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	var err error
	if s.tls {
		err = s.httpServer.ServeTLS(s.listener, s.certificateFile, s.keyFile)
	} else {
		err = s.httpServer.Serve(s.listener)
	}

	if errors.Is(err, http.ErrServerClosed) {
		logging.Info(s.logger).Log(logging.MessageKey(), "server closed")
	} else {
		logging.Error(s.logger).Log(logging.MessageKey(), "server exited", logging.ErrorKey(), err)
	}
}

func (s *Server) awaitShutdown(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) {
	defer waitGroup.Done()
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logging.Error(s.logger).Log(logging.MessageKey(), "graceful shutdown failed", logging.ErrorKey(), err)
		s.httpServer.Close()
	}
}
