// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package api

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 10 * time.Second
	idleTimeout            = 30 * time.Second
)

var errAlreadyStarted = errors.New("server already started")

type Server struct {
	cfg      Config
	listener net.Listener
	srv      *http.Server
	mux      *http.ServeMux
	log      mlog.LoggerIFace
}

func NewServer(cfg Config, log mlog.LoggerIFace) (*Server, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, err
	}

	if log == nil {
		return nil, fmt.Errorf("log should not be nil")
	}

	mux := http.NewServeMux()

	return &Server{
		cfg: cfg,
		log: log,
		mux: mux,
		srv: &http.Server{
			Addr:              cfg.ListenAddress,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
			TLSConfig:         tlsConfig(),
		},
	}, nil
}

func tlsConfig() *tls.Config {
	return &tls.Config{
		MinVersion:       tls.VersionTLS12,
		CurvePreferences: []tls.CurveID{tls.X25519, tls.CurveP256},
	}
}

// Start binds the listen address and serves requests in the background.
func (s *Server) Start() error {
	if s.listener != nil {
		return errAlreadyStarted
	}

	listener, err := net.Listen("tcp", s.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = listener

	s.log.Info("api: server is listening",
		mlog.String("addr", listener.Addr().String()),
		mlog.Bool("tls", s.cfg.TLS.Enable))

	go s.serve()

	return nil
}

func (s *Server) serve() {
	var err error
	if s.cfg.TLS.Enable {
		err = s.srv.ServeTLS(s.listener, s.cfg.TLS.CertFile, s.cfg.TLS.CertKey)
	} else {
		err = s.srv.Serve(s.listener)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Critical("api: error serving HTTP", mlog.Err(err))
	}
}

// Stop waits up to ShutdownTimeout for in-flight requests to complete.
// Hijacked connections such as websockets are not waited on.
func (s *Server) Stop() error {
	timeout := s.cfg.ShutdownTimeout
	if timeout == 0 {
		timeout = defaultShutdownTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.log.Info("api: server was shutdown")

	return nil
}

// Addr returns the bound address, or an empty string before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
