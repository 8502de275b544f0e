// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

// Package server runs the relay's HTTP server with graceful shutdown on
// SIGTERM, SIGINT and SIGQUIT.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
)

// ErrNoAddress reports a server constructed without a listen address.
var ErrNoAddress = errors.New("no listen address configured")

const shutdownTimeout = 10 * time.Second

// Server is a runnable HTTP server.
type Server interface {
	RunServer()
	Shutdown()
}

type server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

// NewServer builds a Server listening on address and serving handler.
func NewServer(address string, handler http.Handler, logger *logger.Logger) (Server, error) {
	if address == "" {
		return nil, ErrNoAddress
	}

	logger.Info().Str("address", address).Msg("creating new server...")
	return &server{
		httpServer: &http.Server{
			Addr:    address,
			Handler: handler,
		},
		logger: logger,
	}, nil
}

// RunServer serves until a stop signal arrives, then shuts down gracefully.
func (s *server) RunServer() {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()
		s.Shutdown()
		close(idleConnectionsClosed)
	}()

	s.logger.Info().Msg("Launching HTTP server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Err(err).Msg("HTTP server ListenAndServe")
		return
	}

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")
}

// Shutdown drains in-flight requests within shutdownTimeout.
func (s *server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Err(err).Msg("HTTP server Shutdown")
	}
}
