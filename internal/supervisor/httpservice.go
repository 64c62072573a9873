// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package supervisor

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/veiltrics/veiltrics/internal/logging"
)

// HTTPService adapts an http.Server to suture.Service. The server is
// built fresh on every Serve call: a Shutdown server's ListenAndServe
// returns ErrServerClosed forever, so reusing one instance would make
// the service unrestartable after the supervisor bounces it.
type HTTPService struct {
	newServer       func() *http.Server
	shutdownTimeout time.Duration
}

// NewHTTPService wraps a server factory for supervision.
func NewHTTPService(newServer func() *http.Server, shutdownTimeout time.Duration) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	return &HTTPService{newServer: newServer, shutdownTimeout: shutdownTimeout}
}

// Serve implements suture.Service.
func (s *HTTPService) Serve(ctx context.Context) error {
	server := s.newServer()
	errCh := make(chan error, 1)

	go func() {
		logging.Info().Str("addr", server.Addr).Msg("http server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		// Listener died on its own; let the supervisor restart us.
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("http server shutdown incomplete")
		return err
	}

	err := <-errCh
	if errors.Is(err, http.ErrServerClosed) {
		return ctx.Err()
	}
	return err
}

// String names the service in supervisor logs.
func (s *HTTPService) String() string {
	return "http-server"
}
