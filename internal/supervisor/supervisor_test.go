// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// signalService reports when Serve starts, then blocks on the context.
type signalService struct {
	started chan struct{}
}

func (s *signalService) Serve(ctx context.Context) error {
	s.started <- struct{}{}
	<-ctx.Done()
	return ctx.Err()
}

func TestTreeRunsServicesUntilCanceled(t *testing.T) {
	tree := NewTree(discardLogger(), DefaultTreeConfig())

	deliverySvc := &signalService{started: make(chan struct{}, 1)}
	apiSvc := &signalService{started: make(chan struct{}, 1)}
	tree.AddDeliveryService(deliverySvc)
	tree.AddAPIService(apiSvc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tree.Serve(ctx) }()

	for _, ch := range []chan struct{}{deliverySvc.started, apiSvc.started} {
		select {
		case <-ch:
		case <-time.After(5 * time.Second):
			t.Fatal("service did not start")
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("tree did not stop after cancel")
	}
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()
	return addr
}

func waitForServer(t *testing.T, addr string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/")
		if err == nil {
			resp.Body.Close()
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func httpServiceFor(addr string) *HTTPService {
	return NewHTTPService(func() *http.Server {
		return &http.Server{
			Addr: addr,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}),
		}
	}, 5*time.Second)
}

func TestHTTPServiceGracefulShutdown(t *testing.T) {
	addr := freePort(t)
	svc := httpServiceFor(addr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	waitForServer(t, addr)

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("HTTPService did not shut down")
	}
}

func TestHTTPServiceRestartsAfterShutdown(t *testing.T) {
	addr := freePort(t)
	svc := httpServiceFor(addr)

	// A supervisor may bounce the service; each Serve call must bring
	// up a working listener, not a permanently closed server.
	for i := 0; i < 2; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()

		waitForServer(t, addr)

		cancel()
		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("run %d: Serve returned %v, want context.Canceled", i, err)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("run %d: HTTPService did not shut down", i)
		}
	}
}

func TestHTTPServiceListenerFailureReturnsError(t *testing.T) {
	svc := NewHTTPService(func() *http.Server {
		return &http.Server{Addr: "127.0.0.1:-1"}
	}, time.Second)

	err := svc.Serve(context.Background())
	if err == nil {
		t.Fatal("Serve returned nil for invalid listen address")
	}
}
