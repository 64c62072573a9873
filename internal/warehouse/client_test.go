// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package warehouse

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/veiltrics/veiltrics/internal/models"
)

func testEvent(path string) *models.NormalizedEvent {
	return &models.NormalizedEvent{
		TrackingID: "550e8400-e29b-41d4-a716-446655440000",
		PageHost:   "blog.example.com",
		PagePath:   path,
		EventType:  models.EventTypePageview,
	}
}

func TestAppendEventsEncodesNDJSON(t *testing.T) {
	var gotAuth, gotContentType string
	var gotLines []map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		scanner := bufio.NewScanner(r.Body)
		for scanner.Scan() {
			var line map[string]any
			if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
				t.Errorf("line is not JSON: %v", err)
			}
			gotLines = append(gotLines, line)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")
	events := []*models.NormalizedEvent{testEvent("/a"), testEvent("/b")}
	if err := c.AppendEvents(context.Background(), events); err != nil {
		t.Fatalf("AppendEvents error: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotContentType != "application/x-ndjson" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if len(gotLines) != 2 {
		t.Fatalf("got %d NDJSON lines, want 2", len(gotLines))
	}
	if gotLines[1]["page_path"] != "/b" {
		t.Errorf("second line page_path = %v", gotLines[1]["page_path"])
	}
}

func TestAppendEventsEmptyBatchIsNoop(t *testing.T) {
	c := NewClient("http://warehouse.invalid", "t")
	if err := c.AppendEvents(context.Background(), nil); err != nil {
		t.Errorf("empty batch error: %v", err)
	}
}

func TestAppendEventsErrorClassification(t *testing.T) {
	tests := []struct {
		status        int
		wantRetryable bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.Copy(io.Discard, r.Body)
			w.WriteHeader(tt.status)
		}))

		c := NewClient(srv.URL, "t")
		err := c.AppendEvents(context.Background(), []*models.NormalizedEvent{testEvent("/x")})
		srv.Close()

		if err == nil {
			t.Errorf("status %d: expected error", tt.status)
			continue
		}
		if IsRetryable(err) != tt.wantRetryable {
			t.Errorf("status %d: IsRetryable = %v, want %v", tt.status, IsRetryable(err), tt.wantRetryable)
		}
	}
}

func TestAppendEventsNetworkFailureIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, "t")
	err := c.AppendEvents(context.Background(), []*models.NormalizedEvent{testEvent("/x")})
	if err == nil {
		t.Fatal("expected network error")
	}
	if !IsRetryable(err) {
		t.Error("network failure must be retryable")
	}
}

func TestRetryAfterFromHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t")
	err := c.AppendEvents(context.Background(), []*models.NormalizedEvent{testEvent("/x")})
	if got := RetryAfter(err); got != 7*time.Second {
		t.Errorf("RetryAfter = %v, want 7s", got)
	}
}

func TestRetryAfterFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"overloaded","retry_after":2.5}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t")
	err := c.AppendEvents(context.Background(), []*models.NormalizedEvent{testEvent("/x")})
	if got := RetryAfter(err); got != 2500*time.Millisecond {
		t.Errorf("RetryAfter = %v, want 2.5s", got)
	}
}

func TestQueryPipe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0/pipes/top_pages.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "10" {
			t.Errorf("limit param = %q", r.URL.Query().Get("limit"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [{"page_path": "/post", "visits": 42}],
			"meta": [{"name": "page_path", "type": "String"}, {"name": "visits", "type": "UInt64"}],
			"statistics": {"elapsed": 0.004, "rows_read": 1200, "bytes_read": 9000}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t")
	res, err := c.QueryPipe(context.Background(), "top_pages", map[string][]string{"limit": {"10"}})
	if err != nil {
		t.Fatalf("QueryPipe error: %v", err)
	}
	if len(res.Data) != 1 || res.Data[0]["page_path"] != "/post" {
		t.Errorf("data = %v", res.Data)
	}
	if res.Statistics.RowsRead != 1200 {
		t.Errorf("rows_read = %d", res.Statistics.RowsRead)
	}
}

func TestQueryPipeErrorSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"unknown pipe"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t")
	_, err := c.QueryPipe(context.Background(), "nope", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}
