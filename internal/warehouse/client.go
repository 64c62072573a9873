// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package warehouse

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/veiltrics/veiltrics/internal/models"
)

const (
	// DefaultAppendTimeout bounds one append attempt. Slightly above
	// the read-path budgets: a write holds no client connection open.
	DefaultAppendTimeout = 10 * time.Second

	// DefaultQueryTimeout bounds one pipe query.
	DefaultQueryTimeout = 8 * time.Second

	// eventsDatasource is the warehouse table receiving raw events.
	eventsDatasource = "analytics_events"

	maxErrorBodyBytes = 4 * 1024
)

// Client talks to the analytics warehouse over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a warehouse client. baseURL is the API root
// without a trailing slash; token is the ingest/query bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: DefaultAppendTimeout,
		},
	}
}

// NewClientWithHTTP creates a client over a caller-supplied HTTP
// client. Used by tests and by callers that share a transport.
func NewClientWithHTTP(baseURL, token string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

// AppendEvents writes events to the warehouse append API as
// newline-delimited JSON, one event object per line. The call makes a
// single attempt; the caller owns retries.
func (c *Client) AppendEvents(ctx context.Context, events []*models.NormalizedEvent) error {
	if len(events) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("encode event: %w", err)
		}
	}

	endpoint := fmt.Sprintf("%s/v0/events?name=%s", c.baseURL, eventsDatasource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return fmt.Errorf("build append request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/x-ndjson")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("append events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return newAPIError(resp.StatusCode, resp.Header, body)
}

// PipeResult is one pipe query response.
type PipeResult struct {
	Data       []map[string]any       `json:"data"`
	Meta       []ColumnMeta           `json:"meta"`
	Statistics models.QueryStatistics `json:"statistics"`
}

// ColumnMeta describes one result column.
type ColumnMeta = models.ColumnMeta

// QueryPipe runs a named warehouse pipe with the given parameters and
// decodes its JSON result.
func (c *Client) QueryPipe(ctx context.Context, pipe string, params url.Values) (*PipeResult, error) {
	endpoint := fmt.Sprintf("%s/v0/pipes/%s.json", c.baseURL, url.PathEscape(pipe))
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build pipe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query pipe %s: %w", pipe, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, newAPIError(resp.StatusCode, resp.Header, body)
	}

	var result PipeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode pipe %s response: %w", pipe, err)
	}
	return &result, nil
}
