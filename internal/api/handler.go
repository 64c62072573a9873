// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package api

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/veiltrics/veiltrics/internal/beacon"
	"github.com/veiltrics/veiltrics/internal/ingest"
	"github.com/veiltrics/veiltrics/internal/middleware"
	"github.com/veiltrics/veiltrics/internal/models"
	"github.com/veiltrics/veiltrics/internal/querycache"
	"github.com/veiltrics/veiltrics/internal/warehouse"
)

// BeaconProcessor runs the full ingestion flow for one beacon.
type BeaconProcessor interface {
	Process(ctx context.Context, req *ingest.Request) ingest.Outcome
}

// PipeQuerier executes a warehouse pipe query.
type PipeQuerier interface {
	QueryPipe(ctx context.Context, pipe string, params url.Values) (*warehouse.PipeResult, error)
}

// DomainLookup resolves a public-page project by its registered domain.
type DomainLookup interface {
	LookupProjectByDomain(ctx context.Context, domain string) (*models.Project, error)
}

// Handler holds the HTTP handlers for both API surfaces.
type Handler struct {
	processor BeaconProcessor
	pipes     PipeQuerier
	cache     *querycache.Store
	projects  DomainLookup
	jwtSecret []byte
}

// NewHandler wires the handler dependencies.
func NewHandler(processor BeaconProcessor, pipes PipeQuerier, cache *querycache.Store, projects DomainLookup, jwtSecret []byte) *Handler {
	return &Handler{
		processor: processor,
		pipes:     pipes,
		cache:     cache,
		projects:  projects,
		jwtSecret: jwtSecret,
	}
}

// Beacon accepts one tracking beacon. Rejections answer 400 with a
// plain-text "CODE: message" line; everything else answers an empty
// 200 so the response never reveals whether an event was recorded.
func (h *Handler) Beacon(w http.ResponseWriter, r *http.Request) {
	if rej := beacon.CheckContentLength(r.ContentLength); rej != nil {
		writeRejection(w, rej)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, beacon.MaxPayloadBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeRejection(w, &beacon.Rejection{
			Code:    beacon.CodePayloadTooLarge,
			Message: "Request body exceeds size limit",
		})
		return
	}

	outcome := h.processor.Process(r.Context(), &ingest.Request{
		Body:      body,
		ClientIP:  clientIP(r),
		UserAgent: r.UserAgent(),
		Origin:    r.Header.Get("Origin"),
		Referer:   r.Referer(),
		Headers:   r.Header,
		RequestID: middleware.GetRequestID(r.Context()),
	})

	if outcome.Rejection != nil {
		writeRejection(w, outcome.Rejection)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func writeRejection(w http.ResponseWriter, rej *beacon.Rejection) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte(rej.Error()))
}

// clientIP extracts the peer address. The RealIP middleware has
// already rewritten RemoteAddr from X-Forwarded-For when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Health answers liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
