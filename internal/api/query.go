// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/veiltrics/veiltrics/internal/logging"
	"github.com/veiltrics/veiltrics/internal/querycache"
	"github.com/veiltrics/veiltrics/internal/warehouse"
)

// allowedPipes is the closed set of warehouse pipes the API exposes.
// Anything else 404s without touching the warehouse.
var allowedPipes = map[string]bool{
	"top_pages":           true,
	"top_sources":         true,
	"visitors_timeseries": true,
	"geo_breakdown":       true,
	"devices":             true,
	"events_timeseries":   true,
}

// QueryPipe serves an authenticated dashboard query scoped to the
// token's project.
func (h *Handler) QueryPipe(w http.ResponseWriter, r *http.Request) {
	project := projectFromContext(r.Context())
	if project == "" {
		respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "No project scope")
		return
	}
	h.servePipe(w, r, project)
}

// PublicQueryPipe serves unauthenticated queries for projects that
// opted into a public stats page, resolved by registered domain.
func (h *Handler) PublicQueryPipe(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("domain")
	if domain == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Missing domain parameter")
		return
	}

	project, err := h.projects.LookupProjectByDomain(r.Context(), domain)
	if err != nil {
		// Unknown domains and lookup failures answer identically so
		// the endpoint cannot be used to enumerate registered sites.
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "No public stats for this domain")
		return
	}

	h.servePipe(w, r, project.TrackingID)
}

func (h *Handler) servePipe(w http.ResponseWriter, r *http.Request, project string) {
	pipe := chi.URLParam(r, "pipe")
	if !allowedPipes[pipe] {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Unknown pipe")
		return
	}

	window, filters := parseQueryParams(r.URL.Query())

	// Aggregates refresh on the cache cadence; let browsers reuse them
	// for the same interval.
	w.Header().Set("Cache-Control", "private, max-age=60")

	if res, hit := h.cache.Lookup(project, pipe, filters, window); hit != querycache.Miss {
		respondData(w, r, res.Rows, res.Meta, nil, 0, true)
		return
	}

	start := time.Now()
	result, err := h.pipes.QueryPipe(r.Context(), pipe, warehouseParams(project, window, filters))
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("pipe", pipe).Msg("warehouse query failed")

		var apiErr *warehouse.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Unknown pipe")
			return
		}
		respondError(w, r, http.StatusBadGateway, ErrCodeUpstream, "Warehouse query failed")
		return
	}

	h.cache.Put(project, pipe, filters, window, result.Data, result.Meta)
	respondData(w, r, result.Data, result.Meta, &result.Statistics, time.Since(start), false)
}

const (
	dateLayout      = "2006-01-02"
	defaultRange    = 7 * 24 * time.Hour
	maxRowLimit     = 1000
	defaultRowLimit = 100
)

// parseQueryParams splits the request query into the date window and
// the remaining filter dimensions. A missing window defaults to the
// last seven days, and the row limit is clamped. Reserved transport
// params never become filters.
func parseQueryParams(q url.Values) (querycache.Window, map[string]string) {
	window := querycache.Window{
		Start: q.Get("date_from"),
		End:   q.Get("date_to"),
	}
	if window.Start == "" && window.End == "" {
		now := time.Now().UTC()
		window.Start = now.Add(-defaultRange).Format(dateLayout)
		window.End = now.Format(dateLayout)
	}

	filters := make(map[string]string)
	for key, vals := range q {
		switch key {
		case "date_from", "date_to", "domain", "token":
			continue
		}
		if len(vals) > 0 && vals[0] != "" {
			filters[key] = vals[0]
		}
	}
	filters["limit"] = clampLimit(filters["limit"])

	return window, filters
}

func clampLimit(raw string) string {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		n = defaultRowLimit
	}
	if n > maxRowLimit {
		n = maxRowLimit
	}
	return strconv.Itoa(n)
}

// warehouseParams builds the upstream pipe parameters: the project
// scope, the window, and every filter dimension.
func warehouseParams(project string, w querycache.Window, filters map[string]string) url.Values {
	params := url.Values{}
	params.Set("tracking_id", project)
	if w.Start != "" {
		params.Set("date_from", w.Start)
	}
	if w.End != "" {
		params.Set("date_to", w.End)
	}
	for k, v := range filters {
		params.Set(k, v)
	}
	return params
}
