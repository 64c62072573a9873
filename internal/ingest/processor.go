// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package ingest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/veiltrics/veiltrics/internal/beacon"
	"github.com/veiltrics/veiltrics/internal/botdetect"
	"github.com/veiltrics/veiltrics/internal/logging"
	"github.com/veiltrics/veiltrics/internal/metrics"
	"github.com/veiltrics/veiltrics/internal/models"
	"github.com/veiltrics/veiltrics/internal/privacy"
	"github.com/veiltrics/veiltrics/internal/registry"
	"github.com/veiltrics/veiltrics/internal/sources"
)

// ProjectLookup resolves tracking IDs to project records.
type ProjectLookup interface {
	LookupProject(ctx context.Context, trackingID string) (*models.Project, error)
}

// GeoLocator resolves a request to a location, or nil.
type GeoLocator interface {
	Locate(ip string, headers http.Header) *models.GeoLocation
}

// Enqueuer accepts events for background delivery.
type Enqueuer interface {
	Enqueue(ev *models.NormalizedEvent) bool
}

// Request carries the transport-level context of one beacon
// submission alongside its body.
type Request struct {
	Body      []byte
	ClientIP  string
	UserAgent string
	Origin    string
	Referer   string
	Headers   http.Header
	RequestID string
}

// Outcome is the result of processing one beacon. A nil Rejection
// means the client gets an empty 200 whether or not an event was
// emitted.
type Outcome struct {
	Rejection *beacon.Rejection

	// Emitted is true when a normalized event was handed to delivery.
	Emitted bool

	// DropReason names the silent-drop condition when no event was
	// emitted and nothing was rejected.
	DropReason string
}

// Processor wires the classification stages together.
type Processor struct {
	projects ProjectLookup
	salts    *privacy.SaltCache
	locator  GeoLocator
	pipeline Enqueuer
	forensic *logging.ForensicLogger
}

// NewProcessor builds a processor over its collaborators.
func NewProcessor(projects ProjectLookup, salts *privacy.SaltCache, locator GeoLocator, pipeline Enqueuer) *Processor {
	return &Processor{
		projects: projects,
		salts:    salts,
		locator:  locator,
		pipeline: pipeline,
		forensic: logging.NewForensicLogger(),
	}
}

// Process runs one beacon through validation and classification.
// Security-validation failures come back as a Rejection; every other
// failure mode drops the event silently and reports success upstream.
func (p *Processor) Process(ctx context.Context, req *Request) Outcome {
	start := time.Now()
	metrics.BeaconsReceived.Inc()

	b, rej := beacon.Validate(req.Body)
	if rej != nil {
		metrics.BeaconsRejected.WithLabelValues(rej.Code).Inc()
		p.forensic.LogRejection(&logging.ForensicEvent{
			Code:           rej.Code,
			Reason:         rej.Message,
			RemoteIP:       req.ClientIP,
			UserAgent:      req.UserAgent,
			Origin:         req.Origin,
			Referer:        req.Referer,
			PayloadPreview: string(req.Body),
			RequestID:      req.RequestID,
		})
		return Outcome{Rejection: rej}
	}

	if ok, reason := beacon.LocalTraffic(b); ok {
		return p.drop(ctx, "local_traffic", reason)
	}
	if beacon.PrivateClientIP(req.ClientIP) {
		return p.drop(ctx, "private_ip", "non-routable source address")
	}

	project, dropReason := p.authorizeProject(ctx, b)
	if project == nil {
		return p.drop(ctx, dropReason, "project authorization failed")
	}

	botResult := botdetect.Classify(req.UserAgent)
	kind := kindOf(b, botResult.IsBot)

	if kind == KindEngagement && !meaningfulEngagement(b) {
		return p.drop(ctx, "engagement_below_threshold", "engagement below threshold")
	}

	anonIP := privacy.AnonymizeIP(req.ClientIP)
	salt, err := p.salts.Get(ctx)
	if err != nil {
		// A bad or missing salt is fatal for the request: hashing with
		// a known-bad salt would corrupt session identity for the day.
		logging.Ctx(ctx).Error().Err(err).Msg("daily salt unavailable, dropping event")
		return p.drop(ctx, "salt_unavailable", "daily salt unavailable")
	}

	ev := &models.NormalizedEvent{
		EventType:   kind.String(),
		TrackingID:  project.TrackingID,
		SessionHash: privacy.SessionHash(salt, anonIP, req.UserAgent, b.PageHost),
		CreatedAt:   b.CreatedAt,
		PageHost:    b.PageHost,
		PagePath:    b.PagePath,
		PageTitle:   b.PageTitle,

		EngagementTimeMS:   b.EngagementTimeMS,
		ScrollDepthPercent: b.ScrollDepthPercent,
		AIService:          b.AIService,
		ShareTarget:        b.ShareTarget,

		GeoCountryCode: models.CountryUnknown,
	}

	if kind == KindBot {
		ev.IsBot = true
		ev.BotName = botResult.MatchedPattern
		ev.BotParent = botResult.Parent
		ev.BotCategory = botResult.Category
		ev.BotUserAgent = botResult.RawUserAgent

		// A known AI/search crawler still gets source attribution so
		// e.g. "OpenAI SearchBot" is distinguishable from generic bots.
		if src := sources.Classify(sources.Signals{UserAgent: req.UserAgent}); src.BotSource != "" {
			ev.SourceName = src.BotSource
		}
	}

	if kind.needsClassification() {
		ev.Referrer = b.Referrer
		ev.UTMSource = b.UTMSource
		ev.UTMMedium = b.UTMMedium
		ev.UTMCampaign = b.UTMCampaign
		ev.UTMTerm = b.UTMTerm
		ev.UTMContent = b.UTMContent

		src := sources.Classify(sources.Signals{
			Referrer:        b.Referrer,
			UTMSource:       b.UTMSource,
			UserAgent:       req.UserAgent,
			HasTextFragment: b.TextFragment != "",
		})
		ev.SourceName = src.SourceName
		ev.SourceType = src.SourceType

		// The one deliberate use of the raw client address: the offline
		// geo lookup reads it transiently and it is never stored.
		if loc := p.locator.Locate(req.ClientIP, req.Headers); loc != nil {
			ev.GeoCountryCode = loc.CountryCode
			ev.GeoRegionName = loc.RegionName
			ev.GeoCityName = loc.CityName
		}
	}

	p.pipeline.Enqueue(ev)
	metrics.EventsEmitted.WithLabelValues(kind.String()).Inc()
	metrics.IngestDuration.Observe(time.Since(start).Seconds())
	return Outcome{Emitted: true}
}

// authorizeProject resolves and checks the beacon's project. A nil
// project result means drop, with the reason in the second return.
// Registry infrastructure failures fail open as a drop, never a 5xx.
func (p *Processor) authorizeProject(ctx context.Context, b *models.Beacon) (*models.Project, string) {
	type lookup struct {
		project *models.Project
		reason  string
	}
	res := tryWithFallback(ctx, "project_lookup", lookup{reason: "registry_error"}, func() (lookup, error) {
		proj, err := p.projects.LookupProject(ctx, b.DataKey)
		if errors.Is(err, registry.ErrProjectNotFound) {
			return lookup{reason: "unknown_project"}, nil
		}
		if err != nil {
			return lookup{}, err
		}
		return lookup{project: proj}, nil
	})
	project := res.project
	if project == nil {
		return nil, res.reason
	}
	if !project.IsActive {
		return nil, "inactive_project"
	}
	if !domainMatches(project.Domain, b.PageHost) {
		return nil, "domain_mismatch"
	}
	return project, ""
}

// domainMatches accepts the registered domain itself and any of its
// subdomains.
func domainMatches(registered, pageHost string) bool {
	registered = strings.ToLower(strings.TrimSpace(registered))
	if registered == "" {
		return false
	}
	return pageHost == registered || strings.HasSuffix(pageHost, "."+registered)
}

func (p *Processor) drop(ctx context.Context, reason, detail string) Outcome {
	metrics.BeaconsDropped.WithLabelValues(reason).Inc()
	logging.Ctx(ctx).Debug().
		Str("reason", reason).
		Str("detail", detail).
		Msg("beacon dropped")
	return Outcome{DropReason: reason}
}
