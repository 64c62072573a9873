// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package ingest

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/veiltrics/veiltrics/internal/beacon"
	"github.com/veiltrics/veiltrics/internal/models"
	"github.com/veiltrics/veiltrics/internal/privacy"
	"github.com/veiltrics/veiltrics/internal/registry"
)

const testTrackingID = "550e8400-e29b-41d4-a716-446655440000"

type fakeProjects struct {
	project *models.Project
	err     error
}

func (f *fakeProjects) LookupProject(ctx context.Context, trackingID string) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.project == nil || f.project.TrackingID != trackingID {
		return nil, registry.ErrProjectNotFound
	}
	return f.project, nil
}

type fakeLocator struct {
	loc *models.GeoLocation
}

func (f *fakeLocator) Locate(ip string, headers http.Header) *models.GeoLocation {
	return f.loc
}

type fakePipeline struct {
	events []*models.NormalizedEvent
}

func (f *fakePipeline) Enqueue(ev *models.NormalizedEvent) bool {
	f.events = append(f.events, ev)
	return true
}

func activeProject() *models.Project {
	return &models.Project{
		TrackingID: testTrackingID,
		Domain:     "example.com",
		IsActive:   true,
	}
}

func testSaltCache() *privacy.SaltCache {
	return privacy.NewSaltCache(privacy.SaltSourceFunc(func(ctx context.Context) (string, error) {
		return "f3a9c2e8d1b4a7f6c5e2d9b8a3f1c4e7", nil
	}))
}

func newTestProcessor(projects ProjectLookup, loc *models.GeoLocation) (*Processor, *fakePipeline) {
	pipe := &fakePipeline{}
	p := NewProcessor(projects, testSaltCache(), &fakeLocator{loc: loc}, pipe)
	return p, pipe
}

func beaconBody(extra string) []byte {
	body := `{
		"data_key": "` + testTrackingID + `",
		"page_host": "blog.example.com",
		"page_path": "/post",
		"created_at": "2026-08-29T12:00:00Z"` + extra + `
	}`
	return []byte(body)
}

func browserRequest(body []byte) *Request {
	return &Request{
		Body:      body,
		ClientIP:  "203.0.113.7",
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36",
		Headers:   http.Header{},
		RequestID: "req-1",
	}
}

func TestProcessPageviewEndToEnd(t *testing.T) {
	p, pipe := newTestProcessor(&fakeProjects{project: activeProject()},
		&models.GeoLocation{CountryCode: "DE"})

	out := p.Process(context.Background(), browserRequest(beaconBody("")))
	if out.Rejection != nil {
		t.Fatalf("rejection: %v", out.Rejection)
	}
	if !out.Emitted {
		t.Fatalf("event not emitted, drop reason %q", out.DropReason)
	}
	if len(pipe.events) != 1 {
		t.Fatalf("enqueued %d events", len(pipe.events))
	}

	ev := pipe.events[0]
	if ev.EventType != "pageview" {
		t.Errorf("EventType = %q", ev.EventType)
	}
	if !regexp.MustCompile(`^[0-9a-f]{64}$`).MatchString(ev.SessionHash) {
		t.Errorf("SessionHash = %q, want sha256 hex", ev.SessionHash)
	}
	if ev.GeoCountryCode != "DE" {
		t.Errorf("GeoCountryCode = %q", ev.GeoCountryCode)
	}
	if ev.IsBot {
		t.Error("browser flagged as bot")
	}
}

func TestProcessNoGeoSignalWritesSentinel(t *testing.T) {
	p, pipe := newTestProcessor(&fakeProjects{project: activeProject()}, nil)

	out := p.Process(context.Background(), browserRequest(beaconBody("")))
	if !out.Emitted {
		t.Fatalf("drop reason %q", out.DropReason)
	}
	if pipe.events[0].GeoCountryCode != models.CountryUnknown {
		t.Errorf("GeoCountryCode = %q, want %q", pipe.events[0].GeoCountryCode, models.CountryUnknown)
	}
}

func TestProcessValidationRejection(t *testing.T) {
	p, pipe := newTestProcessor(&fakeProjects{project: activeProject()}, nil)

	body := []byte(`{"data_key":"` + testTrackingID + `","page_host":"blog.example.com","page_path":"/p"}`)
	out := p.Process(context.Background(), browserRequest(body))
	if out.Rejection == nil || out.Rejection.Code != beacon.CodeMissingRequiredFields {
		t.Fatalf("rejection = %v", out.Rejection)
	}
	if len(pipe.events) != 0 {
		t.Error("rejected beacon emitted an event")
	}
}

func TestProcessSilentDrops(t *testing.T) {
	tests := []struct {
		name       string
		projects   ProjectLookup
		mutate     func(*Request)
		wantReason string
	}{
		{
			name:     "localhost page host",
			projects: &fakeProjects{project: activeProject()},
			mutate: func(r *Request) {
				r.Body = []byte(`{"data_key":"` + testTrackingID + `","page_host":"localhost:3000","page_path":"/p","created_at":"2026-08-29T12:00:00Z"}`)
			},
			wantReason: "local_traffic",
		},
		{
			name:     "file page with empty host",
			projects: &fakeProjects{project: activeProject()},
			mutate: func(r *Request) {
				r.Body = []byte(`{"data_key":"` + testTrackingID + `","page_host":"","page_path":"/p","created_at":"2026-08-29T12:00:00Z","referrer":"file:///home/dev/index.html"}`)
			},
			wantReason: "local_traffic",
		},
		{
			name:       "private client ip",
			projects:   &fakeProjects{project: activeProject()},
			mutate:     func(r *Request) { r.ClientIP = "192.168.1.50" },
			wantReason: "private_ip",
		},
		{
			name:       "unknown project",
			projects:   &fakeProjects{},
			mutate:     func(r *Request) {},
			wantReason: "unknown_project",
		},
		{
			name:       "inactive project",
			projects:   &fakeProjects{project: &models.Project{TrackingID: testTrackingID, Domain: "example.com"}},
			mutate:     func(r *Request) {},
			wantReason: "inactive_project",
		},
		{
			name:       "registry failure fails open",
			projects:   &fakeProjects{err: errors.New("connection timeout")},
			mutate:     func(r *Request) {},
			wantReason: "registry_error",
		},
		{
			name:     "domain mismatch",
			projects: &fakeProjects{project: &models.Project{TrackingID: testTrackingID, Domain: "other.org", IsActive: true}},
			mutate:   func(r *Request) {},

			wantReason: "domain_mismatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, pipe := newTestProcessor(tt.projects, nil)
			req := browserRequest(beaconBody(""))
			tt.mutate(req)

			out := p.Process(context.Background(), req)
			if out.Rejection != nil {
				t.Fatalf("rejection: %v", out.Rejection)
			}
			if out.Emitted {
				t.Fatal("event emitted for silent-drop condition")
			}
			if out.DropReason != tt.wantReason {
				t.Errorf("DropReason = %q, want %q", out.DropReason, tt.wantReason)
			}
			if len(pipe.events) != 0 {
				t.Error("dropped beacon emitted an event")
			}
		})
	}
}

func TestProcessBotFastPath(t *testing.T) {
	p, pipe := newTestProcessor(&fakeProjects{project: activeProject()},
		&models.GeoLocation{CountryCode: "DE"})

	req := browserRequest(beaconBody(`,
		"referrer": "https://www.google.com/search",
		"utm_source": "chatgpt.com"`))
	req.UserAgent = "Mozilla/5.0 AppleWebKit/537.36; compatible; GPTBot/1.0; +https://openai.com/gptbot"

	out := p.Process(context.Background(), req)
	if !out.Emitted {
		t.Fatalf("drop reason %q", out.DropReason)
	}

	ev := pipe.events[0]
	if !ev.IsBot || ev.BotParent != "OpenAI" || ev.BotCategory != "ai" {
		t.Errorf("bot identity = %+v", ev)
	}
	if ev.EventType != "bot" {
		t.Errorf("EventType = %q", ev.EventType)
	}
	// Fast path: no geo, no source/UTM attribution.
	if ev.GeoCountryCode != models.CountryUnknown {
		t.Errorf("bot event carries geo %q", ev.GeoCountryCode)
	}
	if ev.UTMSource != "" || ev.Referrer != "" {
		t.Error("bot event carries referrer/UTM fields")
	}
}

func TestProcessKnownCrawlerGetsBotSourceAttribution(t *testing.T) {
	p, pipe := newTestProcessor(&fakeProjects{project: activeProject()}, nil)

	req := browserRequest(beaconBody(""))
	req.UserAgent = "Mozilla/5.0 (compatible; OAI-SearchBot/1.0; +https://openai.com/searchbot)"

	out := p.Process(context.Background(), req)
	if !out.Emitted {
		t.Fatalf("drop reason %q", out.DropReason)
	}
	if pipe.events[0].SourceName == "" {
		t.Error("known crawler missing bot-source attribution")
	}
}

func TestProcessEngagementThreshold(t *testing.T) {
	tests := []struct {
		name     string
		extra    string
		wantEmit bool
	}{
		{"below threshold", `,"event_type":"engagement","engagement_time_ms":1500`, false},
		{"time clears threshold", `,"event_type":"engagement","engagement_time_ms":3000`, true},
		{"scroll clears threshold", `,"event_type":"engagement","engagement_time_ms":500,"scroll_depth_percent":40`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, pipe := newTestProcessor(&fakeProjects{project: activeProject()}, nil)
			out := p.Process(context.Background(), browserRequest(beaconBody(tt.extra)))

			if out.Emitted != tt.wantEmit {
				t.Fatalf("Emitted = %v (drop %q), want %v", out.Emitted, out.DropReason, tt.wantEmit)
			}
			if tt.wantEmit && pipe.events[0].EventType != "engagement" {
				t.Errorf("EventType = %q", pipe.events[0].EventType)
			}
			if tt.wantEmit && pipe.events[0].SourceName != "" {
				t.Error("engagement event carries source attribution")
			}
		})
	}
}

func TestProcessSaltFailureDropsEvent(t *testing.T) {
	pipe := &fakePipeline{}
	badSalt := privacy.NewSaltCache(privacy.SaltSourceFunc(func(ctx context.Context) (string, error) {
		return "short", nil // fails salt validation on load
	}))
	p := NewProcessor(&fakeProjects{project: activeProject()}, badSalt, &fakeLocator{}, pipe)

	out := p.Process(context.Background(), browserRequest(beaconBody("")))
	if out.Rejection != nil {
		t.Fatalf("rejection: %v", out.Rejection)
	}
	if out.Emitted || out.DropReason != "salt_unavailable" {
		t.Errorf("outcome = %+v, want salt_unavailable drop", out)
	}
}

func TestProcessNoRawIPInEvent(t *testing.T) {
	p, pipe := newTestProcessor(&fakeProjects{project: activeProject()}, nil)

	req := browserRequest(beaconBody(""))
	req.ClientIP = "203.0.113.77"
	out := p.Process(context.Background(), req)
	if !out.Emitted {
		t.Fatalf("drop reason %q", out.DropReason)
	}

	// The session hash is the only field derived from the address, and
	// the anonymized form is what feeds it.
	withAnonIP := privacy.SessionHash("f3a9c2e8d1b4a7f6c5e2d9b8a3f1c4e7",
		privacy.AnonymizeIP("203.0.113.77"), req.UserAgent, "blog.example.com")
	if pipe.events[0].SessionHash != withAnonIP {
		t.Error("session hash not derived from anonymized IP")
	}
}

func TestDomainMatches(t *testing.T) {
	tests := []struct {
		registered string
		pageHost   string
		want       bool
	}{
		{"example.com", "example.com", true},
		{"example.com", "blog.example.com", true},
		{"example.com", "badexample.com", false},
		{"example.com", "example.com.evil.net", false},
		{"", "example.com", false},
	}

	for _, tt := range tests {
		if got := domainMatches(tt.registered, tt.pageHost); got != tt.want {
			t.Errorf("domainMatches(%q, %q) = %v, want %v", tt.registered, tt.pageHost, got, tt.want)
		}
	}
}
