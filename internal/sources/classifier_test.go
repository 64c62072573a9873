// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package sources

import "testing"

func TestClassifyByReferrer(t *testing.T) {
	tests := []struct {
		name     string
		referrer string
		wantName string
		wantType string
	}{
		{"chatgpt", "https://chatgpt.com/", "ChatGPT", TypeAI},
		{"chatgpt legacy host", "https://chat.openai.com/c/abc", "ChatGPT", TypeAI},
		{"claude", "https://claude.ai/chat/123", "Claude", TypeAI},
		{"perplexity", "https://www.perplexity.ai/search?q=x", "Perplexity", TypeAI},
		{"google search", "https://www.google.com/", "Google", TypeSearch},
		{"google country tld", "https://www.google.de/search", "Google", TypeSearch},
		{"bing", "https://www.bing.com/search?q=x", "Bing", TypeSearch},
		{"duckduckgo", "https://duckduckgo.com/", "DuckDuckGo", TypeSearch},
		{"twitter short link", "https://t.co/Ab12Cd", "X", TypeSocial},
		{"hacker news", "https://news.ycombinator.com/item?id=1", "Hacker News", TypeSocial},
		{"bluesky", "https://bsky.app/profile/x", "Bluesky", TypeSocial},
		{"youtube", "https://www.youtube.com/watch?v=x", "YouTube", TypeVideo},
		{"bare host without scheme", "duckduckgo.com/", "DuckDuckGo", TypeSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(Signals{Referrer: tt.referrer})
			if got.SourceName != tt.wantName {
				t.Errorf("SourceName = %q, want %q", got.SourceName, tt.wantName)
			}
			if got.SourceType != tt.wantType {
				t.Errorf("SourceType = %q, want %q", got.SourceType, tt.wantType)
			}
		})
	}
}

func TestClassifyUTMOverridesReferrer(t *testing.T) {
	got := Classify(Signals{
		Referrer:  "https://www.google.com/",
		UTMSource: "chatgpt.com",
	})

	if got.SourceName != "ChatGPT" {
		t.Errorf("SourceName = %q, want ChatGPT (UTM override)", got.SourceName)
	}
	if got.SourceType != TypeAI {
		t.Errorf("SourceType = %q, want %q", got.SourceType, TypeAI)
	}
}

func TestClassifyUTMUnknownFallsBackToReferrer(t *testing.T) {
	got := Classify(Signals{
		Referrer:  "https://www.bing.com/",
		UTMSource: "spring-newsletter",
	})

	if got.SourceName != "Bing" {
		t.Errorf("SourceName = %q, want Bing", got.SourceName)
	}
}

func TestClassifyAIOverviewNeedsTextFragment(t *testing.T) {
	// Bare google.com referrer is search traffic.
	plain := Classify(Signals{Referrer: "https://www.google.com/"})
	if plain.SourceName != "Google" || plain.SourceType != TypeSearch {
		t.Errorf("without fragment: got %q/%q, want Google/search", plain.SourceName, plain.SourceType)
	}

	// The same referrer with a text-fragment marker is AI-overview traffic.
	overview := Classify(Signals{Referrer: "https://www.google.com/", HasTextFragment: true})
	if overview.SourceName != "Google AI Overview" || overview.SourceType != TypeAI {
		t.Errorf("with fragment: got %q/%q, want Google AI Overview/ai", overview.SourceName, overview.SourceType)
	}
}

func TestClassifyDirectTraffic(t *testing.T) {
	got := Classify(Signals{})
	if got.SourceName != "" || got.SourceType != "" {
		t.Errorf("empty signals should yield no source, got %+v", got)
	}
}

func TestClassifyUnknownReferrer(t *testing.T) {
	got := Classify(Signals{Referrer: "https://some-random-blog.example/post"})
	if got.SourceName != "" {
		t.Errorf("unknown referrer attributed to %q", got.SourceName)
	}
}

func TestClassifyBotSourceIndependent(t *testing.T) {
	got := Classify(Signals{
		UserAgent: "Mozilla/5.0; compatible; OAI-SearchBot/1.0; +https://openai.com/searchbot",
	})
	if got.BotSource != "OpenAI SearchBot" {
		t.Errorf("BotSource = %q, want OpenAI SearchBot", got.BotSource)
	}
	if got.SourceName != "" {
		t.Errorf("bot source must not set the named source, got %q", got.SourceName)
	}

	// Bot source and referrer source can both be present.
	both := Classify(Signals{
		Referrer:  "https://chatgpt.com/",
		UserAgent: "ChatGPT-User/1.0",
	})
	if both.SourceName != "ChatGPT" || both.BotSource != "ChatGPT User" {
		t.Errorf("got %+v, want ChatGPT + ChatGPT User", both)
	}
}

func TestReferrerHost(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://Example.COM/path", "example.com"},
		{"http://example.com:8080/x", "example.com"},
		{"example.com/path", "example.com"},
		{"example.com:443", "example.com"},
		{"", ""},
		{"   ", ""},
		{"://bad", ""},
	}

	for _, tt := range tests {
		if got := referrerHost(tt.input); got != tt.want {
			t.Errorf("referrerHost(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
