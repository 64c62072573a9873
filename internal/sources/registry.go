// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package sources

// Source types in the traffic taxonomy.
const (
	TypeAI     = "ai"
	TypeSearch = "search"
	TypeSocial = "social"
	TypeVideo  = "video"
)

// Source is one entry in the fixed traffic-source taxonomy.
type Source struct {
	// Name is the display name attributed to matching traffic.
	Name string

	// Type is one of the Type* constants.
	Type string

	// ReferrerHosts are hostname substrings matched against the
	// referrer's host.
	ReferrerHosts []string

	// UTMSources lists utm_source values that attribute to this source.
	UTMSources []string

	// TrustUTM lets a matching utm_source override referrer matching.
	TrustUTM bool

	// RequireTextFragment demands a corroborating text-fragment marker
	// before the source is attributed. Used for AI-overview traffic
	// whose referrer domain alone would be ambiguous.
	RequireTextFragment bool
}

// taxonomy is ordered: entries requiring corroboration precede the plain
// entry for the same domain (Google AI Overview before Google search).
var taxonomy = []Source{
	// AI assistants
	{Name: "ChatGPT", Type: TypeAI, ReferrerHosts: []string{"chatgpt.com", "chat.openai.com"}, UTMSources: []string{"chatgpt.com", "chatgpt", "openai"}, TrustUTM: true},
	{Name: "Claude", Type: TypeAI, ReferrerHosts: []string{"claude.ai"}, UTMSources: []string{"claude.ai", "claude"}, TrustUTM: true},
	{Name: "Perplexity", Type: TypeAI, ReferrerHosts: []string{"perplexity.ai"}, UTMSources: []string{"perplexity", "pplx.ai"}, TrustUTM: true},
	{Name: "Gemini", Type: TypeAI, ReferrerHosts: []string{"gemini.google.com"}, UTMSources: []string{"gemini"}, TrustUTM: true},
	{Name: "Copilot", Type: TypeAI, ReferrerHosts: []string{"copilot.microsoft.com"}, UTMSources: []string{"copilot"}, TrustUTM: true},
	{Name: "DeepSeek", Type: TypeAI, ReferrerHosts: []string{"chat.deepseek.com"}, UTMSources: []string{"deepseek"}, TrustUTM: true},
	{Name: "Grok", Type: TypeAI, ReferrerHosts: []string{"grok.com"}, UTMSources: []string{"grok"}, TrustUTM: true},
	{Name: "Mistral", Type: TypeAI, ReferrerHosts: []string{"chat.mistral.ai"}, UTMSources: []string{"mistral"}, TrustUTM: true},
	{Name: "Google AI Overview", Type: TypeAI, ReferrerHosts: []string{"google."}, RequireTextFragment: true},

	// Search engines
	{Name: "Google", Type: TypeSearch, ReferrerHosts: []string{"google."}},
	{Name: "Bing", Type: TypeSearch, ReferrerHosts: []string{"bing.com"}},
	{Name: "DuckDuckGo", Type: TypeSearch, ReferrerHosts: []string{"duckduckgo.com"}},
	{Name: "Brave Search", Type: TypeSearch, ReferrerHosts: []string{"search.brave.com"}},
	{Name: "Ecosia", Type: TypeSearch, ReferrerHosts: []string{"ecosia.org"}},
	{Name: "Yandex", Type: TypeSearch, ReferrerHosts: []string{"yandex."}},
	{Name: "Baidu", Type: TypeSearch, ReferrerHosts: []string{"baidu.com"}},
	{Name: "Startpage", Type: TypeSearch, ReferrerHosts: []string{"startpage.com"}},
	{Name: "Qwant", Type: TypeSearch, ReferrerHosts: []string{"qwant.com"}},

	// Social networks
	{Name: "Facebook", Type: TypeSocial, ReferrerHosts: []string{"facebook.com", "fb.com", "m.facebook.com"}, UTMSources: []string{"facebook"}, TrustUTM: true},
	{Name: "X", Type: TypeSocial, ReferrerHosts: []string{"twitter.com", "t.co", "x.com"}, UTMSources: []string{"twitter", "x"}, TrustUTM: true},
	{Name: "LinkedIn", Type: TypeSocial, ReferrerHosts: []string{"linkedin.com", "lnkd.in"}, UTMSources: []string{"linkedin"}, TrustUTM: true},
	{Name: "Reddit", Type: TypeSocial, ReferrerHosts: []string{"reddit.com", "redd.it"}, UTMSources: []string{"reddit"}, TrustUTM: true},
	{Name: "Instagram", Type: TypeSocial, ReferrerHosts: []string{"instagram.com"}, UTMSources: []string{"instagram", "ig"}, TrustUTM: true},
	{Name: "Threads", Type: TypeSocial, ReferrerHosts: []string{"threads.net", "threads.com"}, UTMSources: []string{"threads"}, TrustUTM: true},
	{Name: "Bluesky", Type: TypeSocial, ReferrerHosts: []string{"bsky.app"}, UTMSources: []string{"bluesky"}, TrustUTM: true},
	{Name: "Mastodon", Type: TypeSocial, ReferrerHosts: []string{"mastodon."}},
	{Name: "Hacker News", Type: TypeSocial, ReferrerHosts: []string{"news.ycombinator.com"}, UTMSources: []string{"hackernews"}, TrustUTM: true},
	{Name: "Pinterest", Type: TypeSocial, ReferrerHosts: []string{"pinterest."}, UTMSources: []string{"pinterest"}, TrustUTM: true},
	{Name: "Telegram", Type: TypeSocial, ReferrerHosts: []string{"t.me", "telegram.org"}, UTMSources: []string{"telegram"}, TrustUTM: true},
	{Name: "WhatsApp", Type: TypeSocial, ReferrerHosts: []string{"whatsapp.com"}, UTMSources: []string{"whatsapp"}, TrustUTM: true},

	// Video platforms
	{Name: "YouTube", Type: TypeVideo, ReferrerHosts: []string{"youtube.com", "youtu.be"}, UTMSources: []string{"youtube"}, TrustUTM: true},
	{Name: "TikTok", Type: TypeVideo, ReferrerHosts: []string{"tiktok.com"}, UTMSources: []string{"tiktok"}, TrustUTM: true},
	{Name: "Vimeo", Type: TypeVideo, ReferrerHosts: []string{"vimeo.com"}},
	{Name: "Twitch", Type: TypeVideo, ReferrerHosts: []string{"twitch.tv"}},
}

// BotSource attributes traffic to a specific named crawler by exact
// user-agent substring. This overlaps the bot classifier deliberately:
// the bot classifier decides bot-vs-human, while these entries give the
// dashboard named attribution such as "OpenAI SearchBot" rather than a
// generic unknown bot.
type BotSource struct {
	Name       string
	UAPatterns []string
}

var botSources = []BotSource{
	{Name: "OpenAI SearchBot", UAPatterns: []string{"OAI-SearchBot"}},
	{Name: "ChatGPT User", UAPatterns: []string{"ChatGPT-User"}},
	{Name: "OpenAI GPTBot", UAPatterns: []string{"GPTBot"}},
	{Name: "Claude User", UAPatterns: []string{"Claude-User"}},
	{Name: "Claude SearchBot", UAPatterns: []string{"Claude-SearchBot"}},
	{Name: "Anthropic ClaudeBot", UAPatterns: []string{"ClaudeBot"}},
	{Name: "Perplexity User", UAPatterns: []string{"Perplexity-User"}},
	{Name: "PerplexityBot", UAPatterns: []string{"PerplexityBot"}},
	{Name: "Google Extended", UAPatterns: []string{"Google-Extended"}},
	{Name: "Mistral User", UAPatterns: []string{"MistralAI-User"}},
	{Name: "DuckAssist", UAPatterns: []string{"DuckAssistBot"}},
}

// Taxonomy returns the ordered source taxonomy. The slice is shared;
// callers must not mutate it.
func Taxonomy() []Source {
	return taxonomy
}
