// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package botdetect

// Bot categories. The taxonomy is stable; dashboard aggregations group
// on these values.
const (
	CategoryAI          = "ai"
	CategorySearch      = "search"
	CategorySocial      = "social"
	CategorySEO         = "seo"
	CategoryDataset     = "dataset"
	CategoryMonitoring  = "monitoring"
	CategoryAdvertising = "advertising"
	CategoryOther       = "other"
)

// Signature is one curated bot registry entry. Pattern is matched as a
// case-insensitive substring of the user agent.
type Signature struct {
	// Pattern is the identifying user-agent substring.
	Pattern string
	// Parent is the operating organization.
	Parent string
	// Category buckets the bot for aggregation.
	Category string
}

// registry is the curated list of known bot signatures. Ordering matters
// only between overlapping patterns: more specific entries come first so
// e.g. "OAI-SearchBot" wins over plain "GPTBot" never matching it.
var registry = []Signature{
	// AI assistants and their crawlers
	{Pattern: "OAI-SearchBot", Parent: "OpenAI", Category: CategoryAI},
	{Pattern: "ChatGPT-User", Parent: "OpenAI", Category: CategoryAI},
	{Pattern: "GPTBot", Parent: "OpenAI", Category: CategoryAI},
	{Pattern: "Claude-User", Parent: "Anthropic", Category: CategoryAI},
	{Pattern: "Claude-SearchBot", Parent: "Anthropic", Category: CategoryAI},
	{Pattern: "ClaudeBot", Parent: "Anthropic", Category: CategoryAI},
	{Pattern: "anthropic-ai", Parent: "Anthropic", Category: CategoryAI},
	{Pattern: "Perplexity-User", Parent: "Perplexity", Category: CategoryAI},
	{Pattern: "PerplexityBot", Parent: "Perplexity", Category: CategoryAI},
	{Pattern: "Google-Extended", Parent: "Google", Category: CategoryAI},
	{Pattern: "Google-CloudVertexBot", Parent: "Google", Category: CategoryAI},
	{Pattern: "Applebot-Extended", Parent: "Apple", Category: CategoryAI},
	{Pattern: "meta-externalagent", Parent: "Meta", Category: CategoryAI},
	{Pattern: "FacebookBot", Parent: "Meta", Category: CategoryAI},
	{Pattern: "Amazonbot", Parent: "Amazon", Category: CategoryAI},
	{Pattern: "Bytespider", Parent: "ByteDance", Category: CategoryAI},
	{Pattern: "cohere-ai", Parent: "Cohere", Category: CategoryAI},
	{Pattern: "MistralAI-User", Parent: "Mistral", Category: CategoryAI},
	{Pattern: "DuckAssistBot", Parent: "DuckDuckGo", Category: CategoryAI},
	{Pattern: "YouBot", Parent: "You.com", Category: CategoryAI},
	{Pattern: "AI2Bot", Parent: "Allen Institute", Category: CategoryAI},

	// Search engines
	{Pattern: "Googlebot", Parent: "Google", Category: CategorySearch},
	{Pattern: "Storebot-Google", Parent: "Google", Category: CategorySearch},
	{Pattern: "Google-InspectionTool", Parent: "Google", Category: CategorySearch},
	{Pattern: "bingbot", Parent: "Microsoft", Category: CategorySearch},
	{Pattern: "BingPreview", Parent: "Microsoft", Category: CategorySearch},
	{Pattern: "DuckDuckBot", Parent: "DuckDuckGo", Category: CategorySearch},
	{Pattern: "Applebot", Parent: "Apple", Category: CategorySearch},
	{Pattern: "YandexBot", Parent: "Yandex", Category: CategorySearch},
	{Pattern: "Baiduspider", Parent: "Baidu", Category: CategorySearch},
	{Pattern: "SeznamBot", Parent: "Seznam", Category: CategorySearch},
	{Pattern: "Qwantbot", Parent: "Qwant", Category: CategorySearch},

	// Social preview fetchers
	{Pattern: "facebookexternalhit", Parent: "Meta", Category: CategorySocial},
	{Pattern: "Twitterbot", Parent: "X", Category: CategorySocial},
	{Pattern: "LinkedInBot", Parent: "LinkedIn", Category: CategorySocial},
	{Pattern: "Slackbot", Parent: "Slack", Category: CategorySocial},
	{Pattern: "Discordbot", Parent: "Discord", Category: CategorySocial},
	{Pattern: "TelegramBot", Parent: "Telegram", Category: CategorySocial},
	{Pattern: "WhatsApp", Parent: "Meta", Category: CategorySocial},
	{Pattern: "Pinterestbot", Parent: "Pinterest", Category: CategorySocial},
	{Pattern: "redditbot", Parent: "Reddit", Category: CategorySocial},
	{Pattern: "Mastodon", Parent: "Mastodon", Category: CategorySocial},
	{Pattern: "Bluesky Cardyb", Parent: "Bluesky", Category: CategorySocial},

	// SEO and marketing crawlers
	{Pattern: "AhrefsBot", Parent: "Ahrefs", Category: CategorySEO},
	{Pattern: "SemrushBot", Parent: "Semrush", Category: CategorySEO},
	{Pattern: "MJ12bot", Parent: "Majestic", Category: CategorySEO},
	{Pattern: "DotBot", Parent: "Moz", Category: CategorySEO},
	{Pattern: "DataForSeoBot", Parent: "DataForSEO", Category: CategorySEO},
	{Pattern: "SiteAuditBot", Parent: "Semrush", Category: CategorySEO},
	{Pattern: "Screaming Frog", Parent: "Screaming Frog", Category: CategorySEO},

	// Dataset and archive crawlers
	{Pattern: "CCBot", Parent: "Common Crawl", Category: CategoryDataset},
	{Pattern: "ia_archiver", Parent: "Internet Archive", Category: CategoryDataset},
	{Pattern: "archive.org_bot", Parent: "Internet Archive", Category: CategoryDataset},
	{Pattern: "Diffbot", Parent: "Diffbot", Category: CategoryDataset},
	{Pattern: "omgili", Parent: "Webz.io", Category: CategoryDataset},
	{Pattern: "Timpibot", Parent: "Timpi", Category: CategoryDataset},

	// Uptime and monitoring agents
	{Pattern: "UptimeRobot", Parent: "UptimeRobot", Category: CategoryMonitoring},
	{Pattern: "Pingdom", Parent: "Pingdom", Category: CategoryMonitoring},
	{Pattern: "StatusCake", Parent: "StatusCake", Category: CategoryMonitoring},
	{Pattern: "Site24x7", Parent: "Site24x7", Category: CategoryMonitoring},
	{Pattern: "Better Uptime", Parent: "Better Stack", Category: CategoryMonitoring},
	{Pattern: "HeadlessChrome", Parent: "", Category: CategoryMonitoring},

	// Advertising verification
	{Pattern: "AdsBot-Google", Parent: "Google", Category: CategoryAdvertising},
	{Pattern: "Mediapartners-Google", Parent: "Google", Category: CategoryAdvertising},
	{Pattern: "adbeat_bot", Parent: "Adbeat", Category: CategoryAdvertising},

	// Generic tooling that identifies itself honestly
	{Pattern: "curl/", Parent: "", Category: CategoryOther},
	{Pattern: "wget/", Parent: "", Category: CategoryOther},
	{Pattern: "python-requests", Parent: "", Category: CategoryOther},
	{Pattern: "python-httpx", Parent: "", Category: CategoryOther},
	{Pattern: "Go-http-client", Parent: "", Category: CategoryOther},
	{Pattern: "okhttp", Parent: "", Category: CategoryOther},
	{Pattern: "Java/", Parent: "", Category: CategoryOther},
	{Pattern: "libwww-perl", Parent: "", Category: CategoryOther},
	{Pattern: "node-fetch", Parent: "", Category: CategoryOther},
	{Pattern: "axios/", Parent: "", Category: CategoryOther},
}

// Registry returns the curated signature list. The slice is shared;
// callers must not mutate it.
func Registry() []Signature {
	return registry
}
