package rocthinc

import "strings"

// Platform identifies the coarse URL-based category that selects both the
// fetch policy and the extractor priority list.
type Platform string

// Known chat platforms plus the generic catch-all.
const (
	PlatformChatGPT    Platform = "chatgpt"
	PlatformClaude     Platform = "claude"
	PlatformGrok       Platform = "grok"
	PlatformPerplexity Platform = "perplexity"
	PlatformGeneric    Platform = "generic"
)

// platformDomains maps URL substrings to platforms. Matching is
// case-insensitive; first match wins in this order.
var platformDomains = []struct {
	fragment string
	platform Platform
}{
	{"chatgpt.com", PlatformChatGPT},
	{"chat.openai.com", PlatformChatGPT},
	{"claude.ai", PlatformClaude},
	{"grok.x.ai", PlatformGrok},
	{"grok.com", PlatformGrok},
	{"perplexity.ai", PlatformPerplexity},
}

// Classify inspects a URL and returns the platform that decides fetch and
// extraction policy. Pure string matching; no network access.
func Classify(url string) Platform {
	lower := strings.ToLower(url)
	for _, d := range platformDomains {
		if strings.Contains(lower, d.fragment) {
			return d.platform
		}
	}
	return PlatformGeneric
}

// IsChat reports whether the platform is a known chat platform whose pages
// carry structured conversation turns.
func (p Platform) IsChat() bool {
	return p != PlatformGeneric && p != ""
}
