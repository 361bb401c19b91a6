package rocthinc

import "strings"

// DefaultWallPhrases are text fragments associated with login walls,
// app-install interstitials, and marketing landing pages. Matching is
// case-insensitive. Tune the list, not the detection logic.
var DefaultWallPhrases = []string{
	"sign in to continue",
	"log in to continue",
	"sign up to continue",
	"create an account",
	"open in the app",
	"download the app",
	"continue with google",
	"enable javascript and cookies to continue",
}

// WallPolicy decides whether fetched HTML is an interstitial wall rather
// than genuine content. The phrase table is data: callers may supply their
// own to tune detection without touching extraction logic.
type WallPolicy struct {
	Phrases []string
}

// NewWallPolicy returns a WallPolicy using DefaultWallPhrases.
func NewWallPolicy() *WallPolicy {
	return &WallPolicy{Phrases: DefaultWallPhrases}
}

// Detect reports whether the HTML looks like a wall. For chat platforms a
// page without any role-marker element is also treated as a wall, since a
// real transcript always carries them once rendered.
func (p *WallPolicy) Detect(html string, platform Platform) bool {
	lower := strings.ToLower(html)
	for _, phrase := range p.Phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	if platform.IsChat() && !strings.Contains(lower, RoleAttr) {
		return true
	}
	return false
}
