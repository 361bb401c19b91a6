package goquery

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rocthinc/rocthinc"
)

// DefaultTruncateBudget bounds the single-blob page text in characters.
// Pages regularly reach megabytes of markup; 20k characters keeps the
// export usable without producing a blob nobody opens.
const DefaultTruncateBudget = 20000

// TruncationMarker is appended when page text exceeds the budget.
const TruncationMarker = " … [truncated]"

// Ensure PageTextExtractor implements rocthinc.Extractor at compile time.
var _ rocthinc.Extractor = (*PageTextExtractor)(nil)

// PageTextExtractor is the floor of the extraction chain: it flattens any
// page to a single synthetic Page_Content message. Script and style blocks
// are dropped, all remaining markup is stripped, and whitespace runs
// collapse to single spaces. It only misses on a page with no text at all.
type PageTextExtractor struct {
	budget int
	strip  *bluemonday.Policy
}

// PageTextOption configures a PageTextExtractor.
type PageTextOption func(*PageTextExtractor)

// WithTruncateBudget overrides the character budget.
// Defaults to DefaultTruncateBudget.
func WithTruncateBudget(n int) PageTextOption {
	return func(e *PageTextExtractor) {
		e.budget = n
	}
}

// NewPageTextExtractor creates a new PageTextExtractor.
func NewPageTextExtractor(opts ...PageTextOption) *PageTextExtractor {
	e := &PageTextExtractor{
		budget: DefaultTruncateBudget,
		strip:  bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract flattens the page to text. Works for any platform.
func (e *PageTextExtractor) Extract(htmlText, url string, platform rocthinc.Platform) (*rocthinc.Conversation, error) {
	// Drop non-content blocks before stripping tags. Parse failures fall
	// through to stripping the raw markup; the strict policy drops
	// script/style content on its own.
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText)); err == nil {
		doc.Find("script, style, noscript, template").Remove()
		if cleaned, err := doc.Html(); err == nil {
			htmlText = cleaned
		}
	}

	text := e.strip.Sanitize(htmlText)
	text = html.UnescapeString(text)
	text = strings.Join(strings.Fields(text), " ")
	text = Truncate(text, e.budget)

	if text == "" {
		return nil, nil
	}
	return rocthinc.NewConversation(rocthinc.SourceWeb, url, []rocthinc.Message{
		{Speaker: rocthinc.SpeakerPageContent, Content: text},
	}), nil
}

// Truncate cuts text to at most budget characters (runes, not bytes) and
// appends TruncationMarker when anything was cut.
func Truncate(text string, budget int) string {
	if budget <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	return string(runes[:budget]) + TruncationMarker
}
