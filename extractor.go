package rocthinc

// RoleAttr is the attribute chat UIs place on message elements to mark the
// author role. It drives the DOM scan strategy, the wall policy's
// marker check, and the rendered fetcher's wait-for-content selector.
const RoleAttr = "data-message-author-role"

// RoleSelector is RoleAttr as a CSS attribute selector.
const RoleSelector = "[" + RoleAttr + "]"

// Extractor is one extraction strategy. Strategies share a single
// signature so they can be composed into an ordered Chain.
type Extractor interface {
	// Extract attempts to build a Conversation from the HTML.
	// Returning (nil, nil) signals a miss: the input is valid but this
	// strategy found nothing, and the next strategy should be tried.
	// A non-nil error aborts the chain.
	Extract(html, url string, platform Platform) (*Conversation, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(html, url string, platform Platform) (*Conversation, error)

// Extract calls f.
func (f ExtractorFunc) Extract(html, url string, platform Platform) (*Conversation, error) {
	return f(html, url, platform)
}
