package rocthinc

// Chain tries extraction strategies in order and returns the first
// non-empty Conversation. The generic page-text strategy is expected to be
// last; because it always succeeds, a fully configured chain never returns
// ENOMESSAGES. Omitting the floor strategy yields the strict behavior where
// exhaustion is a user-facing error.
type Chain struct {
	strategies []Extractor
}

// NewChain creates a Chain from strategies in priority order.
func NewChain(strategies ...Extractor) *Chain {
	return &Chain{strategies: strategies}
}

// Ensure Chain composes back into an Extractor.
var _ Extractor = (*Chain)(nil)

// Extract runs the strategies in order. Misses (nil, nil) fall through to
// the next strategy; errors abort immediately. Exhaustion without a result
// returns ENOMESSAGES.
func (c *Chain) Extract(html, url string, platform Platform) (*Conversation, error) {
	for _, s := range c.strategies {
		conv, err := s.Extract(html, url, platform)
		if err != nil {
			return nil, err
		}
		if conv != nil && len(conv.Messages) > 0 {
			return conv, nil
		}
	}
	return nil, Errorf(ENOMESSAGES, "no conversation content found at %s", url)
}
