package mock

import "github.com/rocthinc/rocthinc"

var _ rocthinc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of rocthinc.Extractor.
type Extractor struct {
	ExtractFn func(html, url string, platform rocthinc.Platform) (*rocthinc.Conversation, error)
}

func (e *Extractor) Extract(html, url string, platform rocthinc.Platform) (*rocthinc.Conversation, error) {
	return e.ExtractFn(html, url, platform)
}
