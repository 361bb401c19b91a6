package mock

import "github.com/rocthinc/rocthinc"

var _ rocthinc.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of rocthinc.Renderer.
type Renderer struct {
	RenderFn func(conv *rocthinc.Conversation) (string, error)
	FormatFn func() rocthinc.Format
}

func (r *Renderer) Render(conv *rocthinc.Conversation) (string, error) {
	return r.RenderFn(conv)
}

func (r *Renderer) Format() rocthinc.Format {
	return r.FormatFn()
}
