package mock

import "github.com/rocthinc/rocthinc"

var _ rocthinc.Converter = (*Converter)(nil)

// Converter is a mock implementation of rocthinc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
