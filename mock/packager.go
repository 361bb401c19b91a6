package mock

import "github.com/rocthinc/rocthinc"

var _ rocthinc.Packager = (*Packager)(nil)

// Packager is a mock implementation of rocthinc.Packager.
type Packager struct {
	PackFn func(entries []rocthinc.Entry) ([]byte, error)
}

func (p *Packager) Pack(entries []rocthinc.Entry) ([]byte, error) {
	return p.PackFn(entries)
}
