package mock

import (
	"context"

	"github.com/rocthinc/rocthinc"
)

var _ rocthinc.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of rocthinc.Exporter.
type Exporter struct {
	ExportFn func(ctx context.Context, url string, formats []rocthinc.Format) (*rocthinc.Archive, error)
}

func (e *Exporter) Export(ctx context.Context, url string, formats []rocthinc.Format) (*rocthinc.Archive, error) {
	return e.ExportFn(ctx, url, formats)
}
