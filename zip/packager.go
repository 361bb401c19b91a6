// Package zip assembles export archives.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/rocthinc/rocthinc"
)

// Ensure Packager implements rocthinc.Packager.
var _ rocthinc.Packager = (*Packager)(nil)

// Packager builds deflate-compressed zip archives in memory.
type Packager struct{}

// NewPackager creates a new Packager.
func NewPackager() *Packager {
	return &Packager{}
}

// Pack writes the entries into a zip archive, preserving their order.
func (p *Packager) Pack(entries []rocthinc.Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, rocthinc.Errorf(rocthinc.EINVALID, "archive requires at least one entry")
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, entry := range entries {
		f, err := w.Create(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("creating archive entry %q: %w", entry.Name, err)
		}
		if _, err := f.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("writing archive entry %q: %w", entry.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}
