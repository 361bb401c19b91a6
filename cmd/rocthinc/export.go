package main

import (
	"fmt"
	"os"

	"github.com/rocthinc/rocthinc"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	formats := rocthinc.ParseFormats(c.Formats)

	archive, err := deps.Exporter.Export(deps.Ctx, c.URL, formats)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rocthinc.ErrorMessage(err))
		return err
	}

	out := c.Out
	if out == "" {
		out = archive.Filename
	}
	if err := os.WriteFile(out, archive.Data, 0644); err != nil {
		return fmt.Errorf("writing archive to %q: %w", out, err)
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s (%d bytes, formats: %v)\n", out, len(archive.Data), formats)
	return nil
}
