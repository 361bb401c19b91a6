package rocthinc

import "strings"

// Format is an output document format requested by the caller.
type Format string

// Supported export formats. FormatPDF produces a placeholder entry only;
// actual PDF generation is out of scope.
const (
	FormatMarkdown Format = "md"
	FormatLaTeX    Format = "tex"
	FormatPDF      Format = "pdf"
)

// DefaultFormats is the format set used when the caller requests none.
var DefaultFormats = []Format{FormatMarkdown, FormatLaTeX}

// ParseFormats normalizes a list of requested format names. Unrecognized
// names are silently dropped, duplicates collapse to the first occurrence,
// and an empty result falls back to DefaultFormats.
func ParseFormats(names []string) []Format {
	var formats []Format
	seen := make(map[Format]bool)
	for _, name := range names {
		f := Format(strings.ToLower(strings.TrimSpace(name)))
		switch f {
		case FormatMarkdown, FormatLaTeX, FormatPDF:
			if !seen[f] {
				seen[f] = true
				formats = append(formats, f)
			}
		}
	}
	if len(formats) == 0 {
		return append([]Format(nil), DefaultFormats...)
	}
	return formats
}

// Renderer serializes a Conversation into one document format. Renderers
// are pure: they must not reorder or alter message content beyond
// format-specific escaping.
type Renderer interface {
	// Render produces the document text for the conversation.
	Render(conv *Conversation) (string, error)

	// Format returns the format this renderer produces.
	Format() Format
}
