package rocthinc

import "strings"

// timestampLayout is the export timestamp format used in rendered documents.
const timestampLayout = "2006-01-02T15:04:05Z"

// Ensure MarkdownRenderer implements Renderer at compile time.
var _ Renderer = (*MarkdownRenderer)(nil)

// MarkdownRenderer serializes a Conversation as a Markdown document: a
// header with source metadata followed by one bold speaker-labeled block
// per message, in turn order.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a new MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Format returns FormatMarkdown.
func (r *MarkdownRenderer) Format() Format {
	return FormatMarkdown
}

// Render produces the Markdown document for the conversation.
func (r *MarkdownRenderer) Render(conv *Conversation) (string, error) {
	if err := conv.Validate(); err != nil {
		return "", err
	}

	lines := []string{
		"# Conversation Export",
		"",
		"**Source:** " + conv.Source,
		"**URL:** " + conv.URL,
		"**Exported at:** " + conv.CreatedAt.UTC().Format(timestampLayout),
		"",
	}
	for _, m := range conv.Messages {
		lines = append(lines, "**"+m.Speaker+":**", m.Content, "")
	}
	return strings.Join(lines, "\n"), nil
}
