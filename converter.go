package rocthinc

// Converter transforms HTML fragments into Markdown text. The DOM scan
// strategy uses it to keep code blocks and lists readable in extracted
// message content.
type Converter interface {
	Convert(html string) (string, error)
}
