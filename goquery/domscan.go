// Package goquery implements the conversation extraction strategies over
// parsed HTML documents: the DOM role-attribute scan, the embedded
// structured-data parse, and the generic page-text fallback.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rocthinc/rocthinc"
	"golang.org/x/net/html"
)

// Ensure DOMScanner implements rocthinc.Extractor at compile time.
var _ rocthinc.Extractor = (*DOMScanner)(nil)

// DOMScanner extracts conversation turns from rendered chat pages by
// scanning for elements carrying the message author-role attribute.
// Document order becomes message order.
type DOMScanner struct {
	converter rocthinc.Converter
}

// DOMScannerOption configures a DOMScanner.
type DOMScannerOption func(*DOMScanner)

// WithConverter sets a Converter used to turn message markup into Markdown
// text, keeping code blocks and lists readable. Without one, message text
// is flattened with block-level line breaks preserved.
func WithConverter(c rocthinc.Converter) DOMScannerOption {
	return func(s *DOMScanner) {
		s.converter = c
	}
}

// NewDOMScanner creates a new DOMScanner.
func NewDOMScanner(opts ...DOMScannerOption) *DOMScanner {
	s := &DOMScanner{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract scans for role-marked elements. Returns a miss when the platform
// is not a chat platform or no marked elements exist; an empty scan is a
// chain-miss, never an empty Conversation.
func (s *DOMScanner) Extract(htmlText, url string, platform rocthinc.Platform) (*rocthinc.Conversation, error) {
	if !platform.IsChat() {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, rocthinc.Errorf(rocthinc.EINVALID, "failed to parse HTML: %v", err)
	}

	var messages []rocthinc.Message
	doc.Find(rocthinc.RoleSelector).Each(func(_ int, sel *goquery.Selection) {
		role, _ := sel.Attr(rocthinc.RoleAttr)
		speaker := rocthinc.SpeakerAssistant
		if role == "user" {
			speaker = rocthinc.SpeakerUser
		}
		content := s.messageText(sel)
		if content == "" {
			return
		}
		messages = append(messages, rocthinc.Message{Speaker: speaker, Content: content})
	})

	if len(messages) == 0 {
		return nil, nil
	}
	return rocthinc.NewConversation(string(platform), url, messages), nil
}

// messageText extracts the textual content of one message element,
// preferring Markdown conversion when a converter is configured.
func (s *DOMScanner) messageText(sel *goquery.Selection) string {
	if s.converter != nil {
		if inner, err := sel.Html(); err == nil {
			if md, err := s.converter.Convert(inner); err == nil {
				if md = strings.TrimSpace(md); md != "" {
					return md
				}
			}
		}
	}
	return BlockText(sel)
}

// blockTags are element names that introduce a line break around their
// content when flattening to text.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"div": true, "dd": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"tr": true, "ul": true,
}

// BlockText flattens a selection to plain text, preserving line breaks at
// block-level element boundaries and <br> tags. Inline whitespace runs are
// collapsed; blank-line runs are collapsed to a single blank line.
func BlockText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		writeNodeText(node, &b)
	}
	return normalizeBlocks(b.String())
}

func writeNodeText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteString("\n")
			return
		}
		block := blockTags[n.Data]
		if block {
			b.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNodeText(c, b)
		}
		if block {
			b.WriteString("\n")
		}
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNodeText(c, b)
		}
	}
}

// normalizeBlocks trims every line, collapses inline whitespace runs, and
// squeezes runs of blank lines down to one.
func normalizeBlocks(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	blank := true // swallow leading blanks
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	// drop a trailing blank left by the loop
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
