package goquery

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rocthinc/rocthinc"
)

// nextDataID is the well-known id of the script element Next.js uses to
// inline its serialized page state.
const nextDataID = "__NEXT_DATA__"

// Ensure NextDataExtractor implements rocthinc.Extractor at compile time.
var _ rocthinc.Extractor = (*NextDataExtractor)(nil)

// NextDataExtractor recovers conversation turns from the JSON state blob
// chat platforms inline into the page, used when the visible DOM carries no
// role markers. Two nesting shapes are probed because the hosting site has
// switched page frameworks between releases; any shape that fails to yield
// a message mapping is a miss, never an error.
type NextDataExtractor struct{}

// NewNextDataExtractor creates a new NextDataExtractor.
func NewNextDataExtractor() *NextDataExtractor {
	return &NextDataExtractor{}
}

// Extract parses the inlined state blob. Message order is restored by
// sorting on the creation-time field ascending, with the mapping's
// traversal order as a stable tie-break, so the output is independent of
// JSON key ordering and deterministic across runs.
func (e *NextDataExtractor) Extract(htmlText, url string, platform rocthinc.Platform) (*rocthinc.Conversation, error) {
	if !platform.IsChat() {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, rocthinc.Errorf(rocthinc.EINVALID, "failed to parse HTML: %v", err)
	}

	raw := doc.Find("script#" + nextDataID).First().Text()
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	mapping := findMapping(json.RawMessage(raw))
	if mapping == nil {
		return nil, nil
	}

	items := flattenMapping(mapping)
	if len(items) == 0 {
		return nil, nil
	}

	// Stable sort: equal or missing creation times keep encounter order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].createTime < items[j].createTime
	})

	messages := make([]rocthinc.Message, 0, len(items))
	for _, it := range items {
		speaker := rocthinc.SpeakerAssistant
		if it.role == "user" {
			speaker = rocthinc.SpeakerUser
		}
		messages = append(messages, rocthinc.Message{Speaker: speaker, Content: it.text})
	}
	return rocthinc.NewConversation(string(platform), url, messages), nil
}

// findMapping probes the known nesting shapes for the message mapping
// container:
//
//	props.pageProps.serverResponse.data.mapping        (Next.js pages router)
//	state.loaderData.<route>.serverResponse.data.mapping (remix-style router)
//
// Returns nil if neither shape matches.
func findMapping(root json.RawMessage) json.RawMessage {
	if m := dig(root, "props", "pageProps", "serverResponse", "data", "mapping"); m != nil {
		return m
	}
	loader := dig(root, "state", "loaderData")
	if loader == nil {
		return nil
	}
	var routes map[string]json.RawMessage
	if err := json.Unmarshal(loader, &routes); err != nil {
		return nil
	}
	for _, v := range routes {
		if m := dig(v, "serverResponse", "data", "mapping"); m != nil {
			return m
		}
	}
	return nil
}

// dig walks nested JSON objects by key, returning nil when any level is
// missing or not an object.
func dig(raw json.RawMessage, keys ...string) json.RawMessage {
	cur := raw
	for _, k := range keys {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(cur, &obj); err != nil {
			return nil
		}
		next, ok := obj[k]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// mappingItem is one flattened conversation turn candidate.
type mappingItem struct {
	role       string
	text       string
	createTime float64
}

// nodeRecord mirrors the relevant slice of one mapping node. Most nodes
// wrap a message; root and system-noise nodes do not.
type nodeRecord struct {
	Message *struct {
		Author struct {
			Role string `json:"role"`
		} `json:"author"`
		Content    json.RawMessage `json:"content"`
		CreateTime float64         `json:"create_time"`
	} `json:"message"`
}

// recognizedRoles are the conversational roles kept by the structured
// parse; anything else (tool calls, metadata nodes) is dropped.
var recognizedRoles = map[string]bool{
	"user":      true,
	"assistant": true,
	"system":    true,
}

// flattenMapping walks the mapping object in document order, which gives a
// deterministic encounter index even though the container is keyed by
// arbitrary node ids. Decoding via json.Decoder tokens preserves that
// order; unmarshaling into a Go map would not.
func flattenMapping(mapping json.RawMessage) []mappingItem {
	dec := json.NewDecoder(bytes.NewReader(mapping))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}

	var items []mappingItem
	for dec.More() {
		if _, err := dec.Token(); err != nil { // node id key
			return nil
		}
		var node nodeRecord
		if err := dec.Decode(&node); err != nil {
			return nil
		}
		if node.Message == nil || !recognizedRoles[node.Message.Author.Role] {
			continue
		}
		text := strings.TrimSpace(contentText(node.Message.Content))
		if text == "" {
			continue
		}
		items = append(items, mappingItem{
			role:       node.Message.Author.Role,
			text:       text,
			createTime: node.Message.CreateTime,
		})
	}
	return items
}

// contentText extracts the message text from a content payload: a list of
// parts joined with a blank line, a direct text field, or, for an
// unrecognized shape, its JSON-serialized form.
func contentText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var direct string
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct
	}
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		return string(raw)
	}

	if rawParts, ok := generic["parts"]; ok {
		var partList []json.RawMessage
		if err := json.Unmarshal(rawParts, &partList); err != nil {
			return string(raw)
		}
		parts := make([]string, 0, len(partList))
		for _, p := range partList {
			var s string
			if err := json.Unmarshal(p, &s); err == nil {
				if strings.TrimSpace(s) != "" {
					parts = append(parts, s)
				}
				continue
			}
			parts = append(parts, string(p))
		}
		return strings.Join(parts, "\n\n")
	}

	if rawText, ok := generic["text"]; ok {
		var s string
		if err := json.Unmarshal(rawText, &s); err == nil {
			return s
		}
	}

	if len(generic) == 0 {
		return ""
	}
	return string(raw)
}
