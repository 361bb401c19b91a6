package rocthinc

import "time"

// Speaker labels used by the extraction strategies. The generic-page path
// is not limited to these; any non-empty label is valid.
const (
	// SpeakerUser labels turns authored by the person who started the chat.
	SpeakerUser = "You"

	// SpeakerAssistant labels turns authored by the AI side of the chat.
	SpeakerAssistant = "Assistant"

	// SpeakerPageContent labels the single synthetic turn produced when a
	// page has no recognizable conversation structure.
	SpeakerPageContent = "Page_Content"
)

// SourceWeb tags conversations produced by the generic page-text fallback.
// Chat extractions are tagged with the platform name instead.
const SourceWeb = "web"

// Message is one conversational turn: a speaker label and its trimmed text.
type Message struct {
	Speaker string `json:"speaker"`
	Content string `json:"content"`
}

// Conversation is the normalized extraction result consumed by renderers.
// It is constructed once per export and never mutated afterwards; message
// order is the conversational turn order and must be preserved through
// every downstream transform.
type Conversation struct {
	// Source identifies which extraction family produced the result:
	// a platform name ("chatgpt", "claude", ...) or SourceWeb.
	Source string `json:"source"`

	// URL is the original input URL, echoed verbatim into documents.
	URL string `json:"url"`

	// CreatedAt is the extraction timestamp, fixed at construction.
	CreatedAt time.Time `json:"createdAt"`

	// Messages holds the ordered conversational turns.
	Messages []Message `json:"messages"`
}

// NewConversation constructs a Conversation stamped with the current UTC time.
func NewConversation(source, url string, messages []Message) *Conversation {
	return &Conversation{
		Source:    source,
		URL:       url,
		CreatedAt: time.Now().UTC(),
		Messages:  messages,
	}
}

// Validate returns an error if the conversation contains invalid fields.
func (c *Conversation) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "conversation URL required")
	}
	if c.Source == "" {
		return Errorf(EINVALID, "conversation source required")
	}
	if len(c.Messages) == 0 {
		return Errorf(EINVALID, "conversation requires at least one message")
	}
	for i, m := range c.Messages {
		if m.Speaker == "" {
			return Errorf(EINVALID, "message %d speaker required", i)
		}
		if m.Content == "" {
			return Errorf(EINVALID, "message %d content required", i)
		}
	}
	return nil
}
