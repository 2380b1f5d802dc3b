package models

import "encoding/json"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Well-known part types. The set is open: parts with other types round-trip
// through the store untouched.
const (
	PartTypeText       = "text"
	PartTypeReasoning  = "reasoning"
	PartTypeToolCall   = "tool-call"
	PartTypeToolResult = "tool-result"
	PartTypeFile       = "file"
)

// Part is one typed content fragment of a message. Content is kept as raw
// JSON so fragments survive storage byte-for-byte regardless of type.
type Part struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
}

// TextPart builds a text fragment.
func TextPart(text string) Part {
	content, _ := json.Marshal(text)
	return Part{Type: PartTypeText, Content: content}
}

// Message is a single conversation turn. Part order is semantically
// meaningful and is preserved exactly as received.
type Message struct {
	ID     string `json:"id"`
	ChatID string `json:"chatId"`
	Role   Role   `json:"role"`
	Parts  []Part `json:"parts"`

	CreatedAt int64 `json:"createdAt"`
}
