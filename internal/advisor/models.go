package advisor

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ReplySource tells whether a reply came from the chat model or the canned catalog.
type ReplySource string

const (
	SourceLLM      ReplySource = "llm"
	SourceFallback ReplySource = "fallback"
)

// Message is one entry of a conversation. Content is an HTML fragment for
// assistant messages and plain text for user messages.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Reply is the responder's answer to a single user message.
type Reply struct {
	Content string      `json:"content"`
	Source  ReplySource `json:"source"`
}

// Conversation is an append-only message log.
type Conversation struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

// Recent returns up to the last n messages.
func (c Conversation) Recent(n int) []Message {
	if n <= 0 || len(c.Messages) == 0 {
		return nil
	}
	start := max(len(c.Messages)-n, 0)
	out := make([]Message, len(c.Messages)-start)
	copy(out, c.Messages[start:])
	return out
}

// Clone returns a copy that shares no message storage with c.
func (c Conversation) Clone() Conversation {
	c.Messages = append([]Message(nil), c.Messages...)
	return c
}
