package chat

import "time"

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Message is one immutable transcript entry.
type Message struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserMessage stamps a user entry.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text, CreatedAt: time.Now().UTC()}
}

// NewAIMessage stamps an assistant entry.
func NewAIMessage(text string) Message {
	return Message{Role: RoleAI, Text: text, CreatedAt: time.Now().UTC()}
}
