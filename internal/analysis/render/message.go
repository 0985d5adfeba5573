package render

import (
	"time"

	"github.com/zhouzirui/travel-policy/backend/internal/model/chat"
)

// Message 是带渲染片段的对话条目。
type Message struct {
	Role      chat.Role `json:"role"`
	Text      string    `json:"text"`
	Fragments Content   `json:"fragments"`
	CreatedAt time.Time `json:"createdAt"`
}

// RenderMessage 按角色渲染：AI 回复走 Render，用户消息原样保留。
func RenderMessage(m chat.Message) Message {
	fragments := RenderUser(m.Text)
	if m.Role == chat.RoleAI {
		fragments = Render(m.Text)
	}
	return Message{Role: m.Role, Text: m.Text, Fragments: fragments, CreatedAt: m.CreatedAt}
}

// RenderTranscript 渲染整段对话，保持原有顺序。
func RenderTranscript(messages []chat.Message) []Message {
	out := make([]Message, 0, len(messages))
	for _, m := range messages {
		out = append(out, RenderMessage(m))
	}
	return out
}
