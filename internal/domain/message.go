package domain

import "time"

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleBot
}

// TimestampLayout is the short clock format shown next to each message.
const TimestampLayout = "3:04 PM"

type Message struct {
	ID              string    `json:"id"`
	ConversationID  string    `json:"conversation_id"`
	Role            Role      `json:"role"`
	Content         string    `json:"content"`
	OriginalContent *string   `json:"original_content,omitempty"`
	ShowingOriginal bool      `json:"showing_original"`
	Timestamp       string    `json:"timestamp"`
	SentAt          time.Time `json:"sent_at"`
}

// Edited reports whether the message has been rewritten at least once.
func (m *Message) Edited() bool {
	return m.OriginalContent != nil
}

// DisplayContent is the text the inspector currently shows for the message.
func (m *Message) DisplayContent() string {
	if m.ShowingOriginal && m.OriginalContent != nil {
		return *m.OriginalContent
	}
	return m.Content
}
