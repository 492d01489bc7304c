package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"` // 'private' or 'group'
	CreatedAt time.Time `json:"created_at"`
}

// Message is immutable once created; history never reorders it.
type Message struct {
	ID             int       `json:"id"`
	ConversationID uuid.UUID `json:"conversationId"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	Content        string    `json:"content"`
	IsGroupMsg     bool      `json:"isGroupMsg"`
	CreatedAt      time.Time `json:"createdAt"`
}

type SendMessageBody struct {
	Sender   string `json:"sender" validate:"required"`
	Receiver string `json:"receiver" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

// PairKey is the canonical key for an unordered pair of user ids. The unique
// index on conversations.pair_key rides on it.
func PairKey(a, b int) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}
