package contact

import "github.com/google/uuid"

// Friend is a confirmed connection, annotated with the private conversation
// reference when one exists.
type Friend struct {
	Handle         string        `json:"handle"`
	ProfileImage   string        `json:"profileImage"`
	ConversationID uuid.NullUUID `json:"privateMessageId"`
}

type SendRequestBody struct {
	Sender   string `json:"sender" validate:"required"`
	Receiver string `json:"receiver" validate:"required"`
}

type AcceptRequestBody struct {
	CurrentUser   string `json:"currentUser" validate:"required"`
	RequestedUser string `json:"requestedUser" validate:"required"`
}
