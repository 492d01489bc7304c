package group

import (
	"time"

	"github.com/google/uuid"
)

type Group struct {
	ID             int       `json:"id"`
	Name           string    `json:"groupName"`
	AdminID        int       `json:"adminId"`
	ConversationID uuid.UUID `json:"conversationId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Projection returned by group search.
type Profile struct {
	Name string `json:"groupName"`
}

type CreateBody struct {
	Name  string `json:"groupName" validate:"required,min=3,max=100"`
	Admin string `json:"admin" validate:"required"`
}

type UpdateBody struct {
	Name string `json:"groupName" validate:"required,min=3,max=100"`
}

type MembershipBody struct {
	Name   string `json:"groupName" validate:"required"`
	Handle string `json:"handle" validate:"required"`
}

type SendMessageBody struct {
	Name    string `json:"groupName" validate:"required"`
	Sender  string `json:"sender" validate:"required"`
	Content string `json:"content" validate:"required"`
}
