package dto

import (
	"time"

	"github.com/google/uuid"

	"chat-board-api/internal/domain"
)

// ConversationResponse is the list/detail shape of a conversation
type ConversationResponse struct {
	ID            uuid.UUID                   `json:"id"`
	PlatformID    uuid.UUID                   `json:"platform_id"`
	ContactID     uuid.UUID                   `json:"contact_id"`
	ExternalID    string                      `json:"external_id"`
	Status        domain.ConversationStatus   `json:"status"`
	Priority      domain.ConversationPriority `json:"priority"`
	AssigneeID    *uuid.UUID                  `json:"assignee_id,omitempty"`
	LastMessageAt *time.Time                  `json:"last_message_at,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// MessageResponse is the list shape of a message
type MessageResponse struct {
	ID         uuid.UUID               `json:"id"`
	ExternalID *string                 `json:"external_id,omitempty"`
	Content    string                  `json:"content"`
	Type       domain.MessageType      `json:"type"`
	Direction  domain.MessageDirection `json:"direction"`
	SenderName string                  `json:"sender_name,omitempty"`
	SentAt     time.Time               `json:"sent_at"`
}

// ToConversationResponse converts a domain conversation
func ToConversationResponse(c *domain.Conversation) *ConversationResponse {
	return &ConversationResponse{
		ID:            c.ID,
		PlatformID:    c.PlatformID,
		ContactID:     c.ContactID,
		ExternalID:    c.ExternalID,
		Status:        c.Status,
		Priority:      c.Priority,
		AssigneeID:    c.AssigneeID,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}

// ToMessageResponse converts a domain message
func ToMessageResponse(m *domain.Message) *MessageResponse {
	return &MessageResponse{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		Content:    m.Content,
		Type:       m.Type,
		Direction:  m.Direction,
		SenderName: m.SenderName,
		SentAt:     m.SentAt,
	}
}
