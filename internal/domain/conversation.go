package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConversationStatus is the board-visible state of a conversation
type ConversationStatus string

const (
	StatusOpen       ConversationStatus = "OPEN"
	StatusInProgress ConversationStatus = "IN_PROGRESS"
	StatusWaiting    ConversationStatus = "WAITING"
	StatusResolved   ConversationStatus = "RESOLVED"
	StatusClosed     ConversationStatus = "CLOSED"
)

// IsTerminal reports whether the status ends the conversation lifecycle.
// Terminal statuses are not overridden by new inbound messages unless the
// reopen policy is enabled.
func (s ConversationStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusClosed
}

// ConversationPriority represents the triage priority of a conversation
type ConversationPriority string

const (
	PriorityLow    ConversationPriority = "LOW"
	PriorityMedium ConversationPriority = "MEDIUM"
	PriorityHigh   ConversationPriority = "HIGH"
	PriorityUrgent ConversationPriority = "URGENT"
)

// Conversation is an ongoing thread with one counterpart address,
// identified by the external id assigned by the provider.
type Conversation struct {
	BaseModel
	PlatformID    uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:uq_conversations_platform_external" json:"platform_id"`
	ContactID     uuid.UUID            `gorm:"type:uuid;not null;index:idx_conversations_contact_id" json:"contact_id"`
	ExternalID    string               `gorm:"type:varchar(255);not null;uniqueIndex:uq_conversations_platform_external" json:"external_id"`
	Status        ConversationStatus   `gorm:"type:varchar(20);not null;default:'OPEN';index:idx_conversations_status" json:"status"`
	Priority      ConversationPriority `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	AssigneeID    *uuid.UUID           `gorm:"type:uuid;index:idx_conversations_assignee_id" json:"assignee_id,omitempty"`
	Tags          datatypes.JSON       `gorm:"type:jsonb" json:"tags,omitempty"`
	LastMessageAt *time.Time           `gorm:"type:timestamp;index:idx_conversations_last_message_at" json:"last_message_at,omitempty"`
	Contact       Contact              `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Messages      []Message            `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

// TableName specifies the table name for Conversation
func (Conversation) TableName() string {
	return "conversations"
}

// statusKeywords maps column-name substrings to statuses, first match wins.
// Keeping the Portuguese variants preserves boards created before the
// column names were localized.
var statusKeywords = []struct {
	substr string
	status ConversationStatus
}{
	{"progress", StatusInProgress},
	{"andamento", StatusInProgress},
	{"waiting", StatusWaiting},
	{"aguardando", StatusWaiting},
	{"resolved", StatusResolved},
	{"resolvida", StatusResolved},
}

// StatusForColumnName infers the conversation status a column stands for
// from its display name. Case-insensitive substring match, default OPEN.
// The mapping is a policy evaluated at move time, never a stored relation:
// renaming a column changes what future moves mean, past conversations
// are untouched.
func StatusForColumnName(name string) ConversationStatus {
	lower := strings.ToLower(name)
	for _, kw := range statusKeywords {
		if strings.Contains(lower, kw.substr) {
			return kw.status
		}
	}
	return StatusOpen
}
