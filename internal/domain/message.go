package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MessageType classifies message content
type MessageType string

const (
	MessageTypeText     MessageType = "TEXT"
	MessageTypeImage    MessageType = "IMAGE"
	MessageTypeVideo    MessageType = "VIDEO"
	MessageTypeAudio    MessageType = "AUDIO"
	MessageTypeDocument MessageType = "DOCUMENT"
	MessageTypeOther    MessageType = "OTHER"
)

// MessageDirection distinguishes inbound from outbound messages
type MessageDirection string

const (
	DirectionIncoming MessageDirection = "INCOMING"
	DirectionOutgoing MessageDirection = "OUTGOING"
)

// Message belongs to exactly one conversation. ExternalID is the id the
// provider assigned; when present it is unique within the conversation,
// which is what makes at-least-once webhook delivery idempotent. Internally
// generated messages carry no external id.
type Message struct {
	BaseModel
	ConversationID uuid.UUID        `gorm:"type:uuid;not null;index:idx_messages_conversation_id;uniqueIndex:uq_messages_conversation_external" json:"conversation_id"`
	ExternalID     *string          `gorm:"type:varchar(255);uniqueIndex:uq_messages_conversation_external" json:"external_id,omitempty"`
	Content        string           `gorm:"type:text;not null" json:"content"`
	Type           MessageType      `gorm:"type:varchar(20);not null;default:'TEXT'" json:"type"`
	Direction      MessageDirection `gorm:"type:varchar(20);not null;default:'INCOMING'" json:"direction"`
	SenderName     string           `gorm:"type:varchar(255)" json:"sender_name,omitempty"`
	Metadata       datatypes.JSON   `gorm:"type:jsonb" json:"metadata,omitempty"`
	SentAt         time.Time        `gorm:"type:timestamp;not null;index:idx_messages_sent_at" json:"sent_at"`
}

// TableName specifies the table name for Message
func (Message) TableName() string {
	return "messages"
}
