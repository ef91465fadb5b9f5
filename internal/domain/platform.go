package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlatformType identifies the kind of external messaging channel
type PlatformType string

const (
	PlatformTypeWhatsApp PlatformType = "WHATSAPP"
	PlatformTypeTelegram PlatformType = "TELEGRAM"
)

// Platform represents one connected messaging channel instance within a workspace.
// InstanceID is the identifier the external provider sends on webhook events.
type Platform struct {
	BaseModel
	WorkspaceID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_platforms_workspace_id" json:"workspace_id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Type          PlatformType   `gorm:"type:varchar(50);not null;default:'WHATSAPP'" json:"type"`
	InstanceID    string         `gorm:"type:varchar(255);not null;uniqueIndex:uq_platforms_instance_id" json:"instance_id"`
	Config        datatypes.JSON `gorm:"type:jsonb" json:"config,omitempty"`
	Conversations []Conversation `gorm:"foreignKey:PlatformID;constraint:OnDelete:CASCADE" json:"conversations,omitempty"`
}

// TableName specifies the table name for Platform
func (Platform) TableName() string {
	return "platforms"
}
