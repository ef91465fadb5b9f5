package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Contact is a unique (workspace, platform, address) counterpart.
// The address is the normalized sender identity (raw digits or handle,
// provider suffix stripped). The uniqueness is enforced by the resolver
// on top of the storage constraint so concurrent webhook deliveries
// cannot create duplicates.
type Contact struct {
	BaseModel
	WorkspaceID uuid.UUID      `gorm:"type:uuid;not null;index:idx_contacts_workspace_id" json:"workspace_id"`
	PlatformID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_contacts_platform_address" json:"platform_id"`
	Address     string         `gorm:"type:varchar(255);not null;uniqueIndex:uq_contacts_platform_address" json:"address"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Email       *string        `gorm:"type:varchar(255)" json:"email,omitempty"`
	Notes       string         `gorm:"type:text" json:"notes,omitempty"`
	Tags        datatypes.JSON `gorm:"type:jsonb" json:"tags,omitempty"`
}

// TableName specifies the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}
