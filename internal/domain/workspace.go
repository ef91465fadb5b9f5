package domain

// Workspace is the tenant boundary; every other entity is scoped to one
type Workspace struct {
	BaseModel
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Platforms []Platform `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"platforms,omitempty"`
	Boards    []Board    `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"boards,omitempty"`
}

// TableName specifies the table name for Workspace
func (Workspace) TableName() string {
	return "workspaces"
}
